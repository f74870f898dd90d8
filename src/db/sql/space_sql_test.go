package db

import (
	"context"
	"errors"
	"testing"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"food", "food"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLinkAndUnlinkUser(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	owner := registerTestUser(t, pool)
	linked := registerTestUser(t, pool)

	info, err := LinkUserToSpace(ctx, pool, owner.ID, owner.SpaceID, linked.ID)
	if err != nil {
		t.Fatalf("failed to link user: %v", err)
	}
	if info.OwnerID != owner.ID || info.LinkedUserID != linked.ID || info.SpaceID != owner.SpaceID {
		t.Errorf("unexpected link info: %+v", info)
	}
	if info.OwnerUsername == "" || info.LinkedUsername == "" || info.SpaceName == "" {
		t.Errorf("expected names to be resolved, got %+v", info)
	}

	if _, err := LinkUserToSpace(ctx, pool, owner.ID, owner.SpaceID, linked.ID); !errors.Is(err, ErrAlreadyLinked) {
		t.Fatalf("relinking: expected ErrAlreadyLinked, got %v", err)
	}

	ok, err := UserCanUseSpace(ctx, pool, linked.ID, owner.SpaceID)
	if err != nil {
		t.Fatalf("UserCanUseSpace: %v", err)
	}
	if !ok {
		t.Error("linked user should be allowed to use the space")
	}

	if _, err := UnlinkUserFromSpace(ctx, pool, owner.ID, owner.SpaceID, linked.ID); err != nil {
		t.Fatalf("failed to unlink user: %v", err)
	}

	if _, err := UnlinkUserFromSpace(ctx, pool, owner.ID, owner.SpaceID, linked.ID); !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("re-unlinking: expected ErrLinkNotFound, got %v", err)
	}

	ok, err = UserCanUseSpace(ctx, pool, linked.ID, owner.SpaceID)
	if err != nil {
		t.Fatalf("UserCanUseSpace: %v", err)
	}
	if ok {
		t.Error("unlinked user should no longer be allowed to use the space")
	}
}

func TestLinkValidation(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	owner := registerTestUser(t, pool)
	other := registerTestUser(t, pool)

	if _, err := LinkUserToSpace(ctx, pool, owner.ID, owner.SpaceID, owner.ID); !errors.Is(err, ErrLinkOwner) {
		t.Errorf("self link: expected ErrLinkOwner, got %v", err)
	}

	if _, err := LinkUserToSpace(ctx, pool, owner.ID, owner.SpaceID, -1); !errors.Is(err, ErrLinkedUserNotFound) {
		t.Errorf("unknown linked user: expected ErrLinkedUserNotFound, got %v", err)
	}

	if _, err := LinkUserToSpace(ctx, pool, owner.ID, -1, other.ID); !errors.Is(err, ErrSpaceNotFound) {
		t.Errorf("unknown space: expected ErrSpaceNotFound, got %v", err)
	}

	// A space the caller does not own behaves like a missing space.
	if _, err := LinkUserToSpace(ctx, pool, other.ID, owner.SpaceID, other.ID); !errors.Is(err, ErrLinkOwner) {
		// other.ID == linked user here, so owner check fires first.
		t.Errorf("expected ErrLinkOwner, got %v", err)
	}
	if _, err := UnlinkUserFromSpace(ctx, pool, other.ID, owner.SpaceID, owner.ID); !errors.Is(err, ErrSpaceNotFound) {
		t.Errorf("foreign space: expected ErrSpaceNotFound, got %v", err)
	}
}

func TestListSpacesNamePrefix(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	user := registerTestUser(t, pool)

	spaces, err := ListSpaces(ctx, pool, user.ID, "")
	if err != nil {
		t.Fatalf("failed to list spaces: %v", err)
	}
	if len(spaces) != 1 {
		t.Fatalf("expected the registration default space, got %+v", spaces)
	}
	defaultName := spaces[0].Name

	filtered, err := ListSpaces(ctx, pool, user.ID, defaultName[:1])
	if err != nil {
		t.Fatalf("failed to list spaces with prefix: %v", err)
	}
	if len(filtered) != 1 {
		t.Errorf("prefix of the default name should match it, got %+v", filtered)
	}

	none, err := ListSpaces(ctx, pool, user.ID, "%")
	if err != nil {
		t.Fatalf("failed to list spaces with wildcard prefix: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("LIKE wildcards must be treated literally, got %+v", none)
	}
}
