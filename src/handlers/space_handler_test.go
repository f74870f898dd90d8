package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dnb8866/family-finances-2/src/models"
	"github.com/go-chi/chi/v5"
)

func TestLinkConfirmationMessage(t *testing.T) {
	info := &models.SpaceLinkInfo{
		SpaceID:        11,
		SpaceName:      "user_base",
		OwnerID:        1,
		OwnerUsername:  "username",
		LinkedUserID:   22,
		LinkedUsername: "username_2",
	}

	want := "User username_2 (id 22) linked to space user_base (id 11) owned by username (id 1)."
	if got := linkConfirmation(info); got != want {
		t.Errorf("linkConfirmation:\n got %q\nwant %q", got, want)
	}

	want = "User username_2 (id 22) unlinked from space user_base (id 11) owned by username (id 1)."
	if got := unlinkConfirmation(info); got != want {
		t.Errorf("unlinkConfirmation:\n got %q\nwant %q", got, want)
	}
}

func spaceRequest(method, target, body, userID, spaceID string) (*httptest.ResponseRecorder, *http.Request) {
	req := userRequest(method, target, body, userID)
	rctx := chi.RouteContext(req.Context())
	rctx.URLParams.Add("space_id", spaceID)
	return httptest.NewRecorder(), req
}

// Input validation runs before any database access, so a nil pool is safe.
func TestLinkUserRejectsBadInput(t *testing.T) {
	rr, req := spaceRequest(http.MethodPost, "/users/1/basenames/11/link_user", `{"linked_user_id":`, "1", "11")
	LinkUser(nil).ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: expected 400, got %d", rr.Code)
	}

	rr, req = spaceRequest(http.MethodPost, "/users/1/basenames/11/link_user", `{}`, "1", "11")
	LinkUser(nil).ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("missing linked_user_id: expected 400, got %d", rr.Code)
	}

	rr, req = spaceRequest(http.MethodPost, "/users/1/basenames/abc/link_user", `{"linked_user_id":22}`, "1", "abc")
	LinkUser(nil).ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad space id: expected 400, got %d", rr.Code)
	}
}

func TestUnlinkUserRejectsBadInput(t *testing.T) {
	rr, req := spaceRequest(http.MethodPost, "/users/1/basenames/11/unlink_user", `{}`, "1", "11")
	UnlinkUser(nil).ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("missing linked_user_id: expected 400, got %d", rr.Code)
	}
}

func TestCreateSpaceRejectsEmptyName(t *testing.T) {
	rr := httptest.NewRecorder()
	req := userRequest(http.MethodPost, "/users/1/basenames", `{"name":""}`, "1")
	CreateSpace(nil).ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
