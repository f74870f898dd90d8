package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/dnb8866/family-finances-2/src/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateSpace(ctx context.Context, pool *pgxpool.Pool, space *models.Space) (*models.Space, error) {
	query := `
		INSERT INTO spaces (name, user_id)
		VALUES ($1, $2)
		RETURNING id, name, user_id, created_at
	`
	var s models.Space
	err := pool.QueryRow(ctx, query, space.Name, space.UserID).
		Scan(&s.ID, &s.Name, &s.UserID, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func GetSpaceByID(ctx context.Context, pool *pgxpool.Pool, userID, spaceID int) (*models.Space, error) {
	query := `
		SELECT id, name, user_id, created_at
		FROM spaces WHERE id = $1 AND user_id = $2
	`
	var s models.Space
	err := pool.QueryRow(ctx, query, spaceID, userID).
		Scan(&s.ID, &s.Name, &s.UserID, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func ListSpaces(ctx context.Context, pool *pgxpool.Pool, userID int, namePrefix string) ([]models.Space, error) {
	query := `
		SELECT id, name, user_id, created_at
		FROM spaces WHERE user_id = $1
	`
	args := []interface{}{userID}
	if namePrefix != "" {
		query += ` AND name LIKE $2`
		args = append(args, escapeLike(namePrefix)+"%")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spaces []models.Space
	for rows.Next() {
		var s models.Space
		if err := rows.Scan(&s.ID, &s.Name, &s.UserID, &s.CreatedAt); err != nil {
			return nil, err
		}
		spaces = append(spaces, s)
	}
	return spaces, rows.Err()
}

func UpdateSpace(ctx context.Context, pool *pgxpool.Pool, space *models.Space) (*models.Space, error) {
	query := `
		UPDATE spaces
		SET name = $1
		WHERE id = $2 AND user_id = $3
		RETURNING id, name, user_id, created_at
	`
	var s models.Space
	err := pool.QueryRow(ctx, query, space.Name, space.ID, space.UserID).
		Scan(&s.ID, &s.Name, &s.UserID, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func DeleteSpace(ctx context.Context, pool *pgxpool.Pool, userID, spaceID int) error {
	query := `DELETE FROM spaces WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, spaceID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("space not found")
	}
	return nil
}

// UserCanUseSpace reports whether the user owns the space or is linked to it.
// Core settings may only point at such spaces.
func UserCanUseSpace(ctx context.Context, pool *pgxpool.Pool, userID, spaceID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM spaces WHERE id = $1 AND user_id = $2
			UNION
			SELECT 1 FROM space_links WHERE space_id = $1 AND linked_user_id = $2
		)
	`
	var ok bool
	if err := pool.QueryRow(ctx, query, spaceID, userID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func linkParticipants(ctx context.Context, pool *pgxpool.Pool, ownerID, spaceID, linkedUserID int) (*models.SpaceLinkInfo, error) {
	info := models.SpaceLinkInfo{SpaceID: spaceID, OwnerID: ownerID, LinkedUserID: linkedUserID}

	query := `
		SELECT s.name, u.username
		FROM spaces s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = $1 AND s.user_id = $2
	`
	err := pool.QueryRow(ctx, query, spaceID, ownerID).Scan(&info.SpaceName, &info.OwnerUsername)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrSpaceNotFound
		}
		return nil, fmt.Errorf("query error: %w", err)
	}

	err = pool.QueryRow(ctx, `SELECT username FROM users WHERE id = $1`, linkedUserID).
		Scan(&info.LinkedUsername)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrLinkedUserNotFound
		}
		return nil, fmt.Errorf("query error: %w", err)
	}

	return &info, nil
}

// LinkUserToSpace associates another user with a space owned by ownerID.
// Linking an already linked user fails rather than silently succeeding.
func LinkUserToSpace(ctx context.Context, pool *pgxpool.Pool, ownerID, spaceID, linkedUserID int) (*models.SpaceLinkInfo, error) {
	if linkedUserID == ownerID {
		return nil, ErrLinkOwner
	}

	info, err := linkParticipants(ctx, pool, ownerID, spaceID, linkedUserID)
	if err != nil {
		return nil, err
	}

	_, err = pool.Exec(
		ctx,
		`INSERT INTO space_links (space_id, linked_user_id) VALUES ($1, $2)`,
		spaceID,
		linkedUserID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, ErrAlreadyLinked
		}
		return nil, fmt.Errorf("failed to link user: %w", err)
	}

	return info, nil
}

// UnlinkUserFromSpace removes an existing link. Unlinking a user who is not
// linked fails the same way linking twice does.
func UnlinkUserFromSpace(ctx context.Context, pool *pgxpool.Pool, ownerID, spaceID, linkedUserID int) (*models.SpaceLinkInfo, error) {
	info, err := linkParticipants(ctx, pool, ownerID, spaceID, linkedUserID)
	if err != nil {
		return nil, err
	}

	cmd, err := pool.Exec(
		ctx,
		`DELETE FROM space_links WHERE space_id = $1 AND linked_user_id = $2`,
		spaceID,
		linkedUserID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to unlink user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrLinkNotFound
	}

	return info, nil
}

// escapeLike neutralizes LIKE wildcards so prefix search treats user input
// literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
