package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dnb8866/family-finances-2/src/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func GetUserByID(ctx context.Context, pool *pgxpool.Pool, id int) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, username, email, first_name, last_name, password_hash, created_at
		FROM users
		WHERE id = $1
	`
	err := pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

func GetUserByUsername(ctx context.Context, pool *pgxpool.Pool, username string) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, username, email, first_name, last_name, password_hash, created_at
		FROM users
		WHERE username = $1
	`
	err := pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &user, nil
}

func GetUserByEmail(ctx context.Context, pool *pgxpool.Pool, email string) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, username, email, first_name, last_name, password_hash, created_at
		FROM users
		WHERE email = $1
	`
	err := pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &user, nil
}

// CreateUser registers a user together with their default space and both
// settings rows. Everything happens in one transaction so a half-registered
// user can never exist.
func CreateUser(ctx context.Context, pool *pgxpool.Pool, req models.RegisterRequest, hashedPassword string) (*models.RegisterResponse, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var userID int
	err = tx.QueryRow(
		ctx,
		`INSERT INTO users (username, email, first_name, last_name, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		req.Username,
		req.Email,
		req.FirstName,
		req.LastName,
		hashedPassword,
	).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	var spaceID int
	err = tx.QueryRow(
		ctx,
		`INSERT INTO spaces (name, user_id) VALUES ($1, $2) RETURNING id`,
		req.Username+"_base",
		userID,
	).Scan(&spaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to create default space: %w", err)
	}

	now := time.Now()
	_, err = tx.Exec(
		ctx,
		`INSERT INTO core_settings (user_id, current_space_id, current_month, current_year, current_basename_id)
		 VALUES ($1, $2, $3, $4, $2)`,
		userID,
		spaceID,
		int(now.Month()),
		now.Year(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create core settings: %w", err)
	}

	_, err = tx.Exec(ctx, `INSERT INTO telegram_settings (user_id) VALUES ($1)`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram settings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	resp := models.RegisterResponse{
		ID:        userID,
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		SpaceID:   spaceID,
	}

	return &resp, nil
}
