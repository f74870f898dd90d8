package db

import (
	"context"

	"github.com/dnb8866/family-finances-2/src/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

func GetCoreSettings(ctx context.Context, pool *pgxpool.Pool, userID int) (*models.CoreSettings, error) {
	query := `
		SELECT user_id, current_space_id, current_month, current_year, current_basename_id, updated_at
		FROM core_settings WHERE user_id = $1
	`
	var cs models.CoreSettings
	err := pool.QueryRow(ctx, query, userID).Scan(
		&cs.UserID,
		&cs.CurrentSpaceID,
		&cs.CurrentMonth,
		&cs.CurrentYear,
		&cs.CurrentBasenameID,
		&cs.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

func UpdateCoreSettings(ctx context.Context, pool *pgxpool.Pool, cs *models.CoreSettings) (*models.CoreSettings, error) {
	query := `
		UPDATE core_settings
		SET current_space_id = $1, current_month = $2, current_year = $3, current_basename_id = $4, updated_at = NOW()
		WHERE user_id = $5
		RETURNING user_id, current_space_id, current_month, current_year, current_basename_id, updated_at
	`
	var updated models.CoreSettings
	err := pool.QueryRow(
		ctx, query,
		cs.CurrentSpaceID, cs.CurrentMonth, cs.CurrentYear, cs.CurrentBasenameID, cs.UserID,
	).Scan(
		&updated.UserID,
		&updated.CurrentSpaceID,
		&updated.CurrentMonth,
		&updated.CurrentYear,
		&updated.CurrentBasenameID,
		&updated.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func GetTelegramSettings(ctx context.Context, pool *pgxpool.Pool, userID int) (*models.TelegramSettings, error) {
	query := `
		SELECT user_id, telegram_id, telegram_username, notifications_enabled, updated_at
		FROM telegram_settings WHERE user_id = $1
	`
	var ts models.TelegramSettings
	err := pool.QueryRow(ctx, query, userID).Scan(
		&ts.UserID,
		&ts.TelegramID,
		&ts.TelegramUsername,
		&ts.NotificationsEnabled,
		&ts.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func UpdateTelegramSettings(ctx context.Context, pool *pgxpool.Pool, ts *models.TelegramSettings) (*models.TelegramSettings, error) {
	query := `
		UPDATE telegram_settings
		SET telegram_id = $1, telegram_username = $2, notifications_enabled = $3, updated_at = NOW()
		WHERE user_id = $4
		RETURNING user_id, telegram_id, telegram_username, notifications_enabled, updated_at
	`
	var updated models.TelegramSettings
	err := pool.QueryRow(
		ctx, query,
		ts.TelegramID, ts.TelegramUsername, ts.NotificationsEnabled, ts.UserID,
	).Scan(
		&updated.UserID,
		&updated.TelegramID,
		&updated.TelegramUsername,
		&updated.NotificationsEnabled,
		&updated.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
