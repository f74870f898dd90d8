package models

import "time"

// CoreSettings is the user's current selection: the space and period that
// transaction creation and summary listing resolve against. It lives on the
// user record and is read fresh on every request.
type CoreSettings struct {
	UserID            int       `json:"user_id"`
	CurrentSpaceID    int       `json:"current_space_id"`
	CurrentMonth      int       `json:"current_month"`
	CurrentYear       int       `json:"current_year"`
	CurrentBasenameID int       `json:"current_basename_id"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type TelegramSettings struct {
	UserID               int       `json:"user_id"`
	TelegramID           int64     `json:"telegram_id"`
	TelegramUsername     string    `json:"telegram_username"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	UpdatedAt            time.Time `json:"updated_at"`
}
