package models

import "time"

type Space struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type SpaceList struct {
	OwnerID       int     `json:"owner_id"`
	OwnerUsername string  `json:"owner_username"`
	Spaces        []Space `json:"spaces"`
}

// SpaceLinkInfo identifies everyone involved in a link/unlink operation and
// is used to build the confirmation message.
type SpaceLinkInfo struct {
	SpaceID        int
	SpaceName      string
	OwnerID        int
	OwnerUsername  string
	LinkedUserID   int
	LinkedUsername string
}
