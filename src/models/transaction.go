package models

import "time"

type Transaction struct {
	ID               int       `json:"id"`
	SpaceID          int       `json:"space_id"`
	AuthorID         int       `json:"author_id"`
	PeriodMonth      int       `json:"period_month"`
	PeriodYear       int       `json:"period_year"`
	TypeTransaction  string    `json:"type_transaction"`
	GroupName        string    `json:"group_name"`
	ValueTransaction float64   `json:"value_transaction"`
	CreatedAt        time.Time `json:"created_at"`
}

// TransactionFilter narrows a user's transaction list. Nil fields are not applied.
type TransactionFilter struct {
	PeriodMonth     *int
	PeriodYear      *int
	SpaceID         *int
	GroupNamePrefix string
}
