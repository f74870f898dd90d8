package models

// Summary is a periodic running-total bucket. One row exists per
// (space, period, type, group) combination; fact_value accumulates the
// values of transactions created against that bucket.
type Summary struct {
	ID              int     `json:"id"`
	SpaceID         int     `json:"space_id"`
	PeriodMonth     int     `json:"period_month"`
	PeriodYear      int     `json:"period_year"`
	TypeTransaction string  `json:"type_transaction"`
	GroupName       string  `json:"group_name"`
	PlanValue       float64 `json:"plan_value"`
	FactValue       float64 `json:"fact_value"`
}

type SummaryFilter struct {
	GroupNamePrefix string
	TypeTransaction string
}

// SummaryEnvelope carries the summary rows together with the selection they
// were computed against, so the caller never has to make a second request to
// learn which period the data belongs to.
type SummaryEnvelope struct {
	Username       string    `json:"username"`
	PeriodMonth    int       `json:"period_month"`
	PeriodYear     int       `json:"period_year"`
	CurrentSpaceID int       `json:"current_space_id"`
	Summary        []Summary `json:"summary"`
}
