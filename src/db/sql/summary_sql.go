package db

import (
	"context"
	"fmt"

	"github.com/dnb8866/family-finances-2/src/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Groups are summary rows looked at through the owner's namespace: every
// bucket in a space the user owns. Group CRUD creates and maintains the
// buckets that transaction creation later increments.

func CreateGroup(ctx context.Context, pool *pgxpool.Pool, group *models.Summary) (*models.Summary, error) {
	query := `
		INSERT INTO summary (space_id, period_month, period_year, type_transaction, group_name, plan_value)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, space_id, period_month, period_year, type_transaction, group_name, plan_value, fact_value
	`
	var s models.Summary
	err := pool.QueryRow(
		ctx, query,
		group.SpaceID, group.PeriodMonth, group.PeriodYear,
		group.TypeTransaction, group.GroupName, group.PlanValue,
	).Scan(
		&s.ID, &s.SpaceID, &s.PeriodMonth, &s.PeriodYear,
		&s.TypeTransaction, &s.GroupName, &s.PlanValue, &s.FactValue,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func GetGroupByID(ctx context.Context, pool *pgxpool.Pool, userID, groupID int) (*models.Summary, error) {
	query := `
		SELECT s.id, s.space_id, s.period_month, s.period_year, s.type_transaction, s.group_name, s.plan_value, s.fact_value
		FROM summary s
		JOIN spaces sp ON sp.id = s.space_id
		WHERE s.id = $1 AND sp.user_id = $2
	`
	var s models.Summary
	err := pool.QueryRow(ctx, query, groupID, userID).Scan(
		&s.ID, &s.SpaceID, &s.PeriodMonth, &s.PeriodYear,
		&s.TypeTransaction, &s.GroupName, &s.PlanValue, &s.FactValue,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func ListGroups(ctx context.Context, pool *pgxpool.Pool, userID int, filter models.SummaryFilter) ([]models.Summary, error) {
	query := `
		SELECT s.id, s.space_id, s.period_month, s.period_year, s.type_transaction, s.group_name, s.plan_value, s.fact_value
		FROM summary s
		JOIN spaces sp ON sp.id = s.space_id
		WHERE sp.user_id = $1
	`
	args := []interface{}{userID}
	if filter.TypeTransaction != "" {
		args = append(args, filter.TypeTransaction)
		query += fmt.Sprintf(" AND s.type_transaction = $%d", len(args))
	}
	if filter.GroupNamePrefix != "" {
		args = append(args, escapeLike(filter.GroupNamePrefix)+"%")
		query += fmt.Sprintf(" AND s.group_name LIKE $%d", len(args))
	}
	query += " ORDER BY s.group_name"

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []models.Summary
	for rows.Next() {
		var s models.Summary
		err := rows.Scan(
			&s.ID, &s.SpaceID, &s.PeriodMonth, &s.PeriodYear,
			&s.TypeTransaction, &s.GroupName, &s.PlanValue, &s.FactValue,
		)
		if err != nil {
			return nil, err
		}
		groups = append(groups, s)
	}
	return groups, rows.Err()
}

func UpdateGroup(ctx context.Context, pool *pgxpool.Pool, userID int, group *models.Summary) (*models.Summary, error) {
	query := `
		UPDATE summary s
		SET group_name = $1, type_transaction = $2, plan_value = $3
		FROM spaces sp
		WHERE s.space_id = sp.id AND s.id = $4 AND sp.user_id = $5
		RETURNING s.id, s.space_id, s.period_month, s.period_year, s.type_transaction, s.group_name, s.plan_value, s.fact_value
	`
	var s models.Summary
	err := pool.QueryRow(
		ctx, query,
		group.GroupName, group.TypeTransaction, group.PlanValue, group.ID, userID,
	).Scan(
		&s.ID, &s.SpaceID, &s.PeriodMonth, &s.PeriodYear,
		&s.TypeTransaction, &s.GroupName, &s.PlanValue, &s.FactValue,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func DeleteGroup(ctx context.Context, pool *pgxpool.Pool, userID, groupID int) error {
	query := `
		DELETE FROM summary s
		USING spaces sp
		WHERE s.space_id = sp.id AND s.id = $1 AND sp.user_id = $2
	`
	cmd, err := pool.Exec(ctx, query, groupID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("group not found")
	}
	return nil
}

// ListSummary returns the buckets of one space and period.
func ListSummary(ctx context.Context, pool *pgxpool.Pool, spaceID, periodMonth, periodYear int, filter models.SummaryFilter) ([]models.Summary, error) {
	query := `
		SELECT id, space_id, period_month, period_year, type_transaction, group_name, plan_value, fact_value
		FROM summary
		WHERE space_id = $1 AND period_month = $2 AND period_year = $3
	`
	args := []interface{}{spaceID, periodMonth, periodYear}
	if filter.TypeTransaction != "" {
		args = append(args, filter.TypeTransaction)
		query += fmt.Sprintf(" AND type_transaction = $%d", len(args))
	}
	if filter.GroupNamePrefix != "" {
		args = append(args, escapeLike(filter.GroupNamePrefix)+"%")
		query += fmt.Sprintf(" AND group_name LIKE $%d", len(args))
	}
	query += " ORDER BY group_name"

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.Summary
	for rows.Next() {
		var s models.Summary
		err := rows.Scan(
			&s.ID, &s.SpaceID, &s.PeriodMonth, &s.PeriodYear,
			&s.TypeTransaction, &s.GroupName, &s.PlanValue, &s.FactValue,
		)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
