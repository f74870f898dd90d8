package db

import (
	"context"
	"fmt"

	"github.com/dnb8866/family-finances-2/src/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateTransaction inserts the transaction and adds its value to the
// matching summary bucket in a single database transaction. If the bucket
// does not exist the insert is rolled back and ErrSummaryNotFound is
// returned; no partial state survives. The increment is done in SQL so
// concurrent creations serialize on the summary row lock.
func CreateTransaction(ctx context.Context, pool *pgxpool.Pool, t *models.Transaction) (*models.Transaction, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	created := *t
	err = tx.QueryRow(
		ctx,
		`INSERT INTO transactions (space_id, author_id, period_month, period_year, type_transaction, group_name, value_transaction)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		t.SpaceID,
		t.AuthorID,
		t.PeriodMonth,
		t.PeriodYear,
		t.TypeTransaction,
		t.GroupName,
		t.ValueTransaction,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	cmd, err := tx.Exec(
		ctx,
		`UPDATE summary
		 SET fact_value = fact_value + $1
		 WHERE space_id = $2 AND period_month = $3 AND period_year = $4
		   AND type_transaction = $5 AND group_name = $6`,
		t.ValueTransaction,
		t.SpaceID,
		t.PeriodMonth,
		t.PeriodYear,
		t.TypeTransaction,
		t.GroupName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update summary: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrSummaryNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return &created, nil
}

func GetTransactionByID(ctx context.Context, pool *pgxpool.Pool, authorID, transactionID int) (*models.Transaction, error) {
	query := `
		SELECT id, space_id, author_id, period_month, period_year, type_transaction, group_name, value_transaction, created_at
		FROM transactions WHERE id = $1 AND author_id = $2
	`
	var t models.Transaction
	err := pool.QueryRow(ctx, query, transactionID, authorID).Scan(
		&t.ID, &t.SpaceID, &t.AuthorID, &t.PeriodMonth, &t.PeriodYear,
		&t.TypeTransaction, &t.GroupName, &t.ValueTransaction, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTransactions returns the author's transactions. The author scope is
// applied first; all filters narrow within it.
func ListTransactions(ctx context.Context, pool *pgxpool.Pool, authorID int, filter models.TransactionFilter) ([]models.Transaction, error) {
	query := `
		SELECT id, space_id, author_id, period_month, period_year, type_transaction, group_name, value_transaction, created_at
		FROM transactions WHERE author_id = $1
	`
	args := []interface{}{authorID}

	if filter.PeriodMonth != nil {
		args = append(args, *filter.PeriodMonth)
		query += fmt.Sprintf(" AND period_month = $%d", len(args))
	}
	if filter.PeriodYear != nil {
		args = append(args, *filter.PeriodYear)
		query += fmt.Sprintf(" AND period_year = $%d", len(args))
	}
	if filter.SpaceID != nil {
		args = append(args, *filter.SpaceID)
		query += fmt.Sprintf(" AND space_id = $%d", len(args))
	}
	if filter.GroupNamePrefix != "" {
		args = append(args, escapeLike(filter.GroupNamePrefix)+"%")
		query += fmt.Sprintf(" AND group_name LIKE $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(
			&t.ID, &t.SpaceID, &t.AuthorID, &t.PeriodMonth, &t.PeriodYear,
			&t.TypeTransaction, &t.GroupName, &t.ValueTransaction, &t.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
