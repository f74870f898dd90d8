package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	cache "github.com/dnb8866/family-finances-2/src/db"
	db "github.com/dnb8866/family-finances-2/src/db/sql"
	"github.com/dnb8866/family-finances-2/src/models"
	"github.com/dnb8866/family-finances-2/src/util"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

type createTransactionRequest struct {
	TypeTransaction  string  `json:"type_transaction"`
	GroupName        string  `json:"group_name"`
	ValueTransaction float64 `json:"value_transaction"`
}

func (req createTransactionRequest) validate() error {
	if !util.ValidateTransactionType(req.TypeTransaction) {
		return fmt.Errorf("type_transaction must be income or expense")
	}
	if !util.ValidateGroupName(req.GroupName) {
		return fmt.Errorf("group_name must be between 1 and 100 characters")
	}
	if req.ValueTransaction <= 0 {
		return fmt.Errorf("value_transaction must be positive")
	}
	return nil
}

// parseTransactionFilter reads the list query parameters. Unknown parameters
// are ignored; malformed values are rejected.
func parseTransactionFilter(r *http.Request) (models.TransactionFilter, error) {
	var filter models.TransactionFilter
	q := r.URL.Query()

	for _, p := range []struct {
		name string
		dst  **int
	}{
		{"period_month", &filter.PeriodMonth},
		{"period_year", &filter.PeriodYear},
		{"space_id", &filter.SpaceID},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid %s: %s", p.name, raw)
		}
		*p.dst = &v
	}

	filter.GroupNamePrefix = q.Get("group_name")
	return filter, nil
}

// CreateTransaction records a transaction against the path user's current
// selection. Space, period and author are never taken from the client; the
// matching summary bucket must already exist.
func CreateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		var req createTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Errorf("Failed to decode create transaction request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := req.validate(); err != nil {
			logrus.Errorf("Transaction validation failed for user %d: %v", userID, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		user, err := db.GetUserByID(r.Context(), pool, userID)
		if err != nil {
			logrus.Errorf("Failed to get user - user_id: %d: %v", userID, err)
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		settings, err := db.GetCoreSettings(r.Context(), pool, user.ID)
		if err != nil {
			logrus.Errorf("Failed to get core settings for user %d: %v", user.ID, err)
			http.Error(w, "core settings not found", http.StatusNotFound)
			return
		}

		transaction := &models.Transaction{
			SpaceID:          settings.CurrentSpaceID,
			AuthorID:         user.ID,
			PeriodMonth:      settings.CurrentMonth,
			PeriodYear:       settings.CurrentYear,
			TypeTransaction:  req.TypeTransaction,
			GroupName:        req.GroupName,
			ValueTransaction: req.ValueTransaction,
		}

		created, err := db.CreateTransaction(r.Context(), pool, transaction)
		if err != nil {
			if errors.Is(err, db.ErrSummaryNotFound) {
				logrus.Errorf("No summary bucket for user %d, space %d, period %d/%d, type %s, group %s",
					user.ID, transaction.SpaceID, transaction.PeriodMonth, transaction.PeriodYear,
					transaction.TypeTransaction, transaction.GroupName)
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			logrus.Errorf("Failed to create transaction for user %d: %v", user.ID, err)
			http.Error(w, "failed to create transaction", http.StatusInternalServerError)
			return
		}

		// Linked users may have this space as their current selection.
		cache.ClearAllSummaryCaches()

		logrus.Infof("Created transaction id %d for user %d, space %d, group %s, value %.2f",
			created.ID, user.ID, created.SpaceID, created.GroupName, created.ValueTransaction)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetTransactionByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}
		transactionID, err := strconv.Atoi(chi.URLParam(r, "transaction_id"))
		if err != nil {
			logrus.Errorf("Invalid transaction id param: %s", chi.URLParam(r, "transaction_id"))
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}

		transaction, err := db.GetTransactionByID(r.Context(), pool, userID, transactionID)
		if err != nil {
			logrus.Errorf("Transaction id %d not found for user %d: %v", transactionID, userID, err)
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transaction)
	}
}

func GetAllTransactionsForUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		filter, err := parseTransactionFilter(r)
		if err != nil {
			logrus.Errorf("Invalid transaction filter for user %d: %v", userID, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		transactions, err := db.ListTransactions(r.Context(), pool, userID, filter)
		if err != nil {
			logrus.Errorf("Failed to get transactions for user %d: %v", userID, err)
			http.Error(w, "failed to get transactions", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transactions)
	}
}
