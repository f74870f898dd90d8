package handlers

import (
	"encoding/json"
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

// GetSummary lists the summary buckets of the user's current space and
// period, wrapped in an envelope that repeats the resolved selection so the
// caller gets data and context in one response.
func GetSummary(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		filter := models.SummaryFilter{
			GroupNamePrefix: r.URL.Query().Get("group_name"),
			TypeTransaction: r.URL.Query().Get("type_transaction"),
		}
		if filter.TypeTransaction != "" && !util.ValidateTransactionType(filter.TypeTransaction) {
			http.Error(w, "type_transaction must be income or expense", http.StatusBadRequest)
			return
		}

		// Unfiltered lists are served from cache; writes clear it.
		cacheKey := cache.SummaryCacheKey(userID)
		unfiltered := filter.GroupNamePrefix == "" && filter.TypeTransaction == ""
		if unfiltered {
			if value, found := cache.Cache.Get(cacheKey); found {
				if envelope, ok := value.(models.SummaryEnvelope); ok {
					w.Header().Set("Content-Type", "application/json")
					json.NewEncoder(w).Encode(envelope)
					return
				}
			}
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

		summaries, err := db.ListSummary(
			r.Context(), pool,
			settings.CurrentSpaceID, settings.CurrentMonth, settings.CurrentYear,
			filter,
		)
		if err != nil {
			logrus.Errorf("Failed to get summary for user %d: %v", user.ID, err)
			http.Error(w, "failed to get summary", http.StatusInternalServerError)
			return
		}

		envelope := models.SummaryEnvelope{
			Username:       user.Username,
			PeriodMonth:    settings.CurrentMonth,
			PeriodYear:     settings.CurrentYear,
			CurrentSpaceID: settings.CurrentSpaceID,
			Summary:        summaries,
		}
		if unfiltered {
			cache.SetSummaryCache(cacheKey, envelope)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(envelope)
	}
}
