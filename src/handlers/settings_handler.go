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

// validateCoreSettings checks the period range and that the user may point
// their selection at the requested spaces: the current space must be owned
// by or linked to the user, the basename must be owned outright because it
// is the namespace new groups are created in.
func validateCoreSettings(r *http.Request, pool *pgxpool.Pool, cs *models.CoreSettings) (string, bool) {
	if !util.ValidateMonth(cs.CurrentMonth) {
		return "current_month must be between 1 and 12", false
	}
	if !util.ValidateYear(cs.CurrentYear) {
		return "current_year must be between 2000 and 2100", false
	}

	ok, err := db.UserCanUseSpace(r.Context(), pool, cs.UserID, cs.CurrentSpaceID)
	if err != nil {
		logrus.Errorf("Failed to check space access for user %d: %v", cs.UserID, err)
		return "failed to validate settings", false
	}
	if !ok {
		return "current_space_id must be a space owned by or linked to the user", false
	}

	if _, err := db.GetSpaceByID(r.Context(), pool, cs.UserID, cs.CurrentBasenameID); err != nil {
		return "current_basename_id must be a space owned by the user", false
	}
	return "", true
}

func GetCoreSettings(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		settings, err := db.GetCoreSettings(r.Context(), pool, userID)
		if err != nil {
			logrus.Errorf("Failed to get core settings for user %d: %v", userID, err)
			http.Error(w, "core settings not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(settings)
	}
}

func UpdateCoreSettings(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		var req struct {
			CurrentSpaceID    int `json:"current_space_id"`
			CurrentMonth      int `json:"current_month"`
			CurrentYear       int `json:"current_year"`
			CurrentBasenameID int `json:"current_basename_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Errorf("Failed to decode update core settings request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		settings := &models.CoreSettings{
			UserID:            userID,
			CurrentSpaceID:    req.CurrentSpaceID,
			CurrentMonth:      req.CurrentMonth,
			CurrentYear:       req.CurrentYear,
			CurrentBasenameID: req.CurrentBasenameID,
		}
		if msg, ok := validateCoreSettings(r, pool, settings); !ok {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		updated, err := db.UpdateCoreSettings(r.Context(), pool, settings)
		if err != nil {
			logrus.Errorf("Failed to update core settings for user %d: %v", userID, err)
			http.Error(w, "core settings not found", http.StatusNotFound)
			return
		}

		// The user now looks at a different space or period.
		cache.DelSummaryCache(cache.SummaryCacheKey(userID))

		logrus.Infof("Updated core settings for user %d: space %d, period %d/%d",
			userID, updated.CurrentSpaceID, updated.CurrentMonth, updated.CurrentYear)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func PatchCoreSettings(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		var req struct {
			CurrentSpaceID    *int `json:"current_space_id"`
			CurrentMonth      *int `json:"current_month"`
			CurrentYear       *int `json:"current_year"`
			CurrentBasenameID *int `json:"current_basename_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Errorf("Failed to decode patch core settings request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		settings, err := db.GetCoreSettings(r.Context(), pool, userID)
		if err != nil {
			logrus.Errorf("Failed to get core settings for user %d: %v", userID, err)
			http.Error(w, "core settings not found", http.StatusNotFound)
			return
		}

		if req.CurrentSpaceID != nil {
			settings.CurrentSpaceID = *req.CurrentSpaceID
		}
		if req.CurrentMonth != nil {
			settings.CurrentMonth = *req.CurrentMonth
		}
		if req.CurrentYear != nil {
			settings.CurrentYear = *req.CurrentYear
		}
		if req.CurrentBasenameID != nil {
			settings.CurrentBasenameID = *req.CurrentBasenameID
		}
		if msg, ok := validateCoreSettings(r, pool, settings); !ok {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		updated, err := db.UpdateCoreSettings(r.Context(), pool, settings)
		if err != nil {
			logrus.Errorf("Failed to patch core settings for user %d: %v", userID, err)
			http.Error(w, "failed to update core settings", http.StatusInternalServerError)
			return
		}

		cache.DelSummaryCache(cache.SummaryCacheKey(userID))

		logrus.Infof("Updated core settings for user %d: space %d, period %d/%d",
			userID, updated.CurrentSpaceID, updated.CurrentMonth, updated.CurrentYear)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func GetTelegramSettings(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		settings, err := db.GetTelegramSettings(r.Context(), pool, userID)
		if err != nil {
			logrus.Errorf("Failed to get telegram settings for user %d: %v", userID, err)
			http.Error(w, "telegram settings not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(settings)
	}
}

func UpdateTelegramSettings(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		var req struct {
			TelegramID           int64  `json:"telegram_id"`
			TelegramUsername     string `json:"telegram_username"`
			NotificationsEnabled bool   `json:"notifications_enabled"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Errorf("Failed to decode update telegram settings request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		settings := &models.TelegramSettings{
			UserID:               userID,
			TelegramID:           req.TelegramID,
			TelegramUsername:     req.TelegramUsername,
			NotificationsEnabled: req.NotificationsEnabled,
		}
		updated, err := db.UpdateTelegramSettings(r.Context(), pool, settings)
		if err != nil {
			logrus.Errorf("Failed to update telegram settings for user %d: %v", userID, err)
			http.Error(w, "telegram settings not found", http.StatusNotFound)
			return
		}

		logrus.Infof("Updated telegram settings for user %d", userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func PatchTelegramSettings(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		var req struct {
			TelegramID           *int64  `json:"telegram_id"`
			TelegramUsername     *string `json:"telegram_username"`
			NotificationsEnabled *bool   `json:"notifications_enabled"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Errorf("Failed to decode patch telegram settings request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		settings, err := db.GetTelegramSettings(r.Context(), pool, userID)
		if err != nil {
			logrus.Errorf("Failed to get telegram settings for user %d: %v", userID, err)
			http.Error(w, "telegram settings not found", http.StatusNotFound)
			return
		}

		if req.TelegramID != nil {
			settings.TelegramID = *req.TelegramID
		}
		if req.TelegramUsername != nil {
			settings.TelegramUsername = *req.TelegramUsername
		}
		if req.NotificationsEnabled != nil {
			settings.NotificationsEnabled = *req.NotificationsEnabled
		}

		updated, err := db.UpdateTelegramSettings(r.Context(), pool, settings)
		if err != nil {
			logrus.Errorf("Failed to patch telegram settings for user %d: %v", userID, err)
			http.Error(w, "failed to update telegram settings", http.StatusInternalServerError)
			return
		}

		logrus.Infof("Updated telegram settings for user %d", userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}
