package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	cache "github.com/dnb8866/family-finances-2/src/db"
	db "github.com/dnb8866/family-finances-2/src/db/sql"
	"github.com/dnb8866/family-finances-2/src/models"
	"github.com/dnb8866/family-finances-2/src/util"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

type createGroupRequest struct {
	GroupName       string  `json:"group_name"`
	TypeTransaction string  `json:"type_transaction"`
	PlanValue       float64 `json:"plan_value"`
	PeriodMonth     int     `json:"period_month"`
	PeriodYear      int     `json:"period_year"`
}

func (req createGroupRequest) validate() error {
	if !util.ValidateGroupName(req.GroupName) {
		return fmt.Errorf("group_name must be between 1 and 100 characters")
	}
	if !util.ValidateTransactionType(req.TypeTransaction) {
		return fmt.Errorf("type_transaction must be income or expense")
	}
	if req.PlanValue < 0 {
		return fmt.Errorf("plan_value must not be negative")
	}
	if !util.ValidateMonth(req.PeriodMonth) {
		return fmt.Errorf("period_month must be between 1 and 12")
	}
	if !util.ValidateYear(req.PeriodYear) {
		return fmt.Errorf("period_year must be between 2000 and 2100")
	}
	return nil
}

// CreateGroup declares a summary bucket in the user's current basename. The
// namespace comes from the user's settings, never from the client.
func CreateGroup(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		var req createGroupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Errorf("Failed to decode create group request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := req.validate(); err != nil {
			logrus.Errorf("Group validation failed for user %d: %v", userID, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		settings, err := db.GetCoreSettings(r.Context(), pool, userID)
		if err != nil {
			logrus.Errorf("Failed to get core settings for user %d: %v", userID, err)
			http.Error(w, "core settings not found", http.StatusNotFound)
			return
		}

		group := &models.Summary{
			SpaceID:         settings.CurrentBasenameID,
			PeriodMonth:     req.PeriodMonth,
			PeriodYear:      req.PeriodYear,
			TypeTransaction: req.TypeTransaction,
			GroupName:       req.GroupName,
			PlanValue:       req.PlanValue,
		}

		created, err := db.CreateGroup(r.Context(), pool, group)
		if err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				logrus.Errorf("Group already exists for user %d: %s/%s %d/%d",
					userID, req.TypeTransaction, req.GroupName, req.PeriodMonth, req.PeriodYear)
				http.Error(w, "group already exists for this space, period and type", http.StatusBadRequest)
				return
			}
			logrus.Errorf("Failed to create group for user %d: %v", userID, err)
			http.Error(w, "failed to create group", http.StatusInternalServerError)
			return
		}

		cache.ClearAllSummaryCaches()

		logrus.Infof("Created group id %d for user %d, group %s", created.ID, userID, created.GroupName)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetGroupByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}
		groupID, err := strconv.Atoi(chi.URLParam(r, "group_id"))
		if err != nil {
			logrus.Errorf("Invalid group id param: %s", chi.URLParam(r, "group_id"))
			http.Error(w, "invalid group id", http.StatusBadRequest)
			return
		}

		group, err := db.GetGroupByID(r.Context(), pool, userID, groupID)
		if err != nil {
			logrus.Errorf("Group id %d not found for user %d: %v", groupID, userID, err)
			http.Error(w, "group not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(group)
	}
}

func GetAllGroupsForUser(pool *pgxpool.Pool) http.HandlerFunc {
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

		groups, err := db.ListGroups(r.Context(), pool, userID, filter)
		if err != nil {
			logrus.Errorf("Failed to get groups for user %d: %v", userID, err)
			http.Error(w, "failed to get groups", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(groups)
	}
}

func UpdateGroup(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}
		groupID, err := strconv.Atoi(chi.URLParam(r, "group_id"))
		if err != nil {
			logrus.Errorf("Invalid group id param: %s", chi.URLParam(r, "group_id"))
			http.Error(w, "invalid group id", http.StatusBadRequest)
			return
		}

		var req struct {
			GroupName       string  `json:"group_name"`
			TypeTransaction string  `json:"type_transaction"`
			PlanValue       float64 `json:"plan_value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Errorf("Failed to decode update group request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if !util.ValidateGroupName(req.GroupName) {
			http.Error(w, "group_name must be between 1 and 100 characters", http.StatusBadRequest)
			return
		}
		if !util.ValidateTransactionType(req.TypeTransaction) {
			http.Error(w, "type_transaction must be income or expense", http.StatusBadRequest)
			return
		}
		if req.PlanValue < 0 {
			http.Error(w, "plan_value must not be negative", http.StatusBadRequest)
			return
		}

		group := &models.Summary{
			ID:              groupID,
			GroupName:       req.GroupName,
			TypeTransaction: req.TypeTransaction,
			PlanValue:       req.PlanValue,
		}
		updated, err := db.UpdateGroup(r.Context(), pool, userID, group)
		if err != nil {
			logrus.Errorf("Failed to update group id %d for user %d: %v", groupID, userID, err)
			http.Error(w, "group not found", http.StatusNotFound)
			return
		}

		cache.ClearAllSummaryCaches()

		logrus.Infof("Updated group id %d for user %d", updated.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func PatchGroup(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}
		groupID, err := strconv.Atoi(chi.URLParam(r, "group_id"))
		if err != nil {
			logrus.Errorf("Invalid group id param: %s", chi.URLParam(r, "group_id"))
			http.Error(w, "invalid group id", http.StatusBadRequest)
			return
		}

		var req struct {
			GroupName       *string  `json:"group_name"`
			TypeTransaction *string  `json:"type_transaction"`
			PlanValue       *float64 `json:"plan_value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Errorf("Failed to decode patch group request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		group, err := db.GetGroupByID(r.Context(), pool, userID, groupID)
		if err != nil {
			logrus.Errorf("Group id %d not found for user %d: %v", groupID, userID, err)
			http.Error(w, "group not found", http.StatusNotFound)
			return
		}

		if req.GroupName != nil {
			group.GroupName = *req.GroupName
		}
		if req.TypeTransaction != nil {
			group.TypeTransaction = *req.TypeTransaction
		}
		if req.PlanValue != nil {
			group.PlanValue = *req.PlanValue
		}
		if !util.ValidateGroupName(group.GroupName) {
			http.Error(w, "group_name must be between 1 and 100 characters", http.StatusBadRequest)
			return
		}
		if !util.ValidateTransactionType(group.TypeTransaction) {
			http.Error(w, "type_transaction must be income or expense", http.StatusBadRequest)
			return
		}
		if group.PlanValue < 0 {
			http.Error(w, "plan_value must not be negative", http.StatusBadRequest)
			return
		}

		updated, err := db.UpdateGroup(r.Context(), pool, userID, group)
		if err != nil {
			logrus.Errorf("Failed to patch group id %d for user %d: %v", groupID, userID, err)
			http.Error(w, "failed to update group", http.StatusInternalServerError)
			return
		}

		cache.ClearAllSummaryCaches()

		logrus.Infof("Updated group id %d for user %d", updated.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteGroup(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}
		groupID, err := strconv.Atoi(chi.URLParam(r, "group_id"))
		if err != nil {
			logrus.Errorf("Invalid group id param: %s", chi.URLParam(r, "group_id"))
			http.Error(w, "invalid group id", http.StatusBadRequest)
			return
		}

		if err := db.DeleteGroup(r.Context(), pool, userID, groupID); err != nil {
			logrus.Errorf("Failed to delete group id %d for user %d: %v", groupID, userID, err)
			http.Error(w, "group not found", http.StatusNotFound)
			return
		}

		cache.ClearAllSummaryCaches()

		logrus.Infof("Deleted group id %d for user %d", groupID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "group deleted"})
	}
}
