package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	cache "github.com/dnb8866/family-finances-2/src/db"
	db "github.com/dnb8866/family-finances-2/src/db/sql"
	"github.com/dnb8866/family-finances-2/src/models"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func linkConfirmation(info *models.SpaceLinkInfo) string {
	return fmt.Sprintf("User %s (id %d) linked to space %s (id %d) owned by %s (id %d).",
		info.LinkedUsername, info.LinkedUserID,
		info.SpaceName, info.SpaceID,
		info.OwnerUsername, info.OwnerID)
}

func unlinkConfirmation(info *models.SpaceLinkInfo) string {
	return fmt.Sprintf("User %s (id %d) unlinked from space %s (id %d) owned by %s (id %d).",
		info.LinkedUsername, info.LinkedUserID,
		info.SpaceName, info.SpaceID,
		info.OwnerUsername, info.OwnerID)
}

// CreateSpace creates a space owned by the path user regardless of the body.
func CreateSpace(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Errorf("Failed to decode create space request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}

		if _, err := db.GetUserByID(r.Context(), pool, userID); err != nil {
			logrus.Errorf("Failed to get user - user_id: %d: %v", userID, err)
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		space := &models.Space{Name: req.Name, UserID: userID}
		created, err := db.CreateSpace(r.Context(), pool, space)
		if err != nil {
			logrus.Errorf("Failed to create space for user %d: %v", userID, err)
			http.Error(w, "failed to create space", http.StatusInternalServerError)
			return
		}

		cache.DelSpaceCache(cache.SpaceCacheKey(userID))

		logrus.Infof("Created space id %d for user %d, name %s", created.ID, userID, created.Name)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

// GetAllSpacesForUser lists the user's spaces together with the owner's
// identity in one envelope.
func GetAllSpacesForUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		namePrefix := r.URL.Query().Get("name")

		cacheKey := cache.SpaceCacheKey(userID)
		if namePrefix == "" {
			if value, found := cache.Cache.Get(cacheKey); found {
				if list, ok := value.(models.SpaceList); ok {
					w.Header().Set("Content-Type", "application/json")
					json.NewEncoder(w).Encode(list)
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

		spaces, err := db.ListSpaces(r.Context(), pool, user.ID, namePrefix)
		if err != nil {
			logrus.Errorf("Failed to get spaces for user %d: %v", user.ID, err)
			http.Error(w, "failed to get spaces", http.StatusInternalServerError)
			return
		}

		list := models.SpaceList{
			OwnerID:       user.ID,
			OwnerUsername: user.Username,
			Spaces:        spaces,
		}
		if namePrefix == "" {
			cache.SetSpaceCache(cacheKey, list)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	}
}

func GetSpaceByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}
		spaceID, err := strconv.Atoi(chi.URLParam(r, "space_id"))
		if err != nil {
			logrus.Errorf("Invalid space id param: %s", chi.URLParam(r, "space_id"))
			http.Error(w, "invalid space id", http.StatusBadRequest)
			return
		}

		space, err := db.GetSpaceByID(r.Context(), pool, userID, spaceID)
		if err != nil {
			logrus.Errorf("Space id %d not found for user %d: %v", spaceID, userID, err)
			http.Error(w, "space not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(space)
	}
}

func UpdateSpace(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}
		spaceID, err := strconv.Atoi(chi.URLParam(r, "space_id"))
		if err != nil {
			logrus.Errorf("Invalid space id param: %s", chi.URLParam(r, "space_id"))
			http.Error(w, "invalid space id", http.StatusBadRequest)
			return
		}

		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Errorf("Failed to decode update space request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}

		space := &models.Space{ID: spaceID, Name: req.Name, UserID: userID}
		updated, err := db.UpdateSpace(r.Context(), pool, space)
		if err != nil {
			logrus.Errorf("Failed to update space id %d for user %d: %v", spaceID, userID, err)
			http.Error(w, "space not found", http.StatusNotFound)
			return
		}

		cache.DelSpaceCache(cache.SpaceCacheKey(userID))

		logrus.Infof("Updated space id %d for user %d", updated.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func PatchSpace(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}
		spaceID, err := strconv.Atoi(chi.URLParam(r, "space_id"))
		if err != nil {
			logrus.Errorf("Invalid space id param: %s", chi.URLParam(r, "space_id"))
			http.Error(w, "invalid space id", http.StatusBadRequest)
			return
		}

		var req struct {
			Name *string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Errorf("Failed to decode patch space request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		space, err := db.GetSpaceByID(r.Context(), pool, userID, spaceID)
		if err != nil {
			logrus.Errorf("Space id %d not found for user %d: %v", spaceID, userID, err)
			http.Error(w, "space not found", http.StatusNotFound)
			return
		}

		if req.Name != nil {
			space.Name = *req.Name
		}
		if space.Name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}

		updated, err := db.UpdateSpace(r.Context(), pool, space)
		if err != nil {
			logrus.Errorf("Failed to patch space id %d for user %d: %v", spaceID, userID, err)
			http.Error(w, "failed to update space", http.StatusInternalServerError)
			return
		}

		cache.DelSpaceCache(cache.SpaceCacheKey(userID))

		logrus.Infof("Updated space id %d for user %d", updated.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteSpace(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}
		spaceID, err := strconv.Atoi(chi.URLParam(r, "space_id"))
		if err != nil {
			logrus.Errorf("Invalid space id param: %s", chi.URLParam(r, "space_id"))
			http.Error(w, "invalid space id", http.StatusBadRequest)
			return
		}

		if err := db.DeleteSpace(r.Context(), pool, userID, spaceID); err != nil {
			logrus.Errorf("Failed to delete space id %d for user %d: %v", spaceID, userID, err)
			if strings.Contains(err.Error(), "foreign key") {
				http.Error(w, "space is still selected in settings", http.StatusBadRequest)
				return
			}
			http.Error(w, "space not found", http.StatusNotFound)
			return
		}

		cache.DelSpaceCache(cache.SpaceCacheKey(userID))
		cache.ClearAllSummaryCaches()

		logrus.Infof("Deleted space id %d for user %d", spaceID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "space deleted"})
	}
}

type linkUserRequest struct {
	LinkedUserID int `json:"linked_user_id"`
}

// LinkUser associates another user with a space owned by the path user.
// Repeating the call for an existing link fails by design.
func LinkUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}
		spaceID, err := strconv.Atoi(chi.URLParam(r, "space_id"))
		if err != nil {
			logrus.Errorf("Invalid space id param: %s", chi.URLParam(r, "space_id"))
			http.Error(w, "invalid space id", http.StatusBadRequest)
			return
		}

		var req linkUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Errorf("Failed to decode link user request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.LinkedUserID <= 0 {
			http.Error(w, "linked_user_id is required", http.StatusBadRequest)
			return
		}

		info, err := db.LinkUserToSpace(r.Context(), pool, userID, spaceID, req.LinkedUserID)
		if err != nil {
			switch {
			case errors.Is(err, db.ErrSpaceNotFound):
				logrus.Errorf("Space id %d not found for user %d", spaceID, userID)
				http.Error(w, err.Error(), http.StatusNotFound)
			case errors.Is(err, db.ErrLinkedUserNotFound),
				errors.Is(err, db.ErrAlreadyLinked),
				errors.Is(err, db.ErrLinkOwner):
				logrus.Errorf("Failed to link user %d to space %d: %v", req.LinkedUserID, spaceID, err)
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				logrus.Errorf("Failed to link user %d to space %d: %v", req.LinkedUserID, spaceID, err)
				http.Error(w, "failed to link user", http.StatusInternalServerError)
			}
			return
		}

		cache.ClearAllSummaryCaches()

		logrus.Infof("Linked user %d to space %d owned by user %d", info.LinkedUserID, info.SpaceID, info.OwnerID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": linkConfirmation(info)})
	}
}

// UnlinkUser removes an existing link; unlinking a user who is not linked
// fails the same way linking twice does.
func UnlinkUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}
		spaceID, err := strconv.Atoi(chi.URLParam(r, "space_id"))
		if err != nil {
			logrus.Errorf("Invalid space id param: %s", chi.URLParam(r, "space_id"))
			http.Error(w, "invalid space id", http.StatusBadRequest)
			return
		}

		var req linkUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Errorf("Failed to decode unlink user request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.LinkedUserID <= 0 {
			http.Error(w, "linked_user_id is required", http.StatusBadRequest)
			return
		}

		info, err := db.UnlinkUserFromSpace(r.Context(), pool, userID, spaceID, req.LinkedUserID)
		if err != nil {
			switch {
			case errors.Is(err, db.ErrSpaceNotFound):
				logrus.Errorf("Space id %d not found for user %d", spaceID, userID)
				http.Error(w, err.Error(), http.StatusNotFound)
			case errors.Is(err, db.ErrLinkedUserNotFound),
				errors.Is(err, db.ErrLinkNotFound):
				logrus.Errorf("Failed to unlink user %d from space %d: %v", req.LinkedUserID, spaceID, err)
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				logrus.Errorf("Failed to unlink user %d from space %d: %v", req.LinkedUserID, spaceID, err)
				http.Error(w, "failed to unlink user", http.StatusInternalServerError)
			}
			return
		}

		cache.ClearAllSummaryCaches()

		logrus.Infof("Unlinked user %d from space %d owned by user %d", info.LinkedUserID, info.SpaceID, info.OwnerID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": unlinkConfirmation(info)})
	}
}
