package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Eloquas/Eloverit-sub002/internal/achievement"
	"github.com/Eloquas/Eloverit-sub002/internal/domain"
	"github.com/Eloquas/Eloverit-sub002/internal/progression"
)

// Leaderboard limits accepted over HTTP
const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)

// RecordActivityRequest is the body of POST /activity
type RecordActivityRequest struct {
	UserID       string                 `json:"user_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	ActivityType string                 `json:"activity_type" validate:"required,max=50"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

// UnlockResponse lists achievements newly unlocked by a request
type UnlockResponse struct {
	Unlocked []domain.UnlockEvent `json:"unlocked"`
	Count    int                  `json:"count"`
}

// AchievementView is a catalog entry with its derived rarity
type AchievementView struct {
	domain.Achievement
	Rarity domain.Rarity `json:"rarity"`
}

// LeaderboardQuery is parsed from GET /leaderboard query parameters
type LeaderboardQuery struct {
	Period string `json:"period" validate:"period"`
	Limit  int    `json:"limit" validate:"gte=0,lte=100"`
}

func newUnlockResponse(events []domain.UnlockEvent) UnlockResponse {
	if events == nil {
		events = []domain.UnlockEvent{}
	}
	return UnlockResponse{Unlocked: events, Count: len(events)}
}

func viewOf(def domain.Achievement) AchievementView {
	return AchievementView{Achievement: def, Rarity: progression.Rarity(def)}
}

// HandleRecordActivity records one activity and returns the unlocks it caused
// @Summary Record activity
// @Description Apply an activity to a user's stats and evaluate achievements
// @Tags achievements
// @Accept json
// @Produce json
// @Param request body RecordActivityRequest true "Activity"
// @Success 200 {object} UnlockResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /activity [post]
func HandleRecordActivity(svc achievement.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RecordActivityRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Record activity"); err != nil {
			return
		}

		events, err := svc.RecordActivity(r.Context(), req.UserID, req.ActivityType, req.Metadata)
		if err != nil {
			respondServiceError(w, r, err, ErrMsgRecordActivityFailed)
			return
		}

		loggerFor(r).Info(LogMsgActivityRecorded, "user_id", req.UserID, "activity_type", req.ActivityType, "unlocked", len(events))
		respondJSON(w, http.StatusOK, newUnlockResponse(events))
	}
}

// HandleGetAllAchievements lists the catalog
// @Summary List achievements
// @Tags achievements
// @Produce json
// @Success 200 {array} AchievementView
// @Router /achievements [get]
func HandleGetAllAchievements(svc achievement.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defs := svc.GetAllAchievements()
		views := make([]AchievementView, 0, len(defs))
		for _, def := range defs {
			views = append(views, viewOf(def))
		}
		respondJSON(w, http.StatusOK, views)
	}
}

// HandleGetAchievement returns one catalog entry
// @Summary Get achievement
// @Tags achievements
// @Produce json
// @Param id path string true "Achievement ID"
// @Success 200 {object} AchievementView
// @Failure 404 {object} ErrorResponse
// @Router /achievements/{id} [get]
func HandleGetAchievement(svc achievement.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		def, ok := svc.GetAchievementByID(chi.URLParam(r, "id"))
		if !ok {
			respondError(w, http.StatusNotFound, ErrMsgAchievementNotFoundErr)
			return
		}
		respondJSON(w, http.StatusOK, viewOf(def))
	}
}

// HandleGetUserAchievements returns unlocked, in-progress and derived stats
// @Summary Get user achievements
// @Tags achievements
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} domain.UserAchievements
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userID}/achievements [get]
func HandleGetUserAchievements(svc achievement.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.GetUserAchievements(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			respondServiceError(w, r, err, ErrMsgGetUserAchievementsFailed)
			return
		}
		respondJSON(w, http.StatusOK, view)
	}
}

// HandleEvaluate re-runs the unlock evaluator for a user
// @Summary Evaluate achievements
// @Tags achievements
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} UnlockResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userID}/evaluate [post]
func HandleEvaluate(svc achievement.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")
		events, err := svc.Evaluate(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, err, ErrMsgEvaluateFailed)
			return
		}
		loggerFor(r).Info(LogMsgEvaluated, "user_id", userID, "unlocked", len(events))
		respondJSON(w, http.StatusOK, newUnlockResponse(events))
	}
}

// HandleGetLeaderboard ranks users for a period
// @Summary Leaderboard
// @Tags leaderboard
// @Produce json
// @Param period query string false "daily, weekly, monthly or all" default(all)
// @Param limit query int false "Max entries (0-100)" default(10)
// @Success 200 {array} domain.LeaderboardEntry
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /leaderboard [get]
func HandleGetLeaderboard(svc achievement.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := GetOptionalIntQueryParam(r, "limit", DefaultLeaderboardLimit)
		if !ok {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
			return
		}
		q := LeaderboardQuery{
			Period: strings.ToLower(GetOptionalQueryParam(r, "period", string(domain.PeriodAllTime))),
			Limit:  limit,
		}
		if err := GetValidator().ValidateStruct(q); err != nil {
			loggerFor(r).Warn(LogMsgValidationFailed, "action", "Leaderboard", "error", err)
			respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error:  ErrMsgInvalidRequestSummary,
				Fields: FormatValidationError(err),
			})
			return
		}

		entries, err := svc.GetLeaderboard(r.Context(), domain.LeaderboardScope{
			Period: domain.LeaderboardPeriod(q.Period),
			Limit:  q.Limit,
		})
		if err != nil {
			respondServiceError(w, r, err, ErrMsgGetLeaderboardFailed)
			return
		}
		if entries == nil {
			entries = []domain.LeaderboardEntry{}
		}
		respondJSON(w, http.StatusOK, entries)
	}
}
