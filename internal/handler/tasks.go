package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/undercity-game/undercity/internal/domain"
	"github.com/undercity-game/undercity/internal/logger"
	"github.com/undercity-game/undercity/internal/task"
)

// HandleListTasks returns all task definitions
// @Summary List tasks
// @Description List every task definition, including inactive ones
// @Tags tasks
// @Produce json
// @Success 200 {object} DataResponse
// @Router /tasks [get]
func HandleListTasks(svc task.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tasks, err := svc.ListTasks(r.Context())
		if err != nil {
			respondServiceError(w, r, ErrMsgListTasksFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: tasks})
	}
}

// HandleGetTaskProgress returns a character's progress rows
// @Summary Get task progress
// @Description List a character's progress against every tracked task
// @Tags tasks
// @Produce json
// @Param characterID path int true "Character ID"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /tasks/progress/{characterID} [get]
func HandleGetTaskProgress(svc task.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		characterID, ok := CharacterIDFromPath(r, w)
		if !ok {
			return
		}

		progress, err := svc.GetProgress(r.Context(), characterID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetProgressFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: progress})
	}
}

// RecordProgressRequest represents one metric observation
type RecordProgressRequest struct {
	CharacterID int64  `json:"character_id" validate:"required,gt=0"`
	Metric      string `json:"metric" validate:"required,metric"`
	Value       int64  `json:"value" validate:"gte=0"`
}

// HandleRecordProgress applies a metric observation to all tracking tasks
// @Summary Record progress
// @Description Feed one metric observation into every active task tracking it
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body RecordProgressRequest true "Observation details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /tasks/progress [post]
func HandleRecordProgress(svc task.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RecordProgressRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Record progress"); err != nil {
			return
		}

		if err := svc.UpdateProgress(r.Context(), req.CharacterID, domain.Metric(req.Metric), req.Value); err != nil {
			respondServiceError(w, r, ErrMsgUpdateProgressFailed, err)
			return
		}

		log.Debug("Progress recorded",
			"character_id", req.CharacterID,
			"metric", req.Metric,
			"value", req.Value)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgProgressSuccess})
	}
}

// ClaimRewardRequest identifies the claiming character
type ClaimRewardRequest struct {
	CharacterID int64 `json:"character_id" validate:"required,gt=0"`
}

// HandleClaimReward pays out a completed task exactly once
// @Summary Claim reward
// @Description Claim a completed task's reward bundle; each task pays once
// @Tags tasks
// @Accept json
// @Produce json
// @Param taskID path int true "Task ID"
// @Param request body ClaimRewardRequest true "Claimant"
// @Success 200 {object} task.ClaimResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /tasks/{taskID}/claim [post]
func HandleClaimReward(svc task.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		taskID, err := strconv.Atoi(chi.URLParam(r, "taskID"))
		if err != nil || taskID <= 0 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidTaskID)
			return
		}

		var req ClaimRewardRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim reward"); err != nil {
			return
		}

		result, err := svc.ClaimReward(r.Context(), req.CharacterID, taskID)
		if err != nil {
			respondServiceError(w, r, ErrMsgClaimRewardFailed, err)
			return
		}

		log.Info("Reward claimed",
			"character_id", req.CharacterID,
			"task_id", taskID,
			"levels_gained", result.LevelsGained)

		respondJSON(w, http.StatusOK, result)
	}
}
