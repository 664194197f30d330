package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/undercity-game/undercity/internal/domain"
	"github.com/undercity-game/undercity/internal/task"
)

// claimRequest builds a claim request routed through chi so the URL
// parameter is populated
func claimRequest(t *testing.T, taskID string, body interface{}) *http.Request {
	t.Helper()
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/tasks/"+taskID+"/claim", bytes.NewReader(raw))

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("taskID", taskID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestHandleRecordProgress(t *testing.T) {
	InitValidator()

	t.Run("Success", func(t *testing.T) {
		svc := new(MockTaskService)
		svc.On("UpdateProgress", mock.Anything, int64(7), domain.MetricCrimesCommitted, int64(1)).Return(nil)

		body, _ := json.Marshal(RecordProgressRequest{CharacterID: 7, Metric: "crimes_committed", Value: 1})
		req := httptest.NewRequest(http.MethodPost, "/tasks/progress", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		HandleRecordProgress(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), MsgProgressSuccess)
		svc.AssertExpectations(t)
	})

	t.Run("Unknown Metric Rejected By Validation", func(t *testing.T) {
		svc := new(MockTaskService)

		body, _ := json.Marshal(RecordProgressRequest{CharacterID: 7, Metric: "karma", Value: 1})
		req := httptest.NewRequest(http.MethodPost, "/tasks/progress", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		HandleRecordProgress(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Unknown metric")
		svc.AssertExpectations(t)
	})
}

func TestHandleClaimReward(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		taskID         string
		setupMock      func(*MockTaskService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "Success",
			taskID: "1",
			setupMock: func(m *MockTaskService) {
				m.On("ClaimReward", mock.Anything, int64(7), 1).Return(&task.ClaimResult{
					TaskID:       1,
					Reward:       domain.RewardBundle{Money: 500, Exp: 50},
					LevelsGained: 0,
					NewLevel:     1,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"task_id":1`,
		},
		{
			name:   "Not Completed",
			taskID: "1",
			setupMock: func(m *MockTaskService) {
				m.On("ClaimReward", mock.Anything, int64(7), 1).Return(nil, domain.ErrNotCompleted)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgNotCompletedError,
		},
		{
			name:   "Already Claimed",
			taskID: "1",
			setupMock: func(m *MockTaskService) {
				m.On("ClaimReward", mock.Anything, int64(7), 1).Return(nil, domain.ErrAlreadyClaimed)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgAlreadyClaimedError,
		},
		{
			name:           "Malformed Task ID",
			taskID:         "banana",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidTaskID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockTaskService)
			tt.setupMock(svc)

			req := claimRequest(t, tt.taskID, ClaimRewardRequest{CharacterID: 7})
			rec := httptest.NewRecorder()

			HandleClaimReward(svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
