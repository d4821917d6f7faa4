package read

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Edu92337/quizmaster-backend/internal/http/middlewarectx"
	"github.com/Edu92337/quizmaster-backend/internal/services/progress"
)

const (
	callerUID = "6f1d2c3b-8a4e-4b7f-9c0d-1e2f3a4b5c6d"
	otherUID  = "0a9b8c7d-6e5f-4a3b-8c1d-0e9f8a7b6c5d"
)

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) ForUser(ctx context.Context, caller, user string) ([]progress.Entry, error) {
	args := m.Called(ctx, caller, user)
	if v := args.Get(0); v != nil {
		return v.([]progress.Entry), args.Error(1)
	}
	return nil, args.Error(1)
}

func newRequest(userID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/progress/"+userID, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("user_id", userID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	return req.WithContext(middlewarectx.WithUser(ctx, callerUID, "ana@example.com"))
}

func TestReadHandler(t *testing.T) {
	tests := []struct {
		name           string
		userID         string
		setupMock      func(m *ServiceMock)
		wantStatusCode int
		wantBody       string
	}{
		{
			name:   "own progress",
			userID: callerUID,
			setupMock: func(m *ServiceMock) {
				m.On("ForUser", mock.Anything, callerUID, callerUID).Return([]progress.Entry{
					{Date: "2026-10-01", QuestionsAnswered: 4, CorrectAnswers: 3, ScorePercentage: 75},
					{Date: "2026-10-02", QuestionsAnswered: 0, CorrectAnswers: 0, ScorePercentage: 0},
				}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody: `[{"date":"2026-10-01","questions_answered":4,"correct_answers":3,"score_percentage":75},
				{"date":"2026-10-02","questions_answered":0,"correct_answers":0,"score_percentage":0}]`,
		},
		{
			name:   "no history",
			userID: callerUID,
			setupMock: func(m *ServiceMock) {
				m.On("ForUser", mock.Anything, callerUID, callerUID).Return([]progress.Entry{}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `[]`,
		},
		{
			name:   "someone else",
			userID: otherUID,
			setupMock: func(m *ServiceMock) {
				m.On("ForUser", mock.Anything, callerUID, otherUID).
					Return(nil, fmt.Errorf("progress.ForUser: %w", progress.ErrForbidden)).Once()
			},
			wantStatusCode: http.StatusForbidden,
			wantBody:       `{"msg":"Acesso não autorizado"}`,
		},
		{
			name:   "storage error",
			userID: callerUID,
			setupMock: func(m *ServiceMock) {
				m.On("ForUser", mock.Anything, callerUID, callerUID).Return(nil, errors.New("db down")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantBody:       `{"msg":"Erro ao carregar progresso"}`,
		},
		{
			name:           "malformed uid",
			userID:         "not-a-uuid",
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"msg":"ID de usuário inválido"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			rr := httptest.NewRecorder()
			New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).ServeHTTP(rr, newRequest(tt.userID))

			assert.Equal(t, tt.wantStatusCode, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
