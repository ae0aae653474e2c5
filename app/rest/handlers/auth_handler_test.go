package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"account-service/app/domain"
	mock_port "account-service/app/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func readySession(identity *domain.Identity, profile *domain.Profile) domain.Session {
	return domain.Session{
		Phase:    domain.PhaseReady,
		Identity: identity,
		Profile:  profile,
		Version:  3,
	}
}

func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	identity := &domain.Identity{ID: uuid.New(), EmailNormalized: "alice@example.com", OriginalEmail: "alice"}
	profile := &domain.Profile{ID: identity.ID, Name: "Alice", Email: "alice", CreatedAt: time.Now(), UpdatedAt: time.Now()}

	tests := []struct {
		name       string
		body       string
		setupMocks func(*mock_port.MockAccountUsecase)
		wantStatus int
		wantCode   domain.ErrorKind
	}{
		{
			name: "successful registration returns profile and session",
			body: `{"email":"alice","password":"password123","name":"Alice"}`,
			setupMocks: func(m *mock_port.MockAccountUsecase) {
				m.EXPECT().
					Register(gomock.Any(), "alice", "password123", domain.ProfileInput{Name: "Alice"}).
					Return(profile, nil)
				m.EXPECT().Session().Return(readySession(identity, profile))
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "duplicate identity maps to conflict",
			body: `{"email":"alice","password":"password123"}`,
			setupMocks: func(m *mock_port.MockAccountUsecase) {
				m.EXPECT().
					Register(gomock.Any(), "alice", "password123", domain.ProfileInput{}).
					Return(nil, domain.ErrDuplicateIdentity)
			},
			wantStatus: http.StatusConflict,
			wantCode:   domain.KindDuplicateIdentity,
		},
		{
			name:       "short password is rejected before the flow starts",
			body:       `{"email":"alice","password":"short"}`,
			setupMocks: func(*mock_port.MockAccountUsecase) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   domain.KindValidation,
		},
		{
			name: "provider outage maps to service unavailable",
			body: `{"email":"alice","password":"password123"}`,
			setupMocks: func(m *mock_port.MockAccountUsecase) {
				m.EXPECT().
					Register(gomock.Any(), "alice", "password123", domain.ProfileInput{}).
					Return(nil, domain.ErrProviderUnavailable)
			},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   domain.KindProviderUnavailable,
		},
		{
			name:       "malformed body maps to bad request",
			body:       `{not json`,
			setupMocks: func(*mock_port.MockAccountUsecase) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   domain.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			accounts := mock_port.NewMockAccountUsecase(ctrl)
			tt.setupMocks(accounts)

			handler := NewAuthHandler(accounts, testLogger())
			c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/register", tt.body)

			require.NoError(t, handler.Register(c))
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantCode != "" {
				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, string(tt.wantCode), body["code"])
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	identity := &domain.Identity{ID: uuid.New(), EmailNormalized: "alice@example.com", OriginalEmail: "alice"}
	profile := &domain.Profile{ID: identity.ID, Name: "Alice", Email: "alice"}

	tests := []struct {
		name       string
		setupMocks func(*mock_port.MockAccountUsecase)
		wantStatus int
	}{
		{
			name: "successful login",
			setupMocks: func(m *mock_port.MockAccountUsecase) {
				m.EXPECT().
					Login(gomock.Any(), "alice", "password123").
					Return(profile, nil)
				m.EXPECT().Session().Return(readySession(identity, profile))
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "invalid credentials map to unauthorized",
			setupMocks: func(m *mock_port.MockAccountUsecase) {
				m.EXPECT().
					Login(gomock.Any(), "alice", "password123").
					Return(nil, domain.ErrInvalidCredentials)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "concurrent mutation maps to conflict",
			setupMocks: func(m *mock_port.MockAccountUsecase) {
				m.EXPECT().
					Login(gomock.Any(), "alice", "password123").
					Return(nil, domain.ErrOperationInProgress)
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			accounts := mock_port.NewMockAccountUsecase(ctrl)
			tt.setupMocks(accounts)

			handler := NewAuthHandler(accounts, testLogger())
			c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/login",
				`{"email":"alice","password":"password123"}`)

			require.NoError(t, handler.Login(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAuthHandler_GetSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mock_port.NewMockAccountUsecase(ctrl)

	accounts.EXPECT().Session().Return(domain.AnonymousSession())

	handler := NewAuthHandler(accounts, testLogger())
	c, rec := newJSONContext(t, http.MethodGet, "/v1/auth/session", "")

	require.NoError(t, handler.GetSession(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, domain.PhaseAnonymous, body.Session.Phase)
}

func TestAuthHandler_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mock_port.NewMockAccountUsecase(ctrl)

	accounts.EXPECT().Logout(gomock.Any()).Return(nil)
	accounts.EXPECT().Session().Return(domain.AnonymousSession())

	handler := NewAuthHandler(accounts, testLogger())
	c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/logout", "")

	require.NoError(t, handler.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_RequestPasswordReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mock_port.NewMockAccountUsecase(ctrl)

	accounts.EXPECT().RequestPasswordReset(gomock.Any(), "alice").Return(nil)

	handler := NewAuthHandler(accounts, testLogger())
	c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/recovery", `{"email":"alice"}`)

	require.NoError(t, handler.RequestPasswordReset(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
