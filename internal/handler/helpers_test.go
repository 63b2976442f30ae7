package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BuzzLyutic/task-tracker/internal/auth"
	"github.com/BuzzLyutic/task-tracker/internal/service"
	"github.com/BuzzLyutic/task-tracker/internal/testutil"
)

type testServer struct {
	handler http.Handler
	tokens  *auth.TokenIssuer
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	store := testutil.NewSQLiteStore(t)
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)

	h := NewRouter(RouterDeps{
		Auth:   service.NewAuthService(store.Users, auth.NewBcryptHasher(bcrypt.MinCost), tokens),
		Tasks:  service.NewTaskService(store.Tasks),
		Ping:   store.Ping,
		Logger: zap.NewNop(),
	})
	return &testServer{handler: h, tokens: tokens}
}

func (s *testServer) api() *apitest.APITest {
	return apitest.New().Handler(s.handler)
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

// register creates the user and returns a fresh access token for it.
func (s *testServer) register(t *testing.T, username, password string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/register", "", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return s.login(t, username, password)
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&tok))
	require.Equal(t, "bearer", tok.TokenType)
	return tok.AccessToken
}

func (s *testServer) createTask(t *testing.T, token string, body interface{}) taskResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/tasks/auth/", token, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var task taskResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&task))
	return task
}

type taskResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	IsDone      bool    `json:"is_done"`
	OwnerID     *int64  `json:"owner_id"`
	CreatedAt   string  `json:"created_at"`
}
