package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hirewire/job-market/internal/config"
	"github.com/hirewire/job-market/internal/email"
	"github.com/hirewire/job-market/internal/server"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSignOnTestServer() server.Server {
	key := []byte("0123456789abcdef0123456789abcdef")
	cfg := config.Config{SessionKey: key, JwtSigningKey: key, RequestTimeout: time.Second}
	return server.NewServer(cfg, nil, mux.NewRouter(), email.Client{}, sessions.NewCookieStore(key))
}

func postSignOn(t *testing.T, body string) (int, map[string]string) {
	t.Helper()
	svr := newSignOnTestServer()
	handler := RequestSignOnTokenHandler(svr, NewRepository(nil))
	req := httptest.NewRequest(http.MethodPost, "/auth/signon", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler(w, req)
	out := map[string]string{}
	require.NoError(t, json.NewDecoder(w.Result().Body).Decode(&out))
	return w.Code, out
}

func TestRequestSignOnTokenRejectsInvalidEmail(t *testing.T) {
	code, body := postSignOn(t, `{"email":"not-an-email","user_type":"candidate"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
	assert.Equal(t, "email", body["field"])
}

func TestRequestSignOnTokenRejectsUnknownUserType(t *testing.T) {
	code, body := postSignOn(t, `{"email":"dana@example.com","user_type":"robot"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
	assert.Equal(t, "user_type", body["field"])
}

func TestRequestSignOnTokenNullBody(t *testing.T) {
	code, body := postSignOn(t, "null")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
}
