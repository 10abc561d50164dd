package job

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hirewire/job-market/internal/config"
	"github.com/hirewire/job-market/internal/email"
	"github.com/hirewire/job-market/internal/middleware"
	"github.com/hirewire/job-market/internal/server"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSigningKey = []byte("0123456789abcdef0123456789abcdef")

func newHandlerTestServer(store *sessions.CookieStore) server.Server {
	cfg := config.Config{
		SessionKey:     testSigningKey,
		JwtSigningKey:  testSigningKey,
		RequestTimeout: time.Second,
	}
	return server.NewServer(cfg, nil, mux.NewRouter(), email.Client{}, store)
}

func recruiterCookie(t *testing.T, store *sessions.CookieStore) *http.Cookie {
	t.Helper()
	claims := middleware.UserJWT{
		IsRecruiter: true,
		UserID:      "rec1",
		Email:       "rec@example.com",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	ss, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSigningKey)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	sess, err := store.Get(req, middleware.SessionName)
	require.NoError(t, err)
	sess.Values["jwt"] = ss
	require.NoError(t, sess.Save(req, w))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

func TestCreateJobHandlerNullBody(t *testing.T) {
	store := sessions.NewCookieStore(testSigningKey)
	svr := newHandlerTestServer(store)
	handler := CreateJobHandler(svr, NewRepository(nil))

	req := httptest.NewRequest(http.MethodPost, "/jobs", strings.NewReader("null"))
	req.AddCookie(recruiterCookie(t, store))
	w := httptest.NewRecorder()
	handler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := map[string]string{}
	require.NoError(t, json.NewDecoder(w.Result().Body).Decode(&body))
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
	assert.Equal(t, "title", body["field"])
}

func TestCreateJobHandlerMalformedBody(t *testing.T) {
	store := sessions.NewCookieStore(testSigningKey)
	svr := newHandlerTestServer(store)
	handler := CreateJobHandler(svr, NewRepository(nil))

	req := httptest.NewRequest(http.MethodPost, "/jobs", strings.NewReader("{not json"))
	req.AddCookie(recruiterCookie(t, store))
	w := httptest.NewRecorder()
	handler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := map[string]string{}
	require.NoError(t, json.NewDecoder(w.Result().Body).Decode(&body))
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
}
