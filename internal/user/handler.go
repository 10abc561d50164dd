package user

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hirewire/job-market/internal/apperror"
	"github.com/hirewire/job-market/internal/middleware"
	"github.com/hirewire/job-market/internal/server"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
	"github.com/segmentio/ksuid"
)

type signOnRq struct {
	Email    string `json:"email"`
	UserType string `json:"user_type"`
}

// RequestSignOnTokenHandler emails a one-time sign-on link. The user row is
// only created once the token is verified.
func RequestSignOnTokenHandler(svr server.Server, userRepo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := signOnRq{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			svr.JSON(w, http.StatusBadRequest, apperror.Body(apperror.Validation("body", "invalid request body")))
			return
		}
		if !svr.IsEmail(req.Email) {
			svr.JSON(w, http.StatusBadRequest, apperror.Body(apperror.Validation("email", "email is invalid")))
			return
		}
		if req.UserType != UserTypeCandidate && req.UserType != UserTypeRecruiter {
			svr.JSON(w, http.StatusBadRequest, apperror.Body(apperror.Validation("user_type", "user_type must be candidate or recruiter")))
			return
		}
		k, err := ksuid.NewRandom()
		if err != nil {
			svr.Log(err, "unable to generate sign on token")
			svr.JSON(w, http.StatusBadGateway, nil)
			return
		}
		ctx, cancel := svr.RequestContext(r)
		defer cancel()
		if err := userRepo.SaveTokenSignOn(ctx, req.Email, k.String(), req.UserType); err != nil {
			svr.Log(err, "unable to save sign on token")
			svr.JSON(w, http.StatusBadGateway, nil)
			return
		}
		link := fmt.Sprintf("%s%s/auth/verify/%s", svr.GetConfig().URLProtocol, svr.GetConfig().SiteHost, k.String())
		err = svr.GetEmail().SendEmail(
			svr.GetEmail().NoReplySenderAddress(),
			req.Email,
			svr.GetEmail().SupportSenderAddress(),
			fmt.Sprintf("Sign on to %s", svr.GetConfig().SiteName),
			fmt.Sprintf("Use the following link to sign on to %s %s. The link expires in 7 days.", svr.GetConfig().SiteName, link),
		)
		if err != nil {
			svr.Log(err, "unable to send sign on email")
			svr.JSON(w, http.StatusBadGateway, nil)
			return
		}
		svr.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// VerifySignOnTokenHandler exchanges a sign-on token for a session cookie.
func VerifySignOnTokenHandler(svr server.Server, userRepo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		token := vars["token"]
		ctx, cancel := svr.RequestContext(r)
		defer cancel()
		u, _, err := userRepo.GetOrCreateUserFromToken(ctx, token)
		if err != nil {
			svr.Log(err, "unable to verify sign on token")
			svr.JSON(w, http.StatusUnauthorized, apperror.Body(apperror.New(apperror.KindUnauthenticated, "sign on token is invalid or expired")))
			return
		}
		sess, err := svr.SessionStore.Get(r, middleware.SessionName)
		if err != nil {
			svr.Log(err, "unable to get session cookie")
			svr.JSON(w, http.StatusBadGateway, nil)
			return
		}
		stdClaims := &jwt.StandardClaims{
			ExpiresAt: time.Now().Add(30 * 24 * time.Hour).UTC().Unix(),
			IssuedAt:  time.Now().UTC().Unix(),
			Issuer:    fmt.Sprintf("%s%s", svr.GetConfig().URLProtocol, svr.GetConfig().SiteHost),
		}
		claims := middleware.UserJWT{
			UserID:         u.ID,
			Email:          u.Email,
			IsRecruiter:    u.IsRecruiter(),
			IsCandidate:    u.IsCandidate(),
			CreatedAt:      u.CreatedAt,
			StandardClaims: *stdClaims,
		}
		tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		ss, err := tk.SignedString(svr.GetJWTSigningKey())
		if err != nil {
			svr.Log(err, "unable to sign jwt")
			svr.JSON(w, http.StatusBadGateway, nil)
			return
		}
		sess.Values["jwt"] = ss
		if err := sess.Save(r, w); err != nil {
			svr.Log(err, "unable to save session cookie")
			svr.JSON(w, http.StatusBadGateway, nil)
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{
			"user_id":   u.ID,
			"email":     u.Email,
			"user_type": u.Type,
		})
	}
}

func SignOutHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svr.SessionStore.Get(r, middleware.SessionName)
		if err == nil {
			delete(sess.Values, "jwt")
			sess.Options.MaxAge = -1
			sess.Save(r, w)
		}
		svr.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
