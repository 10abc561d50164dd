package recruiter

import (
	"encoding/json"
	"net/http"

	"github.com/hirewire/job-market/internal/apperror"
	"github.com/hirewire/job-market/internal/middleware"
	"github.com/hirewire/job-market/internal/server"

	"github.com/microcosm-cc/bluemonday"
)

func GetRecruiterProfileHandler(svr server.Server, recruiterRepo *Repository) http.HandlerFunc {
	return middleware.RecruiterAuthenticatedMiddleware(
		svr.SessionStore,
		svr.GetJWTSigningKey(),
		func(w http.ResponseWriter, r *http.Request) {
			profile, err := middleware.GetUserFromJWT(r, svr.SessionStore, svr.GetJWTSigningKey())
			if err != nil {
				svr.JSON(w, http.StatusUnauthorized, apperror.Body(apperror.Unauthenticated()))
				return
			}
			ctx, cancel := svr.RequestContext(r)
			defer cancel()
			rec, err := recruiterRepo.RecruiterProfileByUserID(ctx, profile.UserID)
			if err != nil {
				if apperror.KindOf(err) != apperror.KindNotFound {
					svr.Log(err, "unable to retrieve recruiter profile")
				}
				svr.JSON(w, apperror.HTTPStatus(err), apperror.Body(err))
				return
			}
			svr.JSON(w, http.StatusOK, rec)
		})
}

func CreateRecruiterProfileHandler(svr server.Server, recruiterRepo *Repository) http.HandlerFunc {
	return middleware.RecruiterAuthenticatedMiddleware(
		svr.SessionStore,
		svr.GetJWTSigningKey(),
		func(w http.ResponseWriter, r *http.Request) {
			profile, err := middleware.GetUserFromJWT(r, svr.SessionStore, svr.GetJWTSigningKey())
			if err != nil {
				svr.JSON(w, http.StatusUnauthorized, apperror.Body(apperror.Unauthenticated()))
				return
			}
			rq := RecruiterRq{}
			if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
				svr.JSON(w, http.StatusBadRequest, apperror.Body(apperror.Validation("body", "invalid request body")))
				return
			}
			policy := bluemonday.StrictPolicy()
			rq.Name = policy.Sanitize(rq.Name)
			rq.CompanyName = policy.Sanitize(rq.CompanyName)
			if rq.Name == "" {
				svr.JSON(w, http.StatusBadRequest, apperror.Body(apperror.Validation("name", "name is required")))
				return
			}
			if rq.CompanyName == "" {
				svr.JSON(w, http.StatusBadRequest, apperror.Body(apperror.Validation("company_name", "company_name is required")))
				return
			}
			ctx, cancel := svr.RequestContext(r)
			defer cancel()
			rec, err := recruiterRepo.SaveRecruiterProfile(ctx, Recruiter{
				UserID:      profile.UserID,
				Name:        rq.Name,
				Email:       profile.Email,
				CompanyName: rq.CompanyName,
				JobTitle:    rq.JobTitle,
				Phone:       rq.Phone,
				CompanyURL:  rq.CompanyURL,
			})
			if err != nil {
				if apperror.KindOf(err) == apperror.KindUpstream {
					svr.Log(err, "unable to save recruiter profile")
				}
				svr.JSON(w, apperror.HTTPStatus(err), apperror.Body(err))
				return
			}
			svr.JSON(w, http.StatusCreated, rec)
		})
}
