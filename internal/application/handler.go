package application

import (
	"encoding/json"
	"net/http"

	"github.com/hirewire/job-market/internal/apperror"
	"github.com/hirewire/job-market/internal/middleware"
	"github.com/hirewire/job-market/internal/server"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"
)

// ApplyHandler creates an application for the signed-on candidate. The
// response carries created=true with a 201 on first apply, created=false
// with a 200 when the candidate already applied.
func ApplyHandler(svr server.Server, engine *Engine) http.HandlerFunc {
	return middleware.CandidateAuthenticatedMiddleware(
		svr.SessionStore,
		svr.GetJWTSigningKey(),
		func(w http.ResponseWriter, r *http.Request) {
			profile, err := middleware.GetUserFromJWT(r, svr.SessionStore, svr.GetJWTSigningKey())
			if err != nil {
				svr.JSON(w, http.StatusUnauthorized, apperror.Body(apperror.Unauthenticated()))
				return
			}
			rq := ApplyRq{}
			if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
				svr.JSON(w, http.StatusBadRequest, apperror.Body(apperror.Validation("body", "invalid request body")))
				return
			}
			ctx, cancel := svr.RequestContext(r)
			defer cancel()
			app, created, err := engine.Apply(ctx, profile.UserID, rq)
			if err != nil {
				if apperror.KindOf(err) == apperror.KindUpstream {
					svr.Log(err, "unable to create application")
				}
				svr.JSON(w, apperror.HTTPStatus(err), apperror.Body(err))
				return
			}
			app.TimeAgo = humanize.Time(app.AppliedAt)
			status := http.StatusCreated
			if !created {
				status = http.StatusOK
			}
			svr.JSON(w, status, map[string]interface{}{
				"application": app,
				"created":     created,
			})
		})
}

// UpdateStatusHandler moves an application to a new status, recruiter
// owner only.
func UpdateStatusHandler(svr server.Server, engine *Engine) http.HandlerFunc {
	return middleware.RecruiterAuthenticatedMiddleware(
		svr.SessionStore,
		svr.GetJWTSigningKey(),
		func(w http.ResponseWriter, r *http.Request) {
			profile, err := middleware.GetUserFromJWT(r, svr.SessionStore, svr.GetJWTSigningKey())
			if err != nil {
				svr.JSON(w, http.StatusUnauthorized, apperror.Body(apperror.Unauthenticated()))
				return
			}
			vars := mux.Vars(r)
			rq := StatusRq{}
			if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
				svr.JSON(w, http.StatusBadRequest, apperror.Body(apperror.Validation("body", "invalid request body")))
				return
			}
			ctx, cancel := svr.RequestContext(r)
			defer cancel()
			app, err := engine.UpdateStatus(ctx, profile.UserID, vars["id"], rq.Status)
			if err != nil {
				if apperror.KindOf(err) == apperror.KindUpstream {
					svr.Log(err, "unable to update application status")
				}
				svr.JSON(w, apperror.HTTPStatus(err), apperror.Body(err))
				return
			}
			app.TimeAgo = humanize.Time(app.AppliedAt)
			svr.JSON(w, http.StatusOK, app)
		})
}

// ApplicantsForJobHandler lists a job's applications with candidate
// snapshots for the owning recruiter.
func ApplicantsForJobHandler(svr server.Server, engine *Engine) http.HandlerFunc {
	return middleware.RecruiterAuthenticatedMiddleware(
		svr.SessionStore,
		svr.GetJWTSigningKey(),
		func(w http.ResponseWriter, r *http.Request) {
			profile, err := middleware.GetUserFromJWT(r, svr.SessionStore, svr.GetJWTSigningKey())
			if err != nil {
				svr.JSON(w, http.StatusUnauthorized, apperror.Body(apperror.Unauthenticated()))
				return
			}
			vars := mux.Vars(r)
			ctx, cancel := svr.RequestContext(r)
			defer cancel()
			records, err := engine.ApplicantsForJob(ctx, profile.UserID, vars["id"])
			if err != nil {
				if apperror.KindOf(err) == apperror.KindUpstream {
					svr.Log(err, "unable to list applications for job")
				}
				svr.JSON(w, apperror.HTTPStatus(err), apperror.Body(err))
				return
			}
			for i := range records {
				records[i].TimeAgo = humanize.Time(records[i].AppliedAt)
			}
			svr.JSON(w, http.StatusOK, map[string]interface{}{"applications": records, "count": len(records)})
		})
}

// OwnApplicationsHandler lists the signed-on candidate's applications.
func OwnApplicationsHandler(svr server.Server, engine *Engine) http.HandlerFunc {
	return middleware.CandidateAuthenticatedMiddleware(
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
			apps, err := engine.OwnApplications(ctx, profile.UserID)
			if err != nil {
				if apperror.KindOf(err) == apperror.KindUpstream {
					svr.Log(err, "unable to list own applications")
				}
				svr.JSON(w, apperror.HTTPStatus(err), apperror.Body(err))
				return
			}
			for i := range apps {
				apps[i].TimeAgo = humanize.Time(apps[i].AppliedAt)
			}
			svr.JSON(w, http.StatusOK, map[string]interface{}{"applications": apps, "count": len(apps)})
		})
}
