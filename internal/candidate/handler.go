package candidate

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/hirewire/job-market/internal/apperror"
	"github.com/hirewire/job-market/internal/media"
	"github.com/hirewire/job-market/internal/middleware"
	"github.com/hirewire/job-market/internal/server"

	"github.com/microcosm-cc/bluemonday"
)

const maxResumeSize = 4 << 20

func GetProfileHandler(svr server.Server, candidateRepo *Repository) http.HandlerFunc {
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
			p, err := candidateRepo.ProfileByUserID(ctx, profile.UserID)
			if err != nil {
				svr.Log(err, "unable to retrieve candidate profile")
				svr.JSON(w, http.StatusBadGateway, apperror.Body(apperror.Upstream(err, "unable to retrieve profile")))
				return
			}
			// p is nil when no profile has been saved yet, the body is a
			// JSON null rather than an error
			svr.JSON(w, http.StatusOK, p)
		})
}

func UpsertProfileHandler(svr server.Server, candidateRepo *Repository) http.HandlerFunc {
	return middleware.CandidateAuthenticatedMiddleware(
		svr.SessionStore,
		svr.GetJWTSigningKey(),
		func(w http.ResponseWriter, r *http.Request) {
			profile, err := middleware.GetUserFromJWT(r, svr.SessionStore, svr.GetJWTSigningKey())
			if err != nil {
				svr.JSON(w, http.StatusUnauthorized, apperror.Body(apperror.Unauthenticated()))
				return
			}
			rq := ProfileRq{}
			if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
				svr.JSON(w, http.StatusBadRequest, apperror.Body(apperror.Validation("body", "invalid request body")))
				return
			}
			if err := ValidateProfileRq(&rq); err != nil {
				svr.JSON(w, apperror.HTTPStatus(err), apperror.Body(err))
				return
			}
			sanitize(&rq)
			ctx, cancel := svr.RequestContext(r)
			defer cancel()
			p, err := candidateRepo.UpsertProfile(ctx, profile.UserID, profile.Email, &rq)
			if err != nil {
				svr.Log(err, fmt.Sprintf("unable to upsert candidate profile for user %s", profile.UserID))
				svr.JSON(w, http.StatusBadGateway, apperror.Body(apperror.Upstream(err, "unable to save profile")))
				return
			}
			svr.JSON(w, http.StatusOK, p)
		})
}

// UploadResumeHandler stores the uploaded resume and points the profile at
// it. The previous object is deleted best effort, a failed delete never
// fails the upload.
func UploadResumeHandler(svr server.Server, candidateRepo *Repository, mediaRepo *media.Repository) http.HandlerFunc {
	return middleware.CandidateAuthenticatedMiddleware(
		svr.SessionStore,
		svr.GetJWTSigningKey(),
		func(w http.ResponseWriter, r *http.Request) {
			profile, err := middleware.GetUserFromJWT(r, svr.SessionStore, svr.GetJWTSigningKey())
			if err != nil {
				svr.JSON(w, http.StatusUnauthorized, apperror.Body(apperror.Unauthenticated()))
				return
			}
			data, mediaType, err := readResume(w, r)
			if err != nil {
				svr.JSON(w, apperror.HTTPStatus(err), apperror.Body(err))
				return
			}
			ctx, cancel := svr.RequestContext(r)
			defer cancel()
			existing, err := candidateRepo.ProfileByUserID(ctx, profile.UserID)
			if err != nil {
				svr.Log(err, "unable to retrieve candidate profile before resume upload")
				svr.JSON(w, http.StatusBadGateway, apperror.Body(apperror.Upstream(err, "unable to retrieve profile")))
				return
			}
			if existing == nil {
				svr.JSON(w, http.StatusBadRequest, apperror.Body(apperror.Validation("profile", "save a profile before uploading a resume")))
				return
			}
			mediaID, err := mediaRepo.SaveMedia(ctx, data, mediaType)
			if err != nil {
				svr.Log(err, "unable to store resume media")
				svr.JSON(w, http.StatusBadGateway, apperror.Body(apperror.Upstream(err, "unable to store resume")))
				return
			}
			resumeURL := fmt.Sprintf("/media/%s", mediaID)
			if err := candidateRepo.UpdateResumeURL(ctx, profile.UserID, resumeURL); err != nil {
				svr.Log(err, "unable to update resume url")
				svr.JSON(w, http.StatusBadGateway, apperror.Body(apperror.Upstream(err, "unable to update profile")))
				return
			}
			if oldID := mediaIDFromURL(existing.ResumeURL); oldID != "" {
				if err := mediaRepo.DeleteMediaByID(ctx, oldID); err != nil {
					svr.Log(err, fmt.Sprintf("unable to delete previous resume %s", oldID))
				}
			}
			svr.JSON(w, http.StatusOK, map[string]string{"resume_url": resumeURL})
		})
}

// readResume pulls the uploaded file out of the multipart form. The body
// is capped at maxResumeSize, oversized uploads fail before being read
// into memory.
func readResume(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxResumeSize)
	if err := r.ParseMultipartForm(maxResumeSize); err != nil {
		return nil, "", apperror.Validation("resume", "resume exceeds the size limit or the form is malformed")
	}
	file, header, err := r.FormFile("resume")
	if err != nil {
		return nil, "", apperror.Validation("resume", "resume file is required")
	}
	defer file.Close()
	data, err := ioutil.ReadAll(file)
	if err != nil {
		return nil, "", apperror.Validation("resume", "unable to read resume file")
	}
	mediaType := header.Header.Get("Content-Type")
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	return data, mediaType, nil
}

func mediaIDFromURL(resumeURL string) string {
	if !strings.HasPrefix(resumeURL, "/media/") {
		return ""
	}
	return strings.TrimPrefix(resumeURL, "/media/")
}

func sanitize(rq *ProfileRq) {
	policy := bluemonday.StrictPolicy()
	for _, field := range []*string{rq.Name, rq.Education} {
		if field != nil {
			*field = policy.Sanitize(*field)
		}
	}
	if rq.Experience != nil {
		for i := range *rq.Experience {
			(*rq.Experience)[i].Description = policy.Sanitize((*rq.Experience)[i].Description)
		}
	}
}
