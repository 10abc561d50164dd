package job

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hirewire/job-market/internal/apperror"
	"github.com/hirewire/job-market/internal/middleware"
	"github.com/hirewire/job-market/internal/server"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/feeds"
	"github.com/gorilla/mux"
)

func ListJobsHandler(svr server.Server, jobRepo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := ListParams{
			Filter:      r.URL.Query().Get("filter"),
			Sort:        r.URL.Query().Get("sort"),
			ShowExpired: r.URL.Query().Get("showExpired") == "true",
		}
		if params.Filter != "" && !ValidFilter(params.Filter) {
			svr.JSON(w, http.StatusBadRequest, apperror.Body(apperror.Validation("filter", "filter must be one of all, urgent, week, month, no_deadline")))
			return
		}
		if params.Sort != "" && !ValidSort(params.Sort) {
			svr.JSON(w, http.StatusBadRequest, apperror.Body(apperror.Validation("sort", "sort must be one of deadline_asc, deadline_desc, recent, alphabetical")))
			return
		}
		ctx, cancel := svr.RequestContext(r)
		defer cancel()
		jobs, err := jobRepo.OpenJobs(ctx, params)
		if err != nil {
			svr.Log(err, "unable to list open jobs")
			svr.JSON(w, apperror.HTTPStatus(err), apperror.Body(err))
			return
		}
		now := time.Now().UTC()
		for i, j := range jobs {
			jobs[i].TimeAgo = humanize.Time(j.CreatedAt)
			jobs[i].Urgency = UrgencyFor(j.Deadline, now)
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{"jobs": jobs, "count": len(jobs)})
	}
}

func CreateJobHandler(svr server.Server, jobRepo *Repository) http.HandlerFunc {
	return middleware.RecruiterAuthenticatedMiddleware(
		svr.SessionStore,
		svr.GetJWTSigningKey(),
		func(w http.ResponseWriter, r *http.Request) {
			profile, err := middleware.GetUserFromJWT(r, svr.SessionStore, svr.GetJWTSigningKey())
			if err != nil {
				svr.JSON(w, http.StatusUnauthorized, apperror.Body(apperror.Unauthenticated()))
				return
			}
			rq := JobRq{}
			if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
				svr.JSON(w, http.StatusBadRequest, apperror.Body(apperror.Validation("body", "invalid request body")))
				return
			}
			if err := validateJobRq(&rq); err != nil {
				svr.JSON(w, apperror.HTTPStatus(err), apperror.Body(err))
				return
			}
			ctx, cancel := svr.RequestContext(r)
			defer cancel()
			j, err := jobRepo.SaveJob(ctx, &rq, profile.UserID)
			if err != nil {
				if apperror.KindOf(err) == apperror.KindValidation {
					svr.JSON(w, apperror.HTTPStatus(err), apperror.Body(err))
					return
				}
				svr.Log(err, fmt.Sprintf("unable to save job request: %#v", rq))
				svr.JSON(w, http.StatusBadGateway, apperror.Body(apperror.Upstream(err, "unable to save job")))
				return
			}
			svr.JSON(w, http.StatusCreated, j)
		})
}

func JobByIDHandler(svr server.Server, jobRepo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		ctx, cancel := svr.RequestContext(r)
		defer cancel()
		j, err := jobRepo.JobByID(ctx, vars["id"])
		if err != nil {
			if apperror.KindOf(err) != apperror.KindNotFound {
				svr.Log(err, "unable to retrieve job")
			}
			svr.JSON(w, apperror.HTTPStatus(err), apperror.Body(err))
			return
		}
		j.TimeAgo = humanize.Time(j.CreatedAt)
		j.Urgency = UrgencyFor(j.Deadline, time.Now().UTC())
		j.DescriptionHTML = MarkdownToHTML(j.Description)
		svr.JSON(w, http.StatusOK, j)
	}
}

// OwnJobsHandler lists the signed-on recruiter's postings, newest first.
func OwnJobsHandler(svr server.Server, jobRepo *Repository) http.HandlerFunc {
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
			jobs, err := jobRepo.JobsByEmployer(ctx, profile.UserID)
			if err != nil {
				svr.Log(err, "unable to list jobs by employer")
				svr.JSON(w, http.StatusBadGateway, apperror.Body(apperror.Upstream(err, "unable to list jobs")))
				return
			}
			now := time.Now().UTC()
			for i, j := range jobs {
				jobs[i].TimeAgo = humanize.Time(j.CreatedAt)
				jobs[i].Urgency = UrgencyFor(j.Deadline, now)
			}
			svr.JSON(w, http.StatusOK, map[string]interface{}{"jobs": jobs, "count": len(jobs)})
		})
}

type statusRq struct {
	Status string `json:"status"`
}

// UpdateJobStatusHandler moves a job between draft, open and closed. Only
// the posting recruiter may do so.
func UpdateJobStatusHandler(svr server.Server, jobRepo *Repository) http.HandlerFunc {
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
			rq := statusRq{}
			if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
				svr.JSON(w, http.StatusBadRequest, apperror.Body(apperror.Validation("body", "invalid request body")))
				return
			}
			if !ValidStatus(rq.Status) {
				svr.JSON(w, http.StatusBadRequest, apperror.Body(apperror.Validation("status", "status must be one of draft, open, closed")))
				return
			}
			ctx, cancel := svr.RequestContext(r)
			defer cancel()
			j, err := jobRepo.JobByID(ctx, vars["id"])
			if err != nil {
				if apperror.KindOf(err) != apperror.KindNotFound {
					svr.Log(err, "unable to retrieve job for status update")
				}
				svr.JSON(w, apperror.HTTPStatus(err), apperror.Body(err))
				return
			}
			if j.EmployerID == "" || j.EmployerID != profile.UserID {
				forbidden := apperror.Forbidden("only the recruiter owning this job can update it")
				svr.JSON(w, apperror.HTTPStatus(forbidden), apperror.Body(forbidden))
				return
			}
			if err := jobRepo.UpdateJobStatus(ctx, j.ID, rq.Status); err != nil {
				svr.Log(err, "unable to update job status")
				svr.JSON(w, http.StatusBadGateway, apperror.Body(apperror.Upstream(err, "unable to update job")))
				return
			}
			j.Status = rq.Status
			svr.JSON(w, http.StatusOK, j)
		})
}

// JobsFeedHandler serves an RSS feed of currently open jobs.
func JobsFeedHandler(svr server.Server, jobRepo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := svr.RequestContext(r)
		defer cancel()
		jobs, err := jobRepo.OpenJobs(ctx, ListParams{})
		if err != nil {
			svr.Log(err, "unable to retrieve open jobs for feed")
			svr.JSON(w, apperror.HTTPStatus(err), apperror.Body(err))
			return
		}
		base := fmt.Sprintf("%s%s", svr.GetConfig().URLProtocol, svr.GetConfig().SiteHost)
		feed := &feeds.Feed{
			Title:       fmt.Sprintf("%s Jobs", svr.GetConfig().SiteName),
			Link:        &feeds.Link{Href: base},
			Description: fmt.Sprintf("Latest jobs on %s", svr.GetConfig().SiteName),
			Created:     time.Now(),
		}
		for _, j := range jobs {
			feed.Items = append(feed.Items, &feeds.Item{
				Id:          j.ID,
				Title:       fmt.Sprintf("%s at %s - %s", j.Title, j.Company, j.Location),
				Link:        &feeds.Link{Href: fmt.Sprintf("%s/jobs/%s", base, j.ID)},
				Description: MarkdownToHTML(j.Description),
				Created:     j.CreatedAt,
			})
		}
		rss, err := feed.ToRss()
		if err != nil {
			svr.Log(err, "unable to render jobs rss feed")
			svr.JSON(w, http.StatusBadGateway, apperror.Body(apperror.Upstream(err, "unable to render feed")))
			return
		}
		svr.XML(w, http.StatusOK, []byte(rss))
	}
}

// StatsHandler exposes site-wide aggregates. These counts are the only
// cached reads, applicant and dashboard queries always hit the database.
func StatsHandler(svr server.Server, jobRepo *Repository) http.HandlerFunc {
	type stats struct {
		NewJobsLastWeek  int `json:"new_jobs_last_week"`
		NewJobsLastMonth int `json:"new_jobs_last_month"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if cached, ok := svr.CacheGet(server.CacheKeyJobStats); ok {
			var out stats
			if err := json.Unmarshal(cached, &out); err == nil {
				svr.JSON(w, http.StatusOK, out)
				return
			}
		}
		ctx, cancel := svr.RequestContext(r)
		defer cancel()
		week, month, err := jobRepo.NewJobsLastWeekOrMonth(ctx)
		if err != nil {
			svr.Log(err, "unable to retrieve new jobs last week last month")
			svr.JSON(w, http.StatusBadGateway, apperror.Body(apperror.Upstream(err, "unable to retrieve stats")))
			return
		}
		out := stats{NewJobsLastWeek: week, NewJobsLastMonth: month}
		buf, err := json.Marshal(out)
		if err == nil {
			if err := svr.CacheSet(server.CacheKeyJobStats, buf); err != nil {
				svr.Log(err, "unable to cache job stats")
			}
		}
		svr.JSON(w, http.StatusOK, out)
	}
}

func validateJobRq(rq *JobRq) error {
	if rq.Title == "" {
		return apperror.Validation("title", "title is required")
	}
	if rq.Company == "" {
		return apperror.Validation("company", "company is required")
	}
	if rq.Location == "" {
		return apperror.Validation("location", "location is required")
	}
	if rq.Status != "" && !ValidStatus(rq.Status) {
		return apperror.Validation("status", "status must be one of draft, open, closed")
	}
	if rq.Deadline != "" {
		if _, err := time.Parse(time.RFC3339, rq.Deadline); err != nil {
			return apperror.Validation("deadline", "deadline must be a RFC3339 timestamp")
		}
	}
	seen := make(map[string]bool, len(rq.SupplementalQuestions))
	for _, q := range rq.SupplementalQuestions {
		if q.ID == "" {
			return apperror.Validation("supplementalQuestions", "question id is required")
		}
		if seen[q.ID] {
			return apperror.Validation("supplementalQuestions", fmt.Sprintf("duplicate question id %q", q.ID))
		}
		seen[q.ID] = true
		if q.Question == "" {
			return apperror.Validation("supplementalQuestions", fmt.Sprintf("question text is required for %q", q.ID))
		}
		if !ValidQuestionType(q.Type) {
			return apperror.Validation("supplementalQuestions", fmt.Sprintf("question %q type must be one of text, textarea, select", q.ID))
		}
		if q.Type == QuestionTypeSelect && len(q.Options) == 0 {
			return apperror.Validation("supplementalQuestions", fmt.Sprintf("select question %q needs options", q.ID))
		}
	}
	return nil
}
