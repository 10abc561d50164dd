package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hirewire/job-market/internal/application"
	"github.com/hirewire/job-market/internal/candidate"
	"github.com/hirewire/job-market/internal/config"
	"github.com/hirewire/job-market/internal/database"
	"github.com/hirewire/job-market/internal/email"
	"github.com/hirewire/job-market/internal/job"
	"github.com/hirewire/job-market/internal/media"
	"github.com/hirewire/job-market/internal/recruiter"
	"github.com/hirewire/job-market/internal/server"
	"github.com/hirewire/job-market/internal/user"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("unable to load config: %+v", err)
	}
	conn, err := database.GetDbConn(
		cfg.DatabaseUser,
		cfg.DatabasePassword,
		cfg.DatabaseHost,
		cfg.DatabasePort,
		cfg.DatabaseName,
		cfg.DatabaseSSLMode,
	)
	if err != nil {
		log.Fatalf("unable to connect to postgres: %v", err)
	}
	defer database.CloseDbConn(conn)
	emailClient, err := email.NewClient(cfg.EmailAPIKey, cfg.SupportEmail, cfg.NoReplyEmail, cfg.SiteName)
	if err != nil {
		log.Fatalf("unable to initialise email client: %v", err)
	}
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)

	svr := server.NewServer(
		cfg,
		conn,
		mux.NewRouter(),
		emailClient,
		sessionStore,
	)

	userRepo := user.NewRepository(conn)
	jobRepo := job.NewRepository(conn)
	applicationRepo := application.NewRepository(conn)
	candidateRepo := candidate.NewRepository(conn)
	recruiterRepo := recruiter.NewRepository(conn)
	mediaRepo := media.NewRepository(conn)

	notify := func(toEmail, jobTitle, company string, newStatus application.Status) error {
		err := emailClient.SendEmail(
			emailClient.NoReplySenderAddress(),
			toEmail,
			emailClient.SupportSenderAddress(),
			fmt.Sprintf("Your application at %s moved to %s", company, newStatus.Display()),
			fmt.Sprintf("Your application for %s at %s is now %s.", jobTitle, company, newStatus.Display()),
		)
		if err != nil {
			svr.Log(err, "unable to send status change notification")
		}
		return err
	}
	engine := application.NewEngine(applicationRepo, jobRepo, candidateRepo, notify)

	go func() {
		for {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
			if err := userRepo.DeleteExpiredUserSignOnTokens(ctx); err != nil {
				svr.Log(err, "unable to delete expired sign on tokens")
			}
			cancel()
			time.Sleep(12 * time.Hour)
		}
	}()

	// auth
	svr.RegisterRoute("/auth/signon", user.RequestSignOnTokenHandler(svr, userRepo), []string{"POST"})
	svr.RegisterRoute("/auth/verify/{token}", user.VerifySignOnTokenHandler(svr, userRepo), []string{"GET"})
	svr.RegisterRoute("/auth/signout", user.SignOutHandler(svr), []string{"GET"})

	// job catalog
	svr.RegisterRoute("/jobs", job.ListJobsHandler(svr, jobRepo), []string{"GET"})
	svr.RegisterRoute("/jobs", job.CreateJobHandler(svr, jobRepo), []string{"POST"})
	svr.RegisterRoute("/jobs/feed", job.JobsFeedHandler(svr, jobRepo), []string{"GET"})
	svr.RegisterRoute("/jobs/mine", job.OwnJobsHandler(svr, jobRepo), []string{"GET"})
	svr.RegisterRoute("/jobs/{id}", job.JobByIDHandler(svr, jobRepo), []string{"GET"})
	svr.RegisterRoute("/jobs/{id}", job.UpdateJobStatusHandler(svr, jobRepo), []string{"PATCH"})
	svr.RegisterRoute("/jobs/{id}/applications", application.ApplicantsForJobHandler(svr, engine), []string{"GET"})

	// application workflow
	svr.RegisterRoute("/applications", application.ApplyHandler(svr, engine), []string{"POST"})
	svr.RegisterRoute("/applications/mine", application.OwnApplicationsHandler(svr, engine), []string{"GET"})
	svr.RegisterRoute("/applications/{id}", application.UpdateStatusHandler(svr, engine), []string{"PATCH"})

	// candidate profile
	svr.RegisterRoute("/profile", candidate.GetProfileHandler(svr, candidateRepo), []string{"GET"})
	svr.RegisterRoute("/profile", candidate.UpsertProfileHandler(svr, candidateRepo), []string{"PUT"})
	svr.RegisterRoute("/profile/resume", candidate.UploadResumeHandler(svr, candidateRepo, mediaRepo), []string{"POST"})
	svr.RegisterRoute("/media/{id}", media.RetrieveMediaHandler(svr, mediaRepo), []string{"GET"})

	// recruiter profile
	svr.RegisterRoute("/recruiter/profile", recruiter.GetRecruiterProfileHandler(svr, recruiterRepo), []string{"GET"})
	svr.RegisterRoute("/recruiter/profile", recruiter.CreateRecruiterProfileHandler(svr, recruiterRepo), []string{"POST"})

	// site stats
	svr.RegisterRoute("/stats", job.StatsHandler(svr, jobRepo), []string{"GET"})

	log.Fatal(svr.Run())
}
