package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Config struct {
	Port             string
	DatabaseUser     string
	DatabasePassword string
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseSSLMode  string
	SessionKey       []byte
	JwtSigningKey    []byte
	Env              string // either prod or dev, will disable https redirect and few other bits
	EmailAPIKey      string
	SupportEmail     string // displayed on the site for support queries
	NoReplyEmail     string // used for transactional emails
	SentryDSN        string
	SiteName         string
	SiteHost         string
	URLProtocol      string
	JobsPerPage      int           // configures how many jobs are shown per page result
	RequestTimeout   time.Duration // per-request deadline applied to datastore calls
}

func LoadConfig() (Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		return Config{}, fmt.Errorf("PORT cannot be empty")
	}
	databaseUser := os.Getenv("DATABASE_USER")
	if databaseUser == "" {
		return Config{}, fmt.Errorf("DATABASE_USER cannot be empty")
	}
	databasePassword := os.Getenv("DATABASE_PASSWORD")
	if databasePassword == "" {
		return Config{}, fmt.Errorf("DATABASE_PASSWORD cannot be empty")
	}
	databaseHost := os.Getenv("DATABASE_HOST")
	if databaseHost == "" {
		return Config{}, fmt.Errorf("DATABASE_HOST cannot be empty")
	}
	databasePort := os.Getenv("DATABASE_PORT")
	if databasePort == "" {
		return Config{}, fmt.Errorf("DATABASE_PORT cannot be empty")
	}
	databaseName := os.Getenv("DATABASE_NAME")
	if databaseName == "" {
		return Config{}, fmt.Errorf("DATABASE_NAME cannot be empty")
	}
	databaseSSLMode := os.Getenv("DATABASE_SSL_MODE")
	if databaseSSLMode == "" {
		return Config{}, fmt.Errorf("DATABASE_SSL_MODE cannot be empty")
	}
	env := strings.ToLower(os.Getenv("ENV"))
	if env == "" {
		return Config{}, fmt.Errorf("ENV cannot be empty")
	}
	sessionKeyString := os.Getenv("SESSION_KEY")
	if sessionKeyString == "" {
		return Config{}, fmt.Errorf("SESSION_KEY cannot be empty")
	}
	sessionKeyBytes, err := base64.StdEncoding.DecodeString(sessionKeyString)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to decode session key to bytes")
	}
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		return Config{}, fmt.Errorf("JWT_SIGNING_KEY cannot be empty")
	}
	jwtSigningKeyBytes, err := base64.StdEncoding.DecodeString(jwtSigningKey)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to decode jwt signing key to bytes")
	}
	emailAPIKey := os.Getenv("EMAIL_API_KEY")
	if emailAPIKey == "" {
		return Config{}, fmt.Errorf("EMAIL_API_KEY cannot be empty")
	}
	supportEmail := os.Getenv("SUPPORT_EMAIL")
	if supportEmail == "" {
		return Config{}, fmt.Errorf("SUPPORT_EMAIL cannot be empty")
	}
	noReplyEmail := os.Getenv("NO_REPLY_EMAIL")
	if noReplyEmail == "" {
		return Config{}, fmt.Errorf("NO_REPLY_EMAIL cannot be empty")
	}
	siteName := os.Getenv("SITE_NAME")
	if siteName == "" {
		return Config{}, fmt.Errorf("SITE_NAME cannot be empty")
	}
	siteHost := os.Getenv("SITE_HOST")
	if siteHost == "" {
		return Config{}, fmt.Errorf("SITE_HOST cannot be empty")
	}
	urlProtocol := os.Getenv("URL_PROTOCOL")
	if urlProtocol == "" {
		urlProtocol = "https://"
	}
	jobsPerPage := 20
	if jobsPerPageStr := os.Getenv("JOBS_PER_PAGE"); jobsPerPageStr != "" {
		jobsPerPage, err = strconv.Atoi(jobsPerPageStr)
		if err != nil {
			return Config{}, errors.Wrapf(err, "unable to convert JOBS_PER_PAGE to int")
		}
	}
	requestTimeout := 10 * time.Second
	if requestTimeoutStr := os.Getenv("REQUEST_TIMEOUT"); requestTimeoutStr != "" {
		requestTimeout, err = time.ParseDuration(requestTimeoutStr)
		if err != nil {
			return Config{}, errors.Wrapf(err, "unable to parse REQUEST_TIMEOUT as duration")
		}
	}

	return Config{
		Port:             port,
		DatabaseUser:     databaseUser,
		DatabasePassword: databasePassword,
		DatabaseHost:     databaseHost,
		DatabasePort:     databasePort,
		DatabaseName:     databaseName,
		DatabaseSSLMode:  databaseSSLMode,
		SessionKey:       sessionKeyBytes,
		JwtSigningKey:    jwtSigningKeyBytes,
		Env:              env,
		EmailAPIKey:      emailAPIKey,
		SupportEmail:     supportEmail,
		NoReplyEmail:     noReplyEmail,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SiteName:         siteName,
		SiteHost:         siteHost,
		URLProtocol:      urlProtocol,
		JobsPerPage:      jobsPerPage,
		RequestTimeout:   requestTimeout,
	}, nil
}
