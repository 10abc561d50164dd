package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Table Structure:
//
// CREATE TABLE IF NOT EXISTS users (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	email VARCHAR(255) NOT NULL UNIQUE,
// 	user_type VARCHAR(20) NOT NULL,
// 	created_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(id)
// );

// CREATE TABLE IF NOT EXISTS user_sign_on_token (
// 	token CHAR(27) NOT NULL UNIQUE,
// 	email VARCHAR(255) NOT NULL,
// 	user_type VARCHAR(20) NOT NULL,
// 	created_at TIMESTAMP NOT NULL
// );

// CREATE TABLE IF NOT EXISTS job (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	employer_id CHAR(27) DEFAULT NULL REFERENCES users (id),
// 	title VARCHAR(128) NOT NULL,
// 	company VARCHAR(128) NOT NULL,
// 	location VARCHAR(128) NOT NULL,
// 	description TEXT NOT NULL DEFAULT '',
// 	salary_range VARCHAR(100) NOT NULL DEFAULT '',
// 	requirements JSONB NOT NULL DEFAULT '{}',
// 	status VARCHAR(20) NOT NULL DEFAULT 'open' CHECK (status IN ('draft', 'open', 'closed')),
// 	slug VARCHAR(256) NOT NULL,
// 	deadline TIMESTAMP DEFAULT NULL,
// 	created_at TIMESTAMP NOT NULL,
// 	updated_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(id)
// );
// CREATE INDEX job_employer_id_idx ON job (employer_id);
// CREATE INDEX job_status_deadline_idx ON job (status, deadline);

// CREATE TABLE IF NOT EXISTS application (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	job_id CHAR(27) NOT NULL REFERENCES job (id) ON DELETE CASCADE,
// 	candidate_id CHAR(27) NOT NULL REFERENCES users (id),
// 	status VARCHAR(20) NOT NULL DEFAULT 'applied',
// 	resume_url VARCHAR(512) NOT NULL DEFAULT '',
// 	cover_letter TEXT NOT NULL DEFAULT '',
// 	supplemental_answers JSONB NOT NULL DEFAULT '{}',
// 	applied_at TIMESTAMP NOT NULL,
// 	updated_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(id)
// );
// CREATE UNIQUE INDEX application_job_candidate_idx ON application (job_id, candidate_id);
// CREATE INDEX application_candidate_id_idx ON application (candidate_id);

// CREATE TABLE IF NOT EXISTS candidate_profile (
// 	user_id CHAR(27) NOT NULL UNIQUE REFERENCES users (id),
// 	name VARCHAR(100) NOT NULL,
// 	email VARCHAR(255) NOT NULL,
// 	phone VARCHAR(30) NOT NULL DEFAULT '',
// 	education VARCHAR(255) NOT NULL DEFAULT '',
// 	resume_url VARCHAR(512) NOT NULL DEFAULT '',
// 	skills TEXT[] NOT NULL DEFAULT '{}',
// 	experience JSONB NOT NULL DEFAULT '[]',
// 	certifications JSONB NOT NULL DEFAULT '[]',
// 	linkedin_url VARCHAR(512) NOT NULL DEFAULT '',
// 	github_url VARCHAR(512) NOT NULL DEFAULT '',
// 	portfolio_url VARCHAR(512) NOT NULL DEFAULT '',
// 	offer_deadline TIMESTAMP DEFAULT NULL,
// 	created_at TIMESTAMP NOT NULL,
// 	updated_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(user_id)
// );

// CREATE TABLE IF NOT EXISTS recruiter_profile (
// 	user_id CHAR(27) NOT NULL UNIQUE REFERENCES users (id),
// 	name VARCHAR(100) NOT NULL,
// 	email VARCHAR(255) NOT NULL,
// 	company_name VARCHAR(128) NOT NULL,
// 	job_title VARCHAR(128) NOT NULL DEFAULT '',
// 	phone VARCHAR(30) NOT NULL DEFAULT '',
// 	company_url VARCHAR(512) NOT NULL DEFAULT '',
// 	slug VARCHAR(256) NOT NULL,
// 	created_at TIMESTAMP NOT NULL,
// 	updated_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(user_id)
// );

// CREATE TABLE IF NOT EXISTS media (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	bytes BYTEA NOT NULL,
// 	media_type VARCHAR(100) NOT NULL,
// 	created_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(id)
// );

func GetDbConn(databaseUser string, databasePassword string, databaseHost string, databasePort string, databaseName string, sslMode string) (*sql.DB, error) {
	databaseURL := fmt.Sprintf("postgres://%v:%v@%v:%v/%v?sslmode=%s",
		databaseUser,
		databasePassword,
		databaseHost,
		databasePort,
		databaseName,
		sslMode,
	)
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(20)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

func CloseDbConn(conn *sql.DB) {
	conn.Close()
}
