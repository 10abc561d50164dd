package media

import (
	"context"
	"database/sql"
	"time"

	"github.com/hirewire/job-market/internal/apperror"

	"github.com/segmentio/ksuid"
)

type Media struct {
	ID        string
	Bytes     []byte
	MediaType string
	CreatedAt time.Time
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

func (r *Repository) SaveMedia(ctx context.Context, data []byte, mediaType string) (string, error) {
	id, err := ksuid.NewRandom()
	if err != nil {
		return "", err
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO media (id, bytes, media_type, created_at) VALUES ($1, $2, $3, NOW())`, id.String(), data, mediaType)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (r *Repository) MediaByID(ctx context.Context, id string) (Media, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, bytes, media_type, created_at FROM media WHERE id = $1`, id)
	m := Media{}
	err := row.Scan(&m.ID, &m.Bytes, &m.MediaType, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return Media{}, apperror.NotFound("media not found")
	}
	if err != nil {
		return Media{}, err
	}
	return m, nil
}

func (r *Repository) DeleteMediaByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE id = $1`, id)
	return err
}
