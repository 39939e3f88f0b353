package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/repository"
)

type insightRepository struct {
	db *sql.DB
}

func NewInsightRepository(db *sql.DB) repository.InsightRepository {
	return &insightRepository{db: db}
}

func (r *insightRepository) Create(ctx context.Context, in *domain.Insight) error {
	photos, err := json.Marshal(in.Photos)
	if err != nil {
		return fmt.Errorf("failed to encode photos: %w", err)
	}
	query := `INSERT INTO insights (author_id, title, body, photos, created_on)
	          VALUES ($1, $2, $3, $4, NOW()) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, in.AuthorID, in.Title, in.Body, photos).Scan(&in.ID, &in.CreatedOn)
}

func (r *insightRepository) GetByID(ctx context.Context, id int32) (*domain.Insight, error) {
	in := &domain.Insight{}
	var photos []byte
	query := `SELECT id, author_id, title, body, photos, COALESCE(video_url, ''), COALESCE(video_key, ''), created_on
	          FROM insights WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&in.ID, &in.AuthorID, &in.Title, &in.Body, &photos, &in.VideoURL, &in.VideoKey, &in.CreatedOn)
	if err != nil {
		return nil, err
	}
	if len(photos) > 0 {
		if err := json.Unmarshal(photos, &in.Photos); err != nil {
			return nil, fmt.Errorf("failed to decode photos: %w", err)
		}
	}
	return in, nil
}

func (r *insightRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Insight, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, author_id, title, body, photos, COALESCE(video_url, ''), COALESCE(video_key, ''), created_on
	          FROM insights ORDER BY created_on DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var insights []domain.Insight
	for rows.Next() {
		var in domain.Insight
		var photos []byte
		if err := rows.Scan(&in.ID, &in.AuthorID, &in.Title, &in.Body, &photos, &in.VideoURL, &in.VideoKey, &in.CreatedOn); err != nil {
			return nil, 0, err
		}
		if len(photos) > 0 {
			if err := json.Unmarshal(photos, &in.Photos); err != nil {
				return nil, 0, fmt.Errorf("failed to decode photos: %w", err)
			}
		}
		insights = append(insights, in)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM insights`).Scan(&count); err != nil {
		return nil, 0, err
	}
	return insights, count, nil
}

func (r *insightRepository) SetVideo(ctx context.Context, insightID int32, videoURL, videoKey string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE insights SET video_url = $1, video_key = $2 WHERE id = $3`, videoURL, videoKey, insightID)
	return err
}
