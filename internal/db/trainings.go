package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hivewatch/internal/models"
)

func (d *DB) CreateTraining(ctx context.Context, in models.TrainingCreate) (models.Training, error) {
	now := time.Now()
	t := models.Training{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		Category:    in.Category,
		VideoURL:    in.VideoURL,
		DocumentURL: in.DocumentURL,
		UploadedBy:  in.UploadedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	query := `
        INSERT INTO trainings (id, title, description, content, category,
                               video_url, document_url, uploaded_by, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := d.Pool.Exec(ctx, query,
		t.ID, t.Title, t.Description, t.Content, t.Category,
		t.VideoURL, t.DocumentURL, t.UploadedBy, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return models.Training{}, fmt.Errorf("failed to create training: %w", err)
	}
	return t, nil
}

func (d *DB) GetTraining(ctx context.Context, id string) (models.Training, error) {
	var t models.Training
	query := `
        SELECT id, title, description, content, category, video_url, document_url,
               uploaded_by, created_at, updated_at
        FROM trainings WHERE id = $1`
	err := d.Pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Content, &t.Category,
		&t.VideoURL, &t.DocumentURL, &t.UploadedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return models.Training{}, fmt.Errorf("failed to get training %s: %w", id, err)
	}
	return t, nil
}

func (d *DB) GetAllTrainings(ctx context.Context) ([]models.Training, error) {
	rows, err := d.Pool.Query(ctx, `
        SELECT id, title, description, content, category, video_url, document_url,
               uploaded_by, created_at, updated_at
        FROM trainings ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get trainings: %w", err)
	}
	defer rows.Close()

	var trainings []models.Training
	for rows.Next() {
		var t models.Training
		err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Content, &t.Category,
			&t.VideoURL, &t.DocumentURL, &t.UploadedBy, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan training: %w", err)
		}
		trainings = append(trainings, t)
	}
	return trainings, nil
}

func (d *DB) UpdateTraining(ctx context.Context, id string, in models.TrainingCreate) error {
	query := `
        UPDATE trainings
        SET title = $1, description = $2, content = $3, category = $4,
            video_url = $5, document_url = $6, updated_at = $7
        WHERE id = $8`
	result, err := d.Pool.Exec(ctx, query,
		in.Title, in.Description, in.Content, in.Category,
		in.VideoURL, in.DocumentURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update training: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no training found for id %s", id)
	}
	return nil
}

func (d *DB) DeleteTraining(ctx context.Context, id string) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM trainings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete training: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no training found for id %s", id)
	}
	return nil
}
