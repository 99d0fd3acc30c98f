package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hivewatch/internal/models"
)

func (d *DB) CreateTip(ctx context.Context, in models.TipCreate) (models.Tip, error) {
	t := models.Tip{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Content:   in.Content,
		Author:    in.Author,
		CreatedAt: time.Now(),
	}
	query := `INSERT INTO tips (id, title, content, author, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := d.Pool.Exec(ctx, query, t.ID, t.Title, t.Content, t.Author, t.CreatedAt)
	if err != nil {
		return models.Tip{}, fmt.Errorf("failed to create tip: %w", err)
	}
	return t, nil
}

func (d *DB) GetAllTips(ctx context.Context) ([]models.Tip, error) {
	rows, err := d.Pool.Query(ctx, `
        SELECT id, title, content, author, created_at
        FROM tips ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get tips: %w", err)
	}
	defer rows.Close()

	var tips []models.Tip
	for rows.Next() {
		var t models.Tip
		if err := rows.Scan(&t.ID, &t.Title, &t.Content, &t.Author, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tip: %w", err)
		}
		tips = append(tips, t)
	}
	return tips, nil
}

func (d *DB) DeleteTip(ctx context.Context, id string) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM tips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tip: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no tip found for id %s", id)
	}
	return nil
}
