package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hivewatch/internal/models"
)

const hiveColumns = `id, user_id, user_name, hive_number, location, status,
               installation_date, last_inspection, created_at, updated_at`

func (d *DB) CreateHive(ctx context.Context, in models.HiveCreate) (models.Hive, error) {
	now := time.Now()
	h := models.Hive{
		ID:               uuid.NewString(),
		UserID:           in.UserID,
		UserName:         in.UserName,
		HiveNumber:       in.HiveNumber,
		Location:         in.Location,
		Status:           models.HiveStatusPending,
		InstallationDate: in.InstallationDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	query := `
        INSERT INTO hives (id, user_id, user_name, hive_number, location, status,
                           installation_date, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := d.Pool.Exec(ctx, query,
		h.ID, h.UserID, h.UserName, h.HiveNumber, h.Location, h.Status,
		h.InstallationDate, h.CreatedAt, h.UpdatedAt)
	if err != nil {
		return models.Hive{}, fmt.Errorf("failed to create hive: %w", err)
	}
	return h, nil
}

func (d *DB) GetHive(ctx context.Context, id string) (models.Hive, error) {
	var h models.Hive
	query := `SELECT ` + hiveColumns + ` FROM hives WHERE id = $1`
	err := d.Pool.QueryRow(ctx, query, id).Scan(
		&h.ID, &h.UserID, &h.UserName, &h.HiveNumber, &h.Location, &h.Status,
		&h.InstallationDate, &h.LastInspection, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return models.Hive{}, fmt.Errorf("failed to get hive %s: %w", id, err)
	}
	return h, nil
}

func (d *DB) GetHivesByUserID(ctx context.Context, userID string) ([]models.Hive, error) {
	query := `SELECT ` + hiveColumns + ` FROM hives WHERE user_id = $1 ORDER BY created_at DESC`
	return d.queryHives(ctx, query, userID)
}

func (d *DB) GetPendingHives(ctx context.Context) ([]models.Hive, error) {
	query := `SELECT ` + hiveColumns + ` FROM hives WHERE status = $1 ORDER BY created_at DESC`
	return d.queryHives(ctx, query, models.HiveStatusPending)
}

func (d *DB) GetAllHives(ctx context.Context) ([]models.Hive, error) {
	query := `SELECT ` + hiveColumns + ` FROM hives ORDER BY created_at DESC`
	return d.queryHives(ctx, query)
}

func (d *DB) queryHives(ctx context.Context, query string, args ...interface{}) ([]models.Hive, error) {
	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get hives: %w", err)
	}
	defer rows.Close()

	var hives []models.Hive
	for rows.Next() {
		var h models.Hive
		err := rows.Scan(
			&h.ID, &h.UserID, &h.UserName, &h.HiveNumber, &h.Location, &h.Status,
			&h.InstallationDate, &h.LastInspection, &h.CreatedAt, &h.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hive: %w", err)
		}
		hives = append(hives, h)
	}
	return hives, nil
}

func (d *DB) UpdateHiveStatus(ctx context.Context, id, status string) error {
	result, err := d.Pool.Exec(ctx,
		`UPDATE hives SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update hive status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no hive found for id %s", id)
	}
	return nil
}

func (d *DB) UpdateHive(ctx context.Context, id string, in models.HiveUpdate) error {
	query := `
        UPDATE hives
        SET hive_number = COALESCE(NULLIF($1, ''), hive_number),
            location = COALESCE(NULLIF($2, ''), location),
            status = COALESCE(NULLIF($3, ''), status),
            last_inspection = COALESCE($4, last_inspection),
            updated_at = $5
        WHERE id = $6`
	result, err := d.Pool.Exec(ctx, query,
		in.HiveNumber, in.Location, in.Status, in.LastInspection, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update hive: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no hive found for id %s", id)
	}
	return nil
}

func (d *DB) DeleteHive(ctx context.Context, id string) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM hives WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete hive: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no hive found for id %s", id)
	}
	return nil
}
