package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"hivewatch/internal/models"
)

func (d *DB) CreateSnapshot(ctx context.Context, s models.Snapshot) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	query := `
        INSERT INTO snapshots (id, hive_id, temperature, humidity, weight, gas_level, recorded_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := d.Pool.Exec(ctx, query,
		s.ID, s.HiveID, s.Temperature, s.Humidity, s.Weight, s.GasLevel, s.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	return nil
}

// GetRecentSnapshots returns the newest points for a hive, oldest first, for
// the dashboard trend chart.
func (d *DB) GetRecentSnapshots(ctx context.Context, hiveID string, limit int) ([]models.Snapshot, error) {
	rows, err := d.Pool.Query(ctx, `
        SELECT id, hive_id, temperature, humidity, weight, gas_level, recorded_at
        FROM snapshots
        WHERE hive_id = $1
        ORDER BY recorded_at DESC
        LIMIT $2`, hiveID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshots for hive %s: %w", hiveID, err)
	}
	defer rows.Close()

	var snapshots []models.Snapshot
	for rows.Next() {
		var s models.Snapshot
		err := rows.Scan(&s.ID, &s.HiveID, &s.Temperature, &s.Humidity, &s.Weight, &s.GasLevel, &s.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}

	// Reverse to chronological order for charting.
	for i, j := 0, len(snapshots)-1; i < j; i, j = i+1, j-1 {
		snapshots[i], snapshots[j] = snapshots[j], snapshots[i]
	}
	return snapshots, nil
}
