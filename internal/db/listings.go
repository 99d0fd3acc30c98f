package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hivewatch/internal/models"
)

func (d *DB) CreateListing(ctx context.Context, in models.ListingCreate) (models.Listing, error) {
	now := time.Now()
	l := models.Listing{
		ID:          uuid.NewString(),
		UserID:      in.UserID,
		ProductName: in.ProductName,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Unit:        in.Unit,
		ImageURL:    in.ImageURL,
		Status:      models.ListingActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	query := `
        INSERT INTO listings (id, user_id, product_name, description, price,
                              quantity, unit, image_url, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := d.Pool.Exec(ctx, query,
		l.ID, l.UserID, l.ProductName, l.Description, l.Price,
		l.Quantity, l.Unit, l.ImageURL, l.Status, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return models.Listing{}, fmt.Errorf("failed to create listing: %w", err)
	}
	return l, nil
}

func (d *DB) GetListingsByUserID(ctx context.Context, userID string) ([]models.Listing, error) {
	query := `
        SELECT id, user_id, product_name, description, price, quantity, unit,
               image_url, status, created_at, updated_at
        FROM listings WHERE user_id = $1 ORDER BY created_at DESC`
	return d.queryListings(ctx, query, userID)
}

func (d *DB) GetActiveListings(ctx context.Context) ([]models.Listing, error) {
	query := `
        SELECT id, user_id, product_name, description, price, quantity, unit,
               image_url, status, created_at, updated_at
        FROM listings WHERE status = $1 ORDER BY created_at DESC`
	return d.queryListings(ctx, query, models.ListingActive)
}

func (d *DB) queryListings(ctx context.Context, query string, args ...interface{}) ([]models.Listing, error) {
	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get listings: %w", err)
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		var l models.Listing
		err := rows.Scan(
			&l.ID, &l.UserID, &l.ProductName, &l.Description, &l.Price,
			&l.Quantity, &l.Unit, &l.ImageURL, &l.Status, &l.CreatedAt, &l.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, nil
}

func (d *DB) UpdateListingStatus(ctx context.Context, id, status string) error {
	result, err := d.Pool.Exec(ctx,
		`UPDATE listings SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update listing status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no listing found for id %s", id)
	}
	return nil
}

func (d *DB) DeleteListing(ctx context.Context, id string) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no listing found for id %s", id)
	}
	return nil
}
