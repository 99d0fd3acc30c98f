package api

import (
	"context"

	"hivewatch/internal/models"
)

// Store is the persistence surface the handlers need. *db.DB satisfies it;
// tests substitute stubs.
type Store interface {
	GetNotificationsByUserID(ctx context.Context, userID string) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) error
	DeleteNotification(ctx context.Context, id string) error

	CreateHive(ctx context.Context, in models.HiveCreate) (models.Hive, error)
	GetHive(ctx context.Context, id string) (models.Hive, error)
	GetHivesByUserID(ctx context.Context, userID string) ([]models.Hive, error)
	GetPendingHives(ctx context.Context) ([]models.Hive, error)
	GetAllHives(ctx context.Context) ([]models.Hive, error)
	UpdateHive(ctx context.Context, id string, in models.HiveUpdate) error
	UpdateHiveStatus(ctx context.Context, id, status string) error
	DeleteHive(ctx context.Context, id string) error

	CreateTraining(ctx context.Context, in models.TrainingCreate) (models.Training, error)
	GetTraining(ctx context.Context, id string) (models.Training, error)
	GetAllTrainings(ctx context.Context) ([]models.Training, error)
	UpdateTraining(ctx context.Context, id string, in models.TrainingCreate) error
	DeleteTraining(ctx context.Context, id string) error

	CreateTip(ctx context.Context, in models.TipCreate) (models.Tip, error)
	GetAllTips(ctx context.Context) ([]models.Tip, error)
	DeleteTip(ctx context.Context, id string) error

	CreateListing(ctx context.Context, in models.ListingCreate) (models.Listing, error)
	GetListingsByUserID(ctx context.Context, userID string) ([]models.Listing, error)
	GetActiveListings(ctx context.Context) ([]models.Listing, error)
	UpdateListingStatus(ctx context.Context, id, status string) error
	DeleteListing(ctx context.Context, id string) error

	GetRecentSnapshots(ctx context.Context, hiveID string, limit int) ([]models.Snapshot, error)
}
