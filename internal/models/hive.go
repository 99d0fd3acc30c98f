package models

import "time"

// Hive statuses for the registration/approval workflow.
const (
	HiveStatusPending   = "pending"
	HiveStatusConfirmed = "confirmed"
	HiveStatusInactive  = "inactive"
)

// Hive represents a registered hive installation.
type Hive struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	UserName         string     `json:"user_name"`
	HiveNumber       string     `json:"hive_number"`
	Location         string     `json:"location"`
	Status           string     `json:"status"`
	InstallationDate time.Time  `json:"installation_date"`
	LastInspection   *time.Time `json:"last_inspection,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// HiveCreate is the input structure for registering a new hive.
type HiveCreate struct {
	UserID           string    `json:"user_id" binding:"required"`
	UserName         string    `json:"user_name" binding:"required"`
	HiveNumber       string    `json:"hive_number" binding:"required"`
	Location         string    `json:"location" binding:"required"`
	InstallationDate time.Time `json:"installation_date" binding:"required"`
}

// HiveUpdate is the input structure for updating an existing hive.
type HiveUpdate struct {
	HiveNumber     string     `json:"hive_number,omitempty"`
	Location       string     `json:"location,omitempty"`
	Status         string     `json:"status,omitempty"`
	LastInspection *time.Time `json:"last_inspection,omitempty"`
}
