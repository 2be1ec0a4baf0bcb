package storage

import (
	"context"
	"time"

	"shelfwatch/internal/models"
)

// Storage defines the interface for data storage operations
type Storage interface {
	// Product operations
	CreateProduct(ctx context.Context, product models.Product) (int64, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Product, error)

	// Reminder queries

	// FindExpiringOn returns all products whose nominal expiration date equals the given date
	FindExpiringOn(ctx context.Context, date time.Time) ([]models.Product, error)

	// FindReturnableExpiringOn returns returnable products whose nominal expiration date
	// equals the given date
	FindReturnableExpiringOn(ctx context.Context, date time.Time) ([]models.Product, error)

	// DeleteExpiredOn removes every product with the given nominal expiration date,
	// returnable or not, and reports how many rows were removed
	DeleteExpiredOn(ctx context.Context, date time.Time) (int64, error)

	// Lifecycle
	Initialize(ctx context.Context) error
	Close() error
}
