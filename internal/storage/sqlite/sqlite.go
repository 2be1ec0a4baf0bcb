package sqlite

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shelfwatch/internal/models"
)

// productRow is the persisted representation of a product. Expiration dates are
// stored as TEXT in ISO form so the reminder queries can match on date equality.
type productRow struct {
	ID             int64  `gorm:"column:id;primaryKey;autoIncrement"`
	OwnerID        int64  `gorm:"column:owner_id;not null"`
	PhotoReference string `gorm:"column:photo_reference;not null"`
	ExpirationDate string `gorm:"column:expiration_date;size:10;not null;index"`
	Returnable     bool   `gorm:"column:returnable;not null"`
}

// TableName returns the table name for the product row
func (productRow) TableName() string {
	return "products"
}

func (r productRow) toModel() (models.Product, error) {
	date, err := time.ParseInLocation(models.DateLayout, r.ExpirationDate, time.UTC)
	if err != nil {
		return models.Product{}, fmt.Errorf("invalid stored expiration date %q: %w", r.ExpirationDate, err)
	}
	return models.Product{
		ID:             r.ID,
		OwnerID:        r.OwnerID,
		PhotoFileID:    r.PhotoReference,
		ExpirationDate: date,
		Returnable:     r.Returnable,
	}, nil
}

func rowsToModels(rows []productRow) ([]models.Product, error) {
	var products []models.Product
	for _, row := range rows {
		product, err := row.toModel()
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

// SQLiteDB is the SQLite-backed storage implementation. A single long-lived
// handle is shared by all operations; SQLite's own locking serializes the
// reminder job's statements against in-flight conversational writes.
type SQLiteDB struct {
	db *gorm.DB
}

// New opens (or creates) the SQLite database at the given path
func New(path string) (*SQLiteDB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return &SQLiteDB{db: db}, nil
}

// Initialize ensures the products table exists
func (s *SQLiteDB) Initialize(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&productRow{}); err != nil {
		return fmt.Errorf("failed to migrate products table: %w", err)
	}
	return nil
}

// CreateProduct persists a new product and returns its generated id
func (s *SQLiteDB) CreateProduct(ctx context.Context, product models.Product) (int64, error) {
	row := productRow{
		OwnerID:        product.OwnerID,
		PhotoReference: product.PhotoFileID,
		ExpirationDate: product.ExpirationDate.Format(models.DateLayout),
		Returnable:     product.Returnable,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("failed to create product: %w", err)
	}
	return row.ID, nil
}

// ListByOwner returns all products registered by the given user, in insertion order
func (s *SQLiteDB) ListByOwner(ctx context.Context, ownerID int64) ([]models.Product, error) {
	var rows []productRow
	if err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return rowsToModels(rows)
}

// FindExpiringOn returns all products whose expiration date equals the given date
func (s *SQLiteDB) FindExpiringOn(ctx context.Context, date time.Time) ([]models.Product, error) {
	var rows []productRow
	if err := s.db.WithContext(ctx).
		Where("expiration_date = ?", date.Format(models.DateLayout)).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find expiring products: %w", err)
	}
	return rowsToModels(rows)
}

// FindReturnableExpiringOn returns returnable products whose expiration date equals the given date
func (s *SQLiteDB) FindReturnableExpiringOn(ctx context.Context, date time.Time) ([]models.Product, error) {
	var rows []productRow
	if err := s.db.WithContext(ctx).
		Where("expiration_date = ? AND returnable = ?", date.Format(models.DateLayout), true).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find returnable products: %w", err)
	}
	return rowsToModels(rows)
}

// DeleteExpiredOn removes every product with the given expiration date
func (s *SQLiteDB) DeleteExpiredOn(ctx context.Context, date time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expiration_date = ?", date.Format(models.DateLayout)).
		Delete(&productRow{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired products: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Close closes the underlying database connection
func (s *SQLiteDB) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}
