package stubs

import (
	"context"
	"sync"
	"time"

	"shelfwatch/internal/models"
)

// MockDB is an in-memory implementation of the Storage interface for testing
type MockDB struct {
	mu       sync.RWMutex
	nextID   int64
	products []models.Product
}

// NewMockDB creates a new mock database
func NewMockDB() *MockDB {
	return &MockDB{nextID: 1}
}

// Initialize is a no-op for the in-memory store
func (m *MockDB) Initialize(ctx context.Context) error {
	return nil
}

// CreateProduct stores a new product and returns its generated id
func (m *MockDB) CreateProduct(ctx context.Context, product models.Product) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	product.ID = m.nextID
	m.nextID++
	product.ExpirationDate = models.DateOnly(product.ExpirationDate)
	m.products = append(m.products, product)
	return product.ID, nil
}

// ListByOwner returns all products registered by the given user, in insertion order
func (m *MockDB) ListByOwner(ctx context.Context, ownerID int64) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var products []models.Product
	for _, p := range m.products {
		if p.OwnerID == ownerID {
			products = append(products, p)
		}
	}
	return products, nil
}

// FindExpiringOn returns all products expiring on the given date
func (m *MockDB) FindExpiringOn(ctx context.Context, date time.Time) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	target := models.DateOnly(date)
	var products []models.Product
	for _, p := range m.products {
		if p.ExpirationDate.Equal(target) {
			products = append(products, p)
		}
	}
	return products, nil
}

// FindReturnableExpiringOn returns returnable products expiring on the given date
func (m *MockDB) FindReturnableExpiringOn(ctx context.Context, date time.Time) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	target := models.DateOnly(date)
	var products []models.Product
	for _, p := range m.products {
		if p.Returnable && p.ExpirationDate.Equal(target) {
			products = append(products, p)
		}
	}
	return products, nil
}

// DeleteExpiredOn removes every product with the given expiration date
func (m *MockDB) DeleteExpiredOn(ctx context.Context, date time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	target := models.DateOnly(date)
	var kept []models.Product
	var deleted int64
	for _, p := range m.products {
		if p.ExpirationDate.Equal(target) {
			deleted++
			continue
		}
		kept = append(kept, p)
	}
	m.products = kept
	return deleted, nil
}

// Close is a no-op for the in-memory store
func (m *MockDB) Close() error {
	return nil
}
