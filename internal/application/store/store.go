// Package store persists insurance applications.
//
// Stores are interface-driven to keep the domain logic testable and to allow
// swapping in-memory and PostgreSQL persistence without rewiring business
// code. Every implementation runs Application.Validate before a write so a
// record never becomes durable while violating a validation rule.
package store

import (
	"context"

	"insureease/internal/application/models"
)

// ApplicationStore is the persistence boundary for application records.
type ApplicationStore interface {
	// Save persists a new application. The record must already carry its
	// assigned ID, status, and application date.
	Save(ctx context.Context, app *models.Application) error

	// FindByID returns the application or sentinel.ErrNotFound.
	FindByID(ctx context.Context, id string) (*models.Application, error)

	// Update persists changes to an existing application, re-running
	// validation. Returns sentinel.ErrNotFound for unknown IDs.
	Update(ctx context.Context, app *models.Application) error

	// Execute atomically validates and mutates one application while the
	// store holds its lock (mutex or SELECT ... FOR UPDATE). The mutated
	// record is re-validated and persisted before the lock is released.
	Execute(ctx context.Context, id string,
		validate func(*models.Application) error,
		mutate func(*models.Application)) (*models.Application, error)
}
