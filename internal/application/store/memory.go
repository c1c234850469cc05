package store

import (
	"context"
	"sync"

	"insureease/internal/application/models"
	"insureease/pkg/platform/sentinel"
)

// InMemory keeps applications in a mutex-guarded map. It favors clarity over
// performance and backs unit tests and single-node development runs.
type InMemory struct {
	mu   sync.RWMutex
	apps map[string]models.Application
}

func NewInMemory() *InMemory {
	return &InMemory{apps: make(map[string]models.Application)}
}

func (s *InMemory) Save(_ context.Context, app *models.Application) error {
	if err := app.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.apps[app.ID]; exists {
		return sentinel.ErrConflict
	}
	s.apps[app.ID] = clone(app)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id string) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if app, ok := s.apps[id]; ok {
		out := clone(&app)
		return &out, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) Update(_ context.Context, app *models.Application) error {
	if err := app.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[app.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.apps[app.ID] = clone(app)
	return nil
}

func (s *InMemory) Execute(_ context.Context, id string,
	validate func(*models.Application) error,
	mutate func(*models.Application)) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.apps[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	app := clone(&stored)
	if err := validate(&app); err != nil {
		return nil, err
	}
	mutate(&app)
	if err := app.Validate(); err != nil {
		return nil, err
	}
	s.apps[id] = clone(&app)
	return &app, nil
}

// clone copies the record including its options slice so callers cannot
// mutate stored state through aliased slices.
func clone(app *models.Application) models.Application {
	out := *app
	if app.Options != nil {
		out.Options = append([]models.Option(nil), app.Options...)
	}
	return out
}
