package service

import (
	"context"
	"sync"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/dto"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/repository"
)

// SettingsService keeps a process-wide cached copy of the singleton settings
// row with explicit load/save boundaries. The first read creates the row
// with defaults.
type SettingsService struct {
	repo repository.SettingsRepository

	mu     sync.RWMutex
	cached *model.GlobalSettings
}

func NewSettingsService(repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) Get(ctx context.Context) (*model.GlobalSettings, error) {
	s.mu.RLock()
	if s.cached != nil {
		cp := *s.cached
		s.mu.RUnlock()
		return &cp, nil
	}
	s.mu.RUnlock()

	settings, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = settings
	cp := *settings
	s.mu.Unlock()
	return &cp, nil
}

func (s *SettingsService) Update(ctx context.Context, req dto.UpdateSettingsRequest) (*model.GlobalSettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.MaintenanceMode != nil {
		settings.MaintenanceMode = *req.MaintenanceMode
	}
	if req.AllowRegistration != nil {
		settings.AllowRegistration = *req.AllowRegistration
	}
	if req.Announcement != nil {
		settings.Announcement = req.Announcement
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}

	s.mu.Lock()
	cp := *settings
	s.cached = &cp
	s.mu.Unlock()
	return settings, nil
}

// MaintenanceOn reports the cached maintenance flag for the middleware.
// Errors degrade to "not in maintenance" so a settings read failure never
// takes the API down.
func (s *SettingsService) MaintenanceOn(ctx context.Context) bool {
	settings, err := s.Get(ctx)
	if err != nil {
		return false
	}
	return settings.MaintenanceMode
}
