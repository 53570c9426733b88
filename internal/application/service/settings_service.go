package service

import (
	"context"

	"github.com/beaverpumice/scalehouse-api/internal/domain/repository"
	"github.com/beaverpumice/scalehouse-api/pkg/apperror"
)

// SettingsService exposes the persisted invoice counter to the office
// dashboard, mainly so the bookkeepers can realign it after a manual import.
type SettingsService struct {
	repo repository.SettingsRepository
}

// NewSettingsService creates a new settings service instance.
func NewSettingsService(repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// GetLastInvoiceNumber reads the persisted counter.
func (s *SettingsService) GetLastInvoiceNumber(ctx context.Context) (int, error) {
	return s.repo.LastInvoiceNumber(ctx)
}

// SetLastInvoiceNumber overwrites the persisted counter. Rewinding it below
// numbers the accounting system already holds will reissue them on the next
// run, so the office sets this deliberately, usually after a manual import.
func (s *SettingsService) SetLastInvoiceNumber(ctx context.Context, n int) error {
	if n <= 0 {
		return apperror.NewBadRequestError("invoice counter must be positive")
	}
	return s.repo.SetLastInvoiceNumber(ctx, n)
}
