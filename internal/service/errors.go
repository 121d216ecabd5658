package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	"github.com/noah-isme/nemi-admin-api/internal/repository"
	appErrors "github.com/noah-isme/nemi-admin-api/pkg/errors"
)

const dashboardCachePattern = "dash:*"

// loadError maps a repository read failure for entity onto a typed error.
func loadError(err error, entity string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, entity+" not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load "+entity)
}

// writeError maps a repository write failure onto a typed error.
func writeError(err error, action, entity string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return appErrors.Clone(appErrors.ErrNotFound, entity+" not found")
	case errors.Is(err, repository.ErrReferenced):
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, fmt.Sprintf("%s is still referenced by other records", entity))
	case errors.Is(err, repository.ErrDuplicate):
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, entity+" already exists")
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fmt.Sprintf("failed to %s %s", action, entity))
	}
}

type existenceChecker func(ctx context.Context, id string) (bool, error)

// requireReference fails with a field-level validation error when id does not exist.
func requireReference(ctx context.Context, exists existenceChecker, field, entity, id string) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify "+entity)
	}
	if !ok {
		return fieldError(field, entity+" does not exist")
	}
	return nil
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

// invalidateDashboard drops cached dashboard payloads after a write. Failures are logged only.
func invalidateDashboard(ctx context.Context, cache cacheInvalidator, logger *zap.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, dashboardCachePattern); err != nil {
		logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

func paginate(count, limit, offset int) *models.Pagination {
	return &models.Pagination{Limit: limit, Offset: offset, Count: count}
}
