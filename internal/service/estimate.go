package service

import (
	"context"
	"log/slog"

	"github.com/campusmarket/marketplace/internal/domain"
	"github.com/campusmarket/marketplace/internal/routing"
	apperrors "github.com/campusmarket/marketplace/pkg/errors"
)

// Directions is the routing capability the estimate service depends on.
type Directions interface {
	Directions(ctx context.Context, from, to domain.Coordinate) (routing.Route, error)
}

// EstimateService produces delivery quotes between campus pickup points.
type EstimateService struct {
	routes Directions
	logger *slog.Logger
}

// NewEstimateService creates a new estimate service.
func NewEstimateService(routes Directions, logger *slog.Logger) *EstimateService {
	return &EstimateService{
		routes: routes,
		logger: logger,
	}
}

// Estimate quotes a delivery between two pickup point labels. Unknown labels
// are rejected before any provider call. Provider failures of any kind, the
// circuit breaker included, degrade to the fixed fallback quote so the
// endpoint never fails on upstream trouble.
func (s *EstimateService) Estimate(ctx context.Context, fromLabel, toLabel string) (domain.Estimate, error) {
	from, ok := domain.LookupPickupPoint(fromLabel)
	if !ok {
		return domain.Estimate{}, apperrors.UnknownPickupPoint(fromLabel)
	}
	to, ok := domain.LookupPickupPoint(toLabel)
	if !ok {
		return domain.Estimate{}, apperrors.UnknownPickupPoint(toLabel)
	}

	route, err := s.routes.Directions(ctx, from, to)
	if err != nil {
		s.logger.WarnContext(ctx, "directions provider unavailable, serving fallback estimate",
			slog.String("from", fromLabel),
			slog.String("to", toLabel),
			slog.String("error", err.Error()),
		)
		return domain.FallbackEstimate(), nil
	}

	return domain.NewEstimate(route.Meters, route.Seconds), nil
}
