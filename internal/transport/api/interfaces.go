package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/fsdevblog/groph-admin/internal/domain"
	"github.com/fsdevblog/groph-admin/internal/service"
)

type MetricsServicer interface {
	GetUsersPage(ctx context.Context, args service.UsersPageArgs) (*domain.UsersPage, error)
	GetUserMetrics(ctx context.Context, userID uuid.UUID) (*domain.UserWithMetrics, error)
}

type DashboardServicer interface {
	Summary(ctx context.Context) (*domain.DashboardSummary, error)
}
