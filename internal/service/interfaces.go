package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/fsdevblog/groph-admin/internal/domain"
	"github.com/fsdevblog/groph-admin/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type UserRepository interface {
	List(ctx context.Context, filter repoargs.UserFilter, limit, offset uint) ([]domain.User, error)
	Count(ctx context.Context, filter repoargs.UserFilter) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type OrderRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	StatusSummary(ctx context.Context) ([]repoargs.StatusAggregation, error)
}

type TransactionRepository interface {
	FindByExternalIDCandidates(ctx context.Context, candidates []string) ([]domain.Transaction, error)
	StatusSummary(ctx context.Context) ([]repoargs.StatusAggregation, error)
}
