package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/fsdevblog/groph-admin/internal/domain"
	"github.com/fsdevblog/groph-admin/internal/reconcile"
	"github.com/fsdevblog/groph-admin/internal/repository/repoargs"
	"github.com/fsdevblog/groph-admin/pkg/uow"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100

	// maxOffset наибольшее смещение, которое принимает хранилище (int4).
	maxOffset = math.MaxInt32

	DefaultMetricsWorkers = 5
	DefaultQueryTimeout   = 3 * time.Second
)

const (
	ordersFailedMessage      = "failed to load user orders"
	aggregationFailedMessage = "failed to aggregate user metrics"
)

type MetricsServiceOptions struct {
	// Workers количество юзеров страницы, метрики которых считаются одновременно.
	Workers      int
	QueryTimeout time.Duration
	Logger       *logrus.Logger
}

type MetricsService struct {
	ordersUOW    uow.UOW
	userRepo     UserRepository
	orderRepo    OrderRepository
	txRepo       TransactionRepository
	workers      int
	queryTimeout time.Duration
	log          *logrus.Entry
}

// NewMetricsService создает сервис метрик. paymentsUOW может быть nil, если хранилище платежей
// не сконфигурировано: тогда методы сервиса возвращают domain.ErrStoreNotConfigured.
func NewMetricsService(ordersUOW, paymentsUOW uow.UOW, opts MetricsServiceOptions) (*MetricsService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](ordersUOW, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, fmt.Errorf("metrics service: %w", userRepoErr)
	}
	orderRepo, orderRepoErr := uow.GetRepositoryAs[OrderRepository](ordersUOW, uow.RepositoryName(repoargs.OrderRepoName))
	if orderRepoErr != nil {
		return nil, fmt.Errorf("metrics service: %w", orderRepoErr)
	}

	var txRepo TransactionRepository
	if paymentsUOW != nil {
		repo, txRepoErr := uow.GetRepositoryAs[TransactionRepository](
			paymentsUOW,
			uow.RepositoryName(repoargs.TransactionRepoName),
		)
		if txRepoErr != nil {
			return nil, fmt.Errorf("metrics service: %w", txRepoErr)
		}
		txRepo = repo
	}

	workers := opts.Workers
	if workers < 1 {
		workers = DefaultMetricsWorkers
	}
	queryTimeout := opts.QueryTimeout
	if queryTimeout <= 0 {
		queryTimeout = DefaultQueryTimeout
	}
	l := opts.Logger
	if l == nil {
		l = logrus.StandardLogger()
	}

	return &MetricsService{
		ordersUOW:    ordersUOW,
		userRepo:     userRepo,
		orderRepo:    orderRepo,
		txRepo:       txRepo,
		workers:      workers,
		queryTimeout: queryTimeout,
		log:          l.WithField("component", "metrics_service"),
	}, nil
}

type UsersPageArgs struct {
	Filter repoargs.UserFilter
	Page   int
	Limit  int
}

// ClampLimit приводит размер страницы к диапазону [1, MaxPageLimit].
func ClampLimit(limit int) uint {
	switch {
	case limit < 1:
		return 1
	case limit > MaxPageLimit:
		return MaxPageLimit
	default:
		return uint(limit)
	}
}

// GetUsersPage возвращает страницу юзеров с метриками.
//
// Алгоритм работы:
//  1. В одной read-only транзакции хранилища заказов получает страницу юзеров и общее количество.
//     Ошибка на этом шаге возвращается целиком.
//  2. Для каждого юзера параллельно (не более workers одновременно) считает метрики. Ошибки отдельных
//     юзеров не прерывают страницу: метрики такого юзера нулевые и содержат Error/Degraded.
//
// Порядок юзеров совпадает с порядком хранилища.
func (m *MetricsService) GetUsersPage(ctx context.Context, args UsersPageArgs) (*domain.UsersPage, error) {
	if m.txRepo == nil {
		return nil, domain.ErrStoreNotConfigured
	}
	if args.Page < 1 {
		return nil, fmt.Errorf("%w: page must be greater than zero, got %d", domain.ErrInvalidArgument, args.Page)
	}
	if !domain.IsKnownRole(args.Filter.NormalizedRole()) {
		return nil, fmt.Errorf("%w: unknown role `%s`", domain.ErrInvalidArgument, args.Filter.Role)
	}

	limit := ClampLimit(args.Limit)
	if uint(args.Page-1) > maxOffset/limit {
		return nil, fmt.Errorf("%w: page %d is out of range", domain.ErrInvalidArgument, args.Page)
	}
	offset := uint(args.Page-1) * limit

	var users []domain.User
	var total int64
	txErr := m.ordersUOW.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		qCtx, cancel := context.WithTimeout(c, m.queryTimeout)
		defer cancel()

		var listErr, countErr error
		users, listErr = repo.List(qCtx, args.Filter, limit, offset)
		if listErr != nil {
			return listErr //nolint:wrapcheck
		}
		total, countErr = repo.Count(qCtx, args.Filter)
		if countErr != nil {
			return countErr //nolint:wrapcheck
		}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("getting users page: %w", txErr)
	}

	return &domain.UsersPage{
		Users:      m.collectMetrics(ctx, users),
		Page:       uint(args.Page),
		Limit:      limit,
		TotalPages: totalPages(total, limit),
		TotalItems: total,
	}, nil
}

// GetUserMetrics возвращает юзера с метриками. Если юзер не найден, возвращает ошибку domain.ErrRecordNotFound.
func (m *MetricsService) GetUserMetrics(ctx context.Context, userID uuid.UUID) (*domain.UserWithMetrics, error) {
	if m.txRepo == nil {
		return nil, domain.ErrStoreNotConfigured
	}
	qCtx, cancel := context.WithTimeout(ctx, m.queryTimeout)
	defer cancel()

	user, err := m.userRepo.FindByID(qCtx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting user metrics: %w", err)
	}
	return &domain.UserWithMetrics{
		User:    *user,
		Metrics: m.userMetrics(ctx, *user),
	}, nil
}

// collectMetrics считает метрики юзеров с ограничением параллельности. Каждая горутина пишет только
// в свою ячейку результата.
func (m *MetricsService) collectMetrics(ctx context.Context, users []domain.User) []domain.UserWithMetrics {
	result := make([]domain.UserWithMetrics, len(users))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i, user := range users {
		g.Go(func() error {
			result[i] = domain.UserWithMetrics{
				User:    user,
				Metrics: m.userMetrics(gCtx, user),
			}
			return nil
		})
	}
	_ = g.Wait()

	return result
}

// userMetrics конвейер одного юзера: заказы -> кандидаты -> связанные транзакции -> агрегация.
// Не возвращает ошибок, деградация отражается в полях метрик.
func (m *MetricsService) userMetrics(ctx context.Context, user domain.User) *domain.UserMetrics {
	log := m.log.WithField("userID", user.ID)

	orders, ordersErr := m.userOrders(ctx, user.ID)
	if ordersErr != nil {
		log.WithError(ordersErr).Warn("failed to load user orders")
		metrics := domain.EmptyUserMetrics()
		metrics.Error = ordersFailedMessage
		metrics.Degraded = []string{domain.DegradedOrders}
		return metrics
	}

	candidates := reconcile.PoolCandidates(orders, func(order domain.Order, err error) {
		log.WithError(err).WithField("orderID", order.ID).Warn("skipping unparseable order metadata")
	})

	transactions, matchErr := m.matchTransactions(ctx, log, candidates.Values())
	if matchErr != nil {
		log.WithError(matchErr).Warn("failed to match user transactions")
	}

	metrics, aggErr := reconcile.Aggregate(&user, orders, transactions)
	if aggErr != nil {
		log.WithError(aggErr).Error("failed to aggregate user metrics")
		metrics = domain.EmptyUserMetrics()
		metrics.Error = aggregationFailedMessage
		return metrics
	}
	if matchErr != nil {
		metrics.Degraded = append(metrics.Degraded, domain.DegradedTransactions)
	}
	return metrics
}

func (m *MetricsService) userOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	qCtx, cancel := context.WithTimeout(ctx, m.queryTimeout)
	defer cancel()
	orders, err := m.orderRepo.GetByUserID(qCtx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return orders, nil
}

// matchTransactions ищет транзакции по набору кандидатов одним запросом. Для пустого набора в хранилище
// платежей не ходит. При ошибке возвращает пустой список вместе с ошибкой.
func (m *MetricsService) matchTransactions(
	ctx context.Context,
	log *logrus.Entry,
	candidates []string,
) ([]domain.Transaction, error) {
	if len(candidates) == 0 {
		return []domain.Transaction{}, nil
	}
	if m.txRepo == nil {
		return []domain.Transaction{}, domain.ErrStoreNotConfigured
	}

	qCtx, cancel := context.WithTimeout(ctx, m.queryTimeout)
	defer cancel()

	found, err := m.txRepo.FindByExternalIDCandidates(qCtx, candidates)
	if err != nil {
		return []domain.Transaction{}, fmt.Errorf("matching transactions: %w", err)
	}
	if len(found) >= repoargs.MaxMatchedTransactions {
		log.WithField("limit", repoargs.MaxMatchedTransactions).
			Warn("matched transactions hit the lookup limit, older transactions are not counted")
	}
	return reconcile.Match(candidates, found), nil
}

func totalPages(total int64, limit uint) uint {
	if total <= 0 || limit == 0 {
		return 0
	}
	l := int64(limit)
	return uint((total + l - 1) / l)
}
