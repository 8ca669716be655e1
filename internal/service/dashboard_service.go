package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/fsdevblog/groph-admin/internal/domain"
	"github.com/fsdevblog/groph-admin/internal/repository/repoargs"
	"github.com/fsdevblog/groph-admin/pkg/fallback"
	"github.com/fsdevblog/groph-admin/pkg/uow"
)

const DefaultDashboardTTL = 5 * time.Minute

const (
	strategyFresh = "fresh"
	strategyStale = "stale"

	summaryFlightKey = "summary"
)

var ErrNoSnapshot = errors.New("no dashboard snapshot yet")

type DashboardServiceOptions struct {
	TTL          time.Duration
	QueryTimeout time.Duration
	Logger       *logrus.Logger
}

// DashboardService сводка по обоим хранилищам с кешем в памяти. Кеш живет TTL и явно не инвалидируется.
type DashboardService struct {
	userRepo  UserRepository
	orderRepo OrderRepository
	txRepo    TransactionRepository

	ttl          time.Duration
	queryTimeout time.Duration
	now          func() time.Time
	log          *logrus.Entry

	group singleflight.Group
	chain *fallback.Chain[*domain.DashboardSummary]

	mu       sync.RWMutex
	snapshot *domain.DashboardSummary
	cachedAt time.Time
}

func NewDashboardService(ordersUOW, paymentsUOW uow.UOW, opts DashboardServiceOptions) (*DashboardService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](ordersUOW, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, fmt.Errorf("dashboard service: %w", userRepoErr)
	}
	orderRepo, orderRepoErr := uow.GetRepositoryAs[OrderRepository](ordersUOW, uow.RepositoryName(repoargs.OrderRepoName))
	if orderRepoErr != nil {
		return nil, fmt.Errorf("dashboard service: %w", orderRepoErr)
	}
	var txRepo TransactionRepository
	if paymentsUOW != nil {
		repo, txRepoErr := uow.GetRepositoryAs[TransactionRepository](
			paymentsUOW,
			uow.RepositoryName(repoargs.TransactionRepoName),
		)
		if txRepoErr != nil {
			return nil, fmt.Errorf("dashboard service: %w", txRepoErr)
		}
		txRepo = repo
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultDashboardTTL
	}
	queryTimeout := opts.QueryTimeout
	if queryTimeout <= 0 {
		queryTimeout = DefaultQueryTimeout
	}
	l := opts.Logger
	if l == nil {
		l = logrus.StandardLogger()
	}

	d := &DashboardService{
		userRepo:     userRepo,
		orderRepo:    orderRepo,
		txRepo:       txRepo,
		ttl:          ttl,
		queryTimeout: queryTimeout,
		now:          time.Now,
		log:          l.WithField("component", "dashboard_service"),
	}
	d.chain = fallback.New[*domain.DashboardSummary]().
		Then(strategyFresh, d.loadFresh).
		Then(strategyStale, d.loadStale)
	return d, nil
}

// Summary возвращает сводку из кеша, если она свежее TTL. Иначе пересчитывает ее, одновременные промахи
// выполняют один пересчет. Если пересчет не удался, отдается последний снимок с Stale=true. Если снимка
// нет, возвращается объединенная ошибка всех стратегий.
//
// Пересчет общий для всех ожидающих, поэтому отмена контекста первого вызвавшего его не прерывает.
// Время пересчета ограничено queryTimeout внутри loadFresh.
func (d *DashboardService) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	if cached := d.cached(); cached != nil {
		return cached, nil
	}

	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := d.group.Do(summaryFlightKey, func() (any, error) {
		if cached := d.cached(); cached != nil {
			return cached, nil
		}
		summary, strategy, chainErr := d.chain.Run(flightCtx)
		if chainErr != nil {
			return nil, chainErr //nolint:wrapcheck
		}
		if strategy == strategyStale {
			d.log.Warn("serving stale dashboard snapshot")
		}
		return summary, nil
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}
	return v.(*domain.DashboardSummary), nil //nolint:forcetypeassert
}

func (d *DashboardService) cached() *domain.DashboardSummary {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.snapshot == nil || d.now().Sub(d.cachedAt) >= d.ttl {
		return nil
	}
	return d.snapshot
}

func (d *DashboardService) loadFresh(ctx context.Context) (*domain.DashboardSummary, error) {
	if d.txRepo == nil {
		return nil, domain.ErrStoreNotConfigured
	}

	qCtx, cancel := context.WithTimeout(ctx, d.queryTimeout)
	defer cancel()

	var totalUsers int64
	var orders, transactions []repoargs.StatusAggregation

	g, gCtx := errgroup.WithContext(qCtx)
	g.Go(func() error {
		var err error
		totalUsers, err = d.userRepo.Count(gCtx, repoargs.UserFilter{})
		return err //nolint:wrapcheck
	})
	g.Go(func() error {
		var err error
		orders, err = d.orderRepo.StatusSummary(gCtx)
		return err //nolint:wrapcheck
	})
	g.Go(func() error {
		var err error
		transactions, err = d.txRepo.StatusSummary(gCtx)
		return err //nolint:wrapcheck
	})
	if err := g.Wait(); err != nil {
		d.log.WithError(err).Warn("failed to load dashboard summary")
		return nil, err //nolint:wrapcheck
	}

	summary := buildSummary(totalUsers, orders, transactions)
	summary.GeneratedAt = d.now()

	d.mu.Lock()
	d.snapshot = summary
	d.cachedAt = summary.GeneratedAt
	d.mu.Unlock()

	return summary, nil
}

func (d *DashboardService) loadStale(_ context.Context) (*domain.DashboardSummary, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.snapshot == nil {
		return nil, ErrNoSnapshot
	}
	stale := *d.snapshot
	stale.Stale = true
	return &stale, nil
}

// buildSummary сворачивает агрегаты по сырым статусам в нормализованные. TotalPayments учитывает только
// успешные транзакции.
func buildSummary(
	totalUsers int64,
	orders, transactions []repoargs.StatusAggregation,
) *domain.DashboardSummary {
	summary := &domain.DashboardSummary{
		TotalUsers:           totalUsers,
		OrdersByStatus:       make(map[domain.OrderStatusType]int64),
		TotalRevenue:         decimal.Zero,
		TransactionsByStatus: make(map[domain.TransactionStatusType]int64),
		TotalPayments:        decimal.Zero,
	}
	for _, agg := range orders {
		summary.OrdersByStatus[domain.NormalizeOrderStatus(agg.Status)] += agg.Count
		summary.TotalOrders += agg.Count
		summary.TotalRevenue = summary.TotalRevenue.Add(agg.Amount)
	}
	for _, agg := range transactions {
		status := domain.NormalizeTransactionStatus(agg.Status)
		summary.TransactionsByStatus[status] += agg.Count
		summary.TotalTransactions += agg.Count
		if status.IsSuccessful() {
			summary.TotalPayments = summary.TotalPayments.Add(agg.Amount)
		}
	}
	return summary
}
