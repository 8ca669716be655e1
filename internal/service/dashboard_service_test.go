package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-admin/internal/domain"
	"github.com/fsdevblog/groph-admin/internal/repository/repoargs"
	"github.com/fsdevblog/groph-admin/internal/service/mocks"
	"github.com/fsdevblog/groph-admin/pkg/uow"
	uowmocks "github.com/fsdevblog/groph-admin/pkg/uow/mocks"
)

type DashboardServiceTestSuite struct {
	suite.Suite
	mockCtrl         *gomock.Controller
	mockOrdersUOW    *uowmocks.MockUOW
	mockPaymentsUOW  *uowmocks.MockUOW
	mockUserRepo     *mocks.MockUserRepository
	mockOrderRepo    *mocks.MockOrderRepository
	mockTxRepo       *mocks.MockTransactionRepository
	logger           *logrus.Logger
	clock            time.Time
	dashboardService *DashboardService
}

func TestDashboardServiceSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}

func (s *DashboardServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockOrdersUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockPaymentsUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(s.mockCtrl)
	s.mockOrderRepo = mocks.NewMockOrderRepository(s.mockCtrl)
	s.mockTxRepo = mocks.NewMockTransactionRepository(s.mockCtrl)

	s.logger = logrus.New()
	s.logger.SetOutput(io.Discard)

	s.mockOrdersUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()
	s.mockOrdersUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil).AnyTimes()
	s.mockPaymentsUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.TransactionRepoName)).
		Return(s.mockTxRepo, nil).AnyTimes()

	dashboardService, err := NewDashboardService(s.mockOrdersUOW, s.mockPaymentsUOW, DashboardServiceOptions{
		TTL:          time.Minute,
		QueryTimeout: time.Second,
		Logger:       s.logger,
	})
	s.Require().NoError(err)

	s.clock = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	dashboardService.now = func() time.Time { return s.clock }
	s.dashboardService = dashboardService
}

func (s *DashboardServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *DashboardServiceTestSuite) expectFreshLoad(times int) {
	s.mockUserRepo.EXPECT().Count(gomock.Any(), repoargs.UserFilter{}).Return(int64(5), nil).Times(times)
	s.mockOrderRepo.EXPECT().StatusSummary(gomock.Any()).Return([]repoargs.StatusAggregation{
		{Status: "paid", Count: 2, Amount: decimal.NewFromInt(100)},
		{Status: "pendente", Count: 1, Amount: decimal.NewFromInt(30)},
		{Status: "completed", Count: 1, Amount: decimal.NewFromInt(70)},
	}, nil).Times(times)
	s.mockTxRepo.EXPECT().StatusSummary(gomock.Any()).Return([]repoargs.StatusAggregation{
		{Status: "approved", Count: 2, Amount: decimal.NewFromInt(150)},
		{Status: "declined", Count: 1, Amount: decimal.NewFromInt(40)},
	}, nil).Times(times)
}

func (s *DashboardServiceTestSuite) TestFreshSummary() {
	s.expectFreshLoad(1)

	summary, err := s.dashboardService.Summary(context.Background())
	s.Require().NoError(err)
	s.False(summary.Stale)
	s.Equal(s.clock, summary.GeneratedAt)
	s.Equal(int64(5), summary.TotalUsers)
	s.Equal(int64(4), summary.TotalOrders)
	s.Equal(int64(3), summary.OrdersByStatus[domain.OrderStatusCompleted])
	s.Equal(int64(1), summary.OrdersByStatus[domain.OrderStatusPending])
	s.True(decimal.NewFromInt(200).Equal(summary.TotalRevenue))
	s.Equal(int64(3), summary.TotalTransactions)
	s.Equal(int64(2), summary.TransactionsByStatus[domain.TransactionStatusApproved])
	s.Equal(int64(1), summary.TransactionsByStatus[domain.TransactionStatusRejected])
	s.True(decimal.NewFromInt(150).Equal(summary.TotalPayments))
}

func (s *DashboardServiceTestSuite) TestServedFromCacheWithinTTL() {
	s.expectFreshLoad(1)

	first, err := s.dashboardService.Summary(context.Background())
	s.Require().NoError(err)

	s.clock = s.clock.Add(30 * time.Second)
	second, secondErr := s.dashboardService.Summary(context.Background())
	s.Require().NoError(secondErr)
	s.Equal(first.GeneratedAt, second.GeneratedAt)
}

func (s *DashboardServiceTestSuite) TestReloadAfterTTL() {
	s.expectFreshLoad(2)

	_, err := s.dashboardService.Summary(context.Background())
	s.Require().NoError(err)

	s.clock = s.clock.Add(2 * time.Minute)
	summary, secondErr := s.dashboardService.Summary(context.Background())
	s.Require().NoError(secondErr)
	s.Equal(s.clock, summary.GeneratedAt)
}

func (s *DashboardServiceTestSuite) TestFallsBackToStaleSnapshot() {
	s.expectFreshLoad(1)
	_, err := s.dashboardService.Summary(context.Background())
	s.Require().NoError(err)
	generatedAt := s.clock

	s.clock = s.clock.Add(2 * time.Minute)
	s.mockUserRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(int64(0), domain.ErrStoreTimeout).AnyTimes()
	s.mockOrderRepo.EXPECT().StatusSummary(gomock.Any()).Return(nil, domain.ErrStoreTimeout).AnyTimes()
	s.mockTxRepo.EXPECT().StatusSummary(gomock.Any()).Return(nil, domain.ErrStoreTimeout).AnyTimes()

	summary, staleErr := s.dashboardService.Summary(context.Background())
	s.Require().NoError(staleErr)
	s.True(summary.Stale)
	s.Equal(generatedAt, summary.GeneratedAt)
	s.Equal(int64(5), summary.TotalUsers)
}

func (s *DashboardServiceTestSuite) TestAllStrategiesFail() {
	s.mockUserRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(int64(0), domain.ErrStoreTimeout).AnyTimes()
	s.mockOrderRepo.EXPECT().StatusSummary(gomock.Any()).Return(nil, domain.ErrStoreTimeout).AnyTimes()
	s.mockTxRepo.EXPECT().StatusSummary(gomock.Any()).Return(nil, domain.ErrStoreTimeout).AnyTimes()

	_, err := s.dashboardService.Summary(context.Background())
	s.Require().Error(err)
	s.ErrorIs(err, domain.ErrStoreTimeout)
	s.ErrorIs(err, ErrNoSnapshot)
}

func (s *DashboardServiceTestSuite) TestPaymentsStoreNotConfigured() {
	dashboardService, err := NewDashboardService(s.mockOrdersUOW, nil, DashboardServiceOptions{Logger: s.logger})
	s.Require().NoError(err)

	_, summaryErr := dashboardService.Summary(context.Background())
	s.ErrorIs(summaryErr, domain.ErrStoreNotConfigured)
}

func (s *DashboardServiceTestSuite) TestConcurrentMissesCollapse() {
	s.mockUserRepo.EXPECT().Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ repoargs.UserFilter) (int64, error) {
			time.Sleep(20 * time.Millisecond)
			return 1, nil
		}).Times(1)
	s.mockOrderRepo.EXPECT().StatusSummary(gomock.Any()).Return([]repoargs.StatusAggregation{}, nil).Times(1)
	s.mockTxRepo.EXPECT().StatusSummary(gomock.Any()).Return([]repoargs.StatusAggregation{}, nil).Times(1)

	const callers = 10
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.dashboardService.Summary(context.Background())
		}()
	}
	wg.Wait()

	for _, err := range errs {
		s.NoError(err)
	}
}

func (s *DashboardServiceTestSuite) TestCallerCancellationDoesNotSkipStaleSnapshot() {
	s.expectFreshLoad(1)
	_, err := s.dashboardService.Summary(context.Background())
	s.Require().NoError(err)

	s.clock = s.clock.Add(2 * time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// клиент отключается, пока идет пересчет.
	s.mockUserRepo.EXPECT().Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ repoargs.UserFilter) (int64, error) {
			cancel()
			return 0, domain.ErrStoreTimeout
		}).Times(1)
	s.mockOrderRepo.EXPECT().StatusSummary(gomock.Any()).Return(nil, domain.ErrStoreTimeout).AnyTimes()
	s.mockTxRepo.EXPECT().StatusSummary(gomock.Any()).Return(nil, domain.ErrStoreTimeout).AnyTimes()

	summary, staleErr := s.dashboardService.Summary(ctx)
	s.Require().NoError(staleErr)
	s.True(summary.Stale)
	s.Equal(int64(5), summary.TotalUsers)
}
