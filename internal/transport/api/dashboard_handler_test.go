package api

import (
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-admin/internal/domain"
	"github.com/fsdevblog/groph-admin/internal/logger"
	"github.com/fsdevblog/groph-admin/internal/service/tokens"
	"github.com/fsdevblog/groph-admin/internal/transport/api/mocks"
	"github.com/fsdevblog/groph-admin/internal/transport/api/testutils"
)

type DashboardHandlerTestSuite struct {
	suite.Suite
	mockCtrl             *gomock.Controller
	router               *gin.Engine
	mockDashboardService *mocks.MockDashboardServicer
	adminToken           string
}

func TestDashboardHandlerSuite(t *testing.T) {
	suite.Run(t, new(DashboardHandlerTestSuite))
}

func (s *DashboardHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockCtrl = gomock.NewController(s.T())
	s.mockDashboardService = mocks.NewMockDashboardServicer(s.mockCtrl)
	secret := []byte("super secret key")

	router, err := New(RouterArgs{
		Logger:           logger.New(io.Discard),
		MetricsService:   mocks.NewMockMetricsServicer(s.mockCtrl),
		DashboardService: s.mockDashboardService,
		JWTSecretKey:     secret,
	})
	s.Require().NoError(err)
	s.router = router

	token, tokenErr := tokens.GenerateAdminJWT(uuid.New(), domain.RoleAdmin, time.Hour, secret)
	s.Require().NoError(tokenErr)
	s.adminToken = token
}

func (s *DashboardHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *DashboardHandlerTestSuite) request() (int, []byte) {
	res := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + DashboardRoute,
	}, testutils.WithBearer(s.adminToken))
	defer func() {
		s.Require().NoError(res.Body.Close())
	}()
	body, err := io.ReadAll(res.Body)
	s.Require().NoError(err)
	return res.StatusCode, body
}

func (s *DashboardHandlerTestSuite) TestShow() {
	s.mockDashboardService.EXPECT().Summary(gomock.Any()).Return(&domain.DashboardSummary{
		TotalUsers:           5,
		TotalOrders:          4,
		OrdersByStatus:       map[domain.OrderStatusType]int64{domain.OrderStatusCompleted: 3},
		TotalRevenue:         decimal.NewFromInt(200),
		TotalTransactions:    3,
		TransactionsByStatus: map[domain.TransactionStatusType]int64{domain.TransactionStatusApproved: 2},
		TotalPayments:        decimal.NewFromInt(150),
		GeneratedAt:          time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Stale:                true,
	}, nil)

	status, body := s.request()
	s.Require().Equal(http.StatusOK, status)

	var response DashboardResponse
	s.Require().NoError(json.Unmarshal(body, &response))
	s.Equal(int64(5), response.TotalUsers)
	s.Equal(int64(3), response.OrdersByStatus["completed"])
	s.Equal(int64(2), response.TransactionsByStatus["approved"])
	s.InDelta(200, response.TotalRevenue, 0.001)
	s.InDelta(150, response.TotalPayments, 0.001)
	s.True(response.Stale)
}

func (s *DashboardHandlerTestSuite) TestShowUnavailable() {
	s.mockDashboardService.EXPECT().Summary(gomock.Any()).Return(nil, errors.New("all strategies failed"))

	status, body := s.request()
	s.Equal(http.StatusServiceUnavailable, status)
	s.JSONEq(`{"error":"dashboard unavailable"}`, string(body))
}
