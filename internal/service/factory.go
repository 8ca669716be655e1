package service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-admin/pkg/uow"
)

type AppServices struct {
	MetricsService   *MetricsService
	DashboardService *DashboardService
}

type FactoryArgs struct {
	OrdersUOW uow.UOW
	// PaymentsUOW nil, если хранилище платежей не сконфигурировано.
	PaymentsUOW  uow.UOW
	Workers      int
	QueryTimeout time.Duration
	DashboardTTL time.Duration
	Logger       *logrus.Logger
}

func Factory(args FactoryArgs) (*AppServices, error) {
	metricsService, metricsErr := NewMetricsService(args.OrdersUOW, args.PaymentsUOW, MetricsServiceOptions{
		Workers:      args.Workers,
		QueryTimeout: args.QueryTimeout,
		Logger:       args.Logger,
	})
	if metricsErr != nil {
		return nil, fmt.Errorf("service factory: %s", metricsErr.Error())
	}

	dashboardService, dashboardErr := NewDashboardService(args.OrdersUOW, args.PaymentsUOW, DashboardServiceOptions{
		TTL:          args.DashboardTTL,
		QueryTimeout: args.QueryTimeout,
		Logger:       args.Logger,
	})
	if dashboardErr != nil {
		return nil, fmt.Errorf("service factory: %s", dashboardErr.Error())
	}

	return &AppServices{
		MetricsService:   metricsService,
		DashboardService: dashboardService,
	}, nil
}
