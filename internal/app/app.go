package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-admin/internal/config"
	"github.com/fsdevblog/groph-admin/internal/repository/pgrepo"
	"github.com/fsdevblog/groph-admin/internal/repository/repoargs"
	"github.com/fsdevblog/groph-admin/internal/service"
	"github.com/fsdevblog/groph-admin/internal/transport/api"
	"github.com/fsdevblog/groph-admin/pkg/uow"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.WithFields(logrus.Fields{
		"address":            a.Config.RunAddress,
		"paymentsConfigured": a.Config.PaymentsConfigured(),
		"queryTimeout":       a.Config.QueryTimeout.String(),
		"maxConns":           a.Config.MaxConns,
		"workers":            a.Config.MetricsWorkers,
		"dashboardTTL":       a.Config.DashboardCacheTTL.String(),
	}).Info("starting admin app")

	ordersConn, ordersErr := pgrepo.Connect(notifyCtx, pgrepo.ConnectArgs{
		Name:          "orders",
		DSN:           a.Config.OrdersDatabaseDSN,
		MigrationsDir: a.Config.OrdersMigrationsDir,
		QueryTimeout:  a.Config.QueryTimeout,
		MaxConns:      a.Config.MaxConns,
	}, a.Logger)
	if ordersErr != nil {
		return fmt.Errorf("app run: %s", ordersErr.Error())
	}
	defer ordersConn.Close()

	ordersUOW, ordersUOWErr := initOrdersUOW(ordersConn)
	if ordersUOWErr != nil {
		return fmt.Errorf("app run: %s", ordersUOWErr.Error())
	}

	// paymentsUOW остается nil, если хранилище платежей не сконфигурировано.
	var paymentsUOW uow.UOW
	if a.Config.PaymentsConfigured() {
		paymentsConn, paymentsErr := pgrepo.Connect(notifyCtx, pgrepo.ConnectArgs{
			Name:          "payments",
			DSN:           a.Config.PaymentsDatabaseDSN,
			MigrationsDir: a.Config.PaymentsMigrationsDir,
			QueryTimeout:  a.Config.QueryTimeout,
			MaxConns:      a.Config.MaxConns,
		}, a.Logger)
		if paymentsErr != nil {
			return fmt.Errorf("app run: %s", paymentsErr.Error())
		}
		defer paymentsConn.Close()

		u, paymentsUOWErr := initPaymentsUOW(paymentsConn)
		if paymentsUOWErr != nil {
			return fmt.Errorf("app run: %s", paymentsUOWErr.Error())
		}
		paymentsUOW = u
	} else {
		a.Logger.Warn("payments store is not configured, metrics endpoints will report it")
	}

	if int(a.Config.MaxConns) <= a.Config.MetricsWorkers {
		a.Logger.Warnf("metrics workers (%d) should stay below store max conns (%d)",
			a.Config.MetricsWorkers, a.Config.MaxConns)
	}

	services, sErr := service.Factory(service.FactoryArgs{
		OrdersUOW:    ordersUOW,
		PaymentsUOW:  paymentsUOW,
		Workers:      a.Config.MetricsWorkers,
		QueryTimeout: a.Config.QueryTimeout,
		DashboardTTL: a.Config.DashboardCacheTTL,
		Logger:       a.Logger,
	})
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	router, routerErr := api.New(api.RouterArgs{
		Logger:           a.Logger,
		MetricsService:   services.MetricsService,
		DashboardService: services.DashboardService,
		JWTSecretKey:     []byte(a.Config.JWTSecret),
	})
	if routerErr != nil {
		return fmt.Errorf("app run: %s", routerErr.Error())
	}

	server := &http.Server{
		Addr:              a.Config.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second, //nolint:mnd
	}

	errChan := make(chan error, 1)
	go func() {
		if runErr := server.ListenAndServe(); runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
			errChan <- runErr
		}
	}()

	select {
	case <-notifyCtx.Done():
		a.Logger.Info("shutting down admin app")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("app shutdown: %w", err)
		}
		return nil
	case err := <-errChan:
		return err
	}
}

// initOrdersUOW репозитории хранилища заказов. Транзакции read-only: сервис только читает.
func initOrdersUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn, uow.WithReadOnly())

	// user repo
	userRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewUserRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.UserRepoName), userRepoFactoryFn); regErr != nil {
		return nil, fmt.Errorf("init orders UOW: %s", regErr.Error())
	}

	// order repo
	orderRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewOrderRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.OrderRepoName), orderRepoFactoryFn); regErr != nil {
		return nil, fmt.Errorf("init orders UOW: %s", regErr.Error())
	}

	return unitOfWork, nil
}

func initPaymentsUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn, uow.WithReadOnly())

	transactionRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewTransactionRepository(dbtx)
	}
	if regErr := unitOfWork.Register(
		uow.RepositoryName(repoargs.TransactionRepoName),
		transactionRepoFactoryFn,
	); regErr != nil {
		return nil, fmt.Errorf("init payments UOW: %s", regErr.Error())
	}

	return unitOfWork, nil
}
