package pgrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const (
	defaultMaxAttempts   uint = 30
	defaultRetryInterval      = 3 * time.Second
)

type ConnectArgs struct {
	// Name имя хранилища для логов (orders, payments).
	Name string
	DSN  string
	// MigrationsDir каталог с миграциями. Пустое значение - миграции не применяются.
	MigrationsDir string
	// QueryTimeout таймаут соединения и statement_timeout для каждого запроса пула.
	QueryTimeout  time.Duration
	MaxConns      int32
	MaxAttempts   uint
	RetryInterval time.Duration
}

// Connect создает пул соединений к хранилищу, повторяя попытки до MaxAttempts раз, затем применяет миграции.
func Connect(ctx context.Context, args ConnectArgs, l *logrus.Logger) (*pgxpool.Pool, error) {
	maxAttempts := args.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = defaultMaxAttempts
	}
	retryInterval := args.RetryInterval
	if retryInterval == 0 {
		retryInterval = defaultRetryInterval
	}

	log := l.WithField("store", args.Name)

	var attempts uint
	for {
		pool, connErr := newPostgresConnection(ctx, args)
		if connErr == nil {
			if err := postgresMigrate(args.MigrationsDir, args.DSN); err != nil {
				pool.Close()
				return nil, fmt.Errorf("init %s store: %w", args.Name, err)
			}
			log.Info("postgres connection established")
			return pool, nil
		}

		attempts++
		if attempts >= maxAttempts {
			return nil, fmt.Errorf("init %s store after %d attempts: %w", args.Name, attempts, connErr)
		}

		wait := time.Duration(jitter(float64(retryInterval), 0.15, 0.15)) //nolint:mnd
		log.WithError(connErr).
			WithField("CurrentAttempt", fmt.Sprintf("#%d / %d", attempts, maxAttempts)).
			Warnf("init postgres connection error, retrying in %.f seconds", wait.Seconds())

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("init %s store: %w", args.Name, ctx.Err())
		case <-time.After(wait):
		}
	}
}

func newPostgresConnection(ctx context.Context, args ConnectArgs) (*pgxpool.Pool, error) {
	poolConfig, confErr := pgxpool.ParseConfig(args.DSN)
	if confErr != nil {
		return nil, fmt.Errorf("parse postgres config: %s", confErr.Error())
	}
	if args.MaxConns > 0 {
		poolConfig.MaxConns = args.MaxConns
	}
	if args.QueryTimeout > 0 {
		poolConfig.ConnConfig.ConnectTimeout = args.QueryTimeout
		poolConfig.ConnConfig.RuntimeParams["statement_timeout"] =
			strconv.FormatInt(args.QueryTimeout.Milliseconds(), 10)
	}

	pool, poolErr := pgxpool.NewWithConfig(ctx, poolConfig)
	if poolErr != nil {
		return nil, fmt.Errorf("failed to create pool: %s", poolErr.Error())
	}

	// Проверяем, что соединение работает (Ping)
	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %s", pingErr.Error())
	}

	return pool, nil
}

func postgresMigrate(dir string, dsn string) error {
	if dir == "" {
		return nil
	}
	m, mErr := migrate.New("file://"+dir, dsn)
	if mErr != nil {
		return fmt.Errorf("failed to create migrate instance: %w", mErr)
	}
	defer func() {
		_, _ = m.Close()
	}()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
