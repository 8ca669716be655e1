package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-admin/internal/domain"
	"github.com/fsdevblog/groph-admin/internal/transport/api/middlewares"
)

const (
	// DefaultServiceTimeout верхняя граница на обработку запроса сервисом. Должна быть больше таймаута
	// одного запроса к хранилищу.
	DefaultServiceTimeout = 15 * time.Second
)

const (
	RouteGroup       = "/api/admin"
	UsersRoute       = "/users"
	UserMetricsRoute = "/users/:id/metrics"
	DashboardRoute   = "/dashboard"
)

type RouterArgs struct {
	Logger           *logrus.Logger
	MetricsService   MetricsServicer
	DashboardService DashboardServicer
	JWTSecretKey     []byte
}

func New(args RouterArgs) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("init router: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	usersHandler := NewUsersHandler(args.MetricsService)
	dashboardHandler := NewDashboardHandler(args.DashboardService)

	api := r.Group(RouteGroup)
	// все роуты группы доступны только администраторам.
	api.Use(middlewares.AuthRequired(args.JWTSecretKey, domain.RoleAdmin))

	api.GET(UsersRoute, usersHandler.Index)
	api.GET(UserMetricsRoute, usersHandler.Metrics)
	api.GET(DashboardRoute, dashboardHandler.Show)
	return r, nil
}
