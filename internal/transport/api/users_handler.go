package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fsdevblog/groph-admin/internal/domain"
	"github.com/fsdevblog/groph-admin/internal/repository/repoargs"
	"github.com/fsdevblog/groph-admin/internal/service"
)

var (
	errStoreNotConfigured   = errors.New("store is not configured")
	errOrdersUnavailable    = errors.New("orders store unavailable")
	errInvalidQueryParams   = errors.New("invalid query parameters")
	errInvalidUserID        = errors.New("invalid user id")
	errUserNotFound         = errors.New("user not found")
	errMetricsUnavailable   = errors.New("metrics unavailable")
	errDashboardUnavailable = errors.New("dashboard unavailable")
)

type UsersHandler struct {
	metricsSvs MetricsServicer
}

func NewUsersHandler(metricsSvs MetricsServicer) *UsersHandler {
	return &UsersHandler{
		metricsSvs: metricsSvs,
	}
}

// usersQuery поиск ограничен 100 рунами и 256 байтами.
type usersQuery struct {
	Search string `binding:"max=100,max_bytes=256" form:"search"`
	Role   string `binding:"user_role"              form:"role"`
	Page   int    `binding:"min=1"                  form:"page,default=1"`
	Limit  int    `form:"limit,default=10"`
}

// Index GET RouteGroup + UsersRoute.
func (u *UsersHandler) Index(c *gin.Context) {
	var params usersQuery
	if bindErr := c.ShouldBindQuery(&params); bindErr != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(bindErr, &validationErrs) {
			_ = c.AbortWithError(http.StatusUnprocessableEntity, bindErr).SetType(gin.ErrorTypePublic)
			return
		}
		_ = c.AbortWithError(http.StatusBadRequest, errInvalidQueryParams).SetType(gin.ErrorTypePublic)
		_ = c.Error(bindErr).SetType(gin.ErrorTypePrivate)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	page, err := u.metricsSvs.GetUsersPage(reqCtx, service.UsersPageArgs{
		Filter: repoargs.UserFilter{Search: params.Search, Role: params.Role},
		Page:   params.Page,
		Limit:  params.Limit,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidArgument):
			_ = c.AbortWithError(http.StatusUnprocessableEntity, err).SetType(gin.ErrorTypePublic)
		case errors.Is(err, domain.ErrStoreNotConfigured):
			_ = c.AbortWithError(http.StatusInternalServerError, errStoreNotConfigured).SetType(gin.ErrorTypePublic)
		default:
			_ = c.AbortWithError(http.StatusServiceUnavailable, errOrdersUnavailable).SetType(gin.ErrorTypePublic)
			_ = c.Error(err).SetType(gin.ErrorTypePrivate)
		}
		return
	}

	response := UsersPageResponse{
		Users:      make([]UserResponse, len(page.Users)),
		Page:       page.Page,
		TotalPages: page.TotalPages,
		TotalItems: page.TotalItems,
	}
	for i, item := range page.Users {
		response.Users[i] = newUserResponse(item)
	}

	c.JSON(http.StatusOK, response)
}

// Metrics GET RouteGroup + UserMetricsRoute.
func (u *UsersHandler) Metrics(c *gin.Context) {
	userID, parseErr := uuid.Parse(c.Param("id"))
	if parseErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, errInvalidUserID).SetType(gin.ErrorTypePublic)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	item, err := u.metricsSvs.GetUserMetrics(reqCtx, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			_ = c.AbortWithError(http.StatusNotFound, errUserNotFound).SetType(gin.ErrorTypePublic)
		case errors.Is(err, domain.ErrStoreNotConfigured):
			_ = c.AbortWithError(http.StatusInternalServerError, errStoreNotConfigured).SetType(gin.ErrorTypePublic)
		default:
			_ = c.AbortWithError(http.StatusServiceUnavailable, errMetricsUnavailable).SetType(gin.ErrorTypePublic)
			_ = c.Error(err).SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(*item)})
}
