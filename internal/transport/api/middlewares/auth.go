package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/groph-admin/internal/service/tokens"
)

var (
	ErrTokenNotExist = errors.New("token not exist")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
)

const CurrentAdminIDKey = "currentAdminID"

// checkAuthorization извлекает токен из заголовка Authorization и проверяет его. Если токен не передан, вернется ошибка
// ErrTokenNotExist.
func checkAuthorization(c *gin.Context, jwtTokenSecret []byte) (*tokens.AdminClaims, error) {
	tokenHeader := c.GetHeader("Authorization")
	bearer := "Bearer "

	if len(tokenHeader) < len(bearer) || !strings.EqualFold(tokenHeader[:len(bearer)], bearer) {
		return nil, ErrTokenNotExist
	}

	claims, err := tokens.ValidateAdminJWT(tokenHeader[len(bearer):], jwtTokenSecret)
	if err != nil {
		return nil, fmt.Errorf("check authorization: %w", err)
	}
	return claims, nil
}

// AuthRequired проверяет, что запрос авторизован (401) и роль из токена входит в roles (403).
// Записывает в контекст (поле CurrentAdminIDKey) id юзера из токена.
func AuthRequired(jwtTokenSecret []byte, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := checkAuthorization(c, jwtTokenSecret)
		if err != nil {
			_ = c.AbortWithError(http.StatusUnauthorized, ErrUnauthorized).SetType(gin.ErrorTypePublic)
			if !errors.Is(err, ErrTokenNotExist) {
				_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			}
			return
		}
		if len(roles) > 0 && !slices.Contains(roles, claims.Role) {
			_ = c.AbortWithError(http.StatusForbidden, ErrForbidden).SetType(gin.ErrorTypePublic)
			return
		}
		c.Set(CurrentAdminIDKey, claims.UserID)
		c.Next()
	}
}
