package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired  = errors.New("token expired")
	ErrInvalidClaims = errors.New("invalid claims")
)

// AdminClaims утверждения токена администратора. Токены выпускает внешний сервис авторизации,
// здесь они только проверяются.
type AdminClaims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

// GenerateAdminJWT подписывает токен с указанной ролью. Используется в тестах и для локальной отладки.
func GenerateAdminJWT(userID uuid.UUID, role string, expire time.Duration, key []byte) (string, error) {
	claims := AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
		},
		UserID: userID,
		Role:   role,
	}
	token, err := generateJWT(claims, key)
	if err != nil {
		return "", fmt.Errorf("generating admin jwt token: %s", err.Error())
	}
	return token, nil
}

// ValidateAdminJWT проверяет подпись и срок действия токена. Возвращает ErrTokenExpired для просроченного
// токена. Роль не проверяется.
func ValidateAdminJWT(tokenString string, key []byte) (*AdminClaims, error) {
	token, err := validateJWT(tokenString, new(AdminClaims), key)
	if err != nil {
		return nil, fmt.Errorf("validating admin jwt token: %w", err)
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

func generateJWT(claims jwt.Claims, key []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("generating jwt token: %s", err.Error())
	}

	return tokenString, nil
}

func validateJWT(tokenString string, claims jwt.Claims, key []byte) (*jwt.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("parsing jwt token: %w", err)
	}

	return token, nil
}
