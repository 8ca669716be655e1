package tokens

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type TokensTestSuite struct {
	suite.Suite
	key []byte
}

func TestTokensSuite(t *testing.T) {
	suite.Run(t, new(TokensTestSuite))
}

func (s *TokensTestSuite) SetupTest() {
	s.key = []byte("secret")
}

func (s *TokensTestSuite) TestRoundTrip() {
	userID := uuid.New()
	token, err := GenerateAdminJWT(userID, "admin", time.Hour, s.key)
	s.Require().NoError(err)

	claims, validateErr := ValidateAdminJWT(token, s.key)
	s.Require().NoError(validateErr)
	s.Equal(userID, claims.UserID)
	s.Equal("admin", claims.Role)
}

func (s *TokensTestSuite) TestExpired() {
	token, err := GenerateAdminJWT(uuid.New(), "admin", -time.Minute, s.key)
	s.Require().NoError(err)

	_, validateErr := ValidateAdminJWT(token, s.key)
	s.ErrorIs(validateErr, ErrTokenExpired)
}

func (s *TokensTestSuite) TestWrongKey() {
	token, err := GenerateAdminJWT(uuid.New(), "admin", time.Hour, s.key)
	s.Require().NoError(err)

	_, validateErr := ValidateAdminJWT(token, []byte("other"))
	s.Error(validateErr)
	s.NotErrorIs(validateErr, ErrTokenExpired)
}

func (s *TokensTestSuite) TestGarbage() {
	_, err := ValidateAdminJWT("not-a-token", s.key)
	s.Error(err)
}
