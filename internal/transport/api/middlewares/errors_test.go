package middlewares

import (
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-admin/internal/transport/api/testutils"
)

type ErrorsMiddlewareTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func TestErrorsMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(ErrorsMiddlewareTestSuite))
}

func (s *ErrorsMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(Errors())

	s.router.GET("/public", func(c *gin.Context) {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.New("store is not configured")).
			SetType(gin.ErrorTypePublic)
	})
	s.router.GET("/private", func(c *gin.Context) {
		_ = c.AbortWithError(http.StatusServiceUnavailable, errors.New("dial tcp: refused")).
			SetType(gin.ErrorTypePrivate)
	})
	s.router.GET("/mixed", func(c *gin.Context) {
		_ = c.AbortWithError(http.StatusUnauthorized, ErrUnauthorized).SetType(gin.ErrorTypePublic)
		_ = c.Error(errors.New("token is malformed")).SetType(gin.ErrorTypePrivate)
	})
	s.router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}

func (s *ErrorsMiddlewareTestSuite) request(url string) (int, string) {
	res := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    url,
	})
	defer func() {
		s.Require().NoError(res.Body.Close())
	}()
	body, err := io.ReadAll(res.Body)
	s.Require().NoError(err)
	return res.StatusCode, string(body)
}

func (s *ErrorsMiddlewareTestSuite) TestErrorBodies() {
	cases := []struct {
		name       string
		url        string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "public error message",
			url:        "/public",
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"store is not configured"}`,
		},
		{
			name:       "private error hidden behind status text",
			url:        "/private",
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"error":"service unavailable"}`,
		},
		{
			name:       "first error wins",
			url:        "/mixed",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"unauthorized"}`,
		},
		{
			name:       "no errors",
			url:        "/ok",
			wantStatus: http.StatusOK,
			wantBody:   `{"ok":true}`,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			status, body := s.request(t.url)
			s.Equal(t.wantStatus, status)
			s.JSONEq(t.wantBody, body)
		})
	}
}
