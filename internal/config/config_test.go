package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestDefaults() {
	conf, err := loadConfig([]string{"-d", "postgres://orders", "-j", "secret"})
	s.Require().NoError(err)

	s.Equal(defaultRunAddress, conf.RunAddress)
	s.Equal("postgres://orders", conf.OrdersDatabaseDSN)
	s.Empty(conf.PaymentsDatabaseDSN)
	s.False(conf.PaymentsConfigured())
	s.Equal(3*time.Second, conf.QueryTimeout)
	s.Equal(int32(10), conf.MaxConns)
	s.Equal(5, conf.MetricsWorkers)
	s.Equal(5*time.Minute, conf.DashboardCacheTTL)
	s.Empty(conf.LogFile)
}

func (s *ConfigTestSuite) TestEnvWinsOverFlags() {
	s.T().Setenv("ORDERS_DATABASE_URI", "postgres://env-orders")
	s.T().Setenv("PAYMENTS_DATABASE_URI", "postgres://env-payments")
	s.T().Setenv("JWT_SECRET", "env-secret")
	s.T().Setenv("STORE_QUERY_TIMEOUT", "750ms")
	s.T().Setenv("METRICS_WORKERS", "8")
	s.T().Setenv("DASHBOARD_CACHE_TTL", "1m")

	conf, err := loadConfig([]string{
		"-d", "postgres://flag-orders",
		"-w", "2",
		"-c", "20",
		"-a", ":9090",
	})
	s.Require().NoError(err)

	s.Equal("postgres://env-orders", conf.OrdersDatabaseDSN)
	s.Equal("postgres://env-payments", conf.PaymentsDatabaseDSN)
	s.True(conf.PaymentsConfigured())
	s.Equal("env-secret", conf.JWTSecret)
	s.Equal(750*time.Millisecond, conf.QueryTimeout)
	s.Equal(8, conf.MetricsWorkers)
	s.Equal(time.Minute, conf.DashboardCacheTTL)
	s.Equal(int32(20), conf.MaxConns)
	s.Equal(":9090", conf.RunAddress)
}

func (s *ConfigTestSuite) TestRequiredValues() {
	_, err := loadConfig([]string{"-j", "secret"})
	s.ErrorIs(err, ErrOrdersDSNNotSet)

	_, err = loadConfig([]string{"-d", "postgres://orders"})
	s.ErrorIs(err, ErrJWTSecretNotSet)
}

func (s *ConfigTestSuite) TestInvalidValues() {
	cases := []struct {
		name string
		args []string
	}{
		{name: "zero workers", args: []string{"-w", "-1"}},
		{name: "zero conns", args: []string{"-c", "-1"}},
		{name: "negative timeout", args: []string{"-t", "-1s"}},
		{name: "unknown flag", args: []string{"-unknown"}},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			_, err := loadConfig(append([]string{"-d", "postgres://orders", "-j", "secret"}, t.args...))
			s.Error(err)
		})
	}
}
