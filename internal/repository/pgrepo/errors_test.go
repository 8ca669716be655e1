package pgrepo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-admin/internal/domain"
)

type RepoHelpersTestSuite struct {
	suite.Suite
}

func TestRepoHelpersSuite(t *testing.T) {
	suite.Run(t, new(RepoHelpersTestSuite))
}

func (s *RepoHelpersTestSuite) TestConvertErr() {
	cases := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "no rows", err: pgx.ErrNoRows, wantErr: domain.ErrRecordNotFound},
		{name: "wrapped no rows", err: fmt.Errorf("scan: %w", pgx.ErrNoRows), wantErr: domain.ErrRecordNotFound},
		{name: "deadline", err: context.DeadlineExceeded, wantErr: domain.ErrStoreTimeout},
		{name: "statement timeout", err: &pgconn.PgError{Code: queryCanceledCode}, wantErr: domain.ErrStoreTimeout},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, wantErr: domain.ErrUnknown},
		{name: "generic", err: errors.New("boom"), wantErr: domain.ErrUnknown},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			err := convertErr(t.err, "doing %s", "things")
			s.Require().ErrorIs(err, t.wantErr)
			s.Contains(err.Error(), "[repository/doing things]")
		})
	}

	s.NoError(convertErr(nil, "nothing"))
}

func (s *RepoHelpersTestSuite) TestContainsPattern() {
	s.Equal("%XYZ%", containsPattern("XYZ"))
	s.Equal(`%50\%\_off\\%`, containsPattern(`50%_off\`))
	s.Equal([]string{"%A%", "%B%"}, containsPatterns([]string{"A", "", "  ", " B "}))
	s.Empty(containsPatterns(nil))
}

func (s *RepoHelpersTestSuite) TestSafeConvertUintToInt32() {
	v, err := safeConvertUintToInt32(100)
	s.Require().NoError(err)
	s.Equal(int32(100), v)

	_, overflowErr := safeConvertUintToInt32(uint(1) << 40)
	s.Error(overflowErr)
}

func (s *RepoHelpersTestSuite) TestJitter() {
	for range 100 {
		v := jitter(100, 0.15, 0.15)
		s.GreaterOrEqual(v, 85.0)
		s.LessOrEqual(v, 115.0)
	}
}
