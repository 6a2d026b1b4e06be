package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/pkg/util"
)

type AuthServiceSuite struct {
	suite.Suite

	ctx     context.Context
	mr      *miniredis.Miniredis
	users   *repository.InMemoryUserRepository
	revoker *auth.TokenRevoker
	service *AuthService
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.ctx = context.Background()

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.revoker = auth.NewTokenRevoker(client)
	s.users = repository.NewInMemoryUserRepository()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 15,
			BcryptCost:            4,
		},
	}
	s.service = NewAuthService(cfg, AuthDependencies{
		UserRepo: s.users,
		Revoker:  s.revoker,
	})
}

func (s *AuthServiceSuite) TearDownTest() {
	s.mr.Close()
}

func (s *AuthServiceSuite) TestRegisterAndLogin() {
	user, err := s.service.Register(s.ctx, "alice", "s3cret", domain.RoleEmployee)
	s.Require().NoError(err)
	s.Equal(domain.RoleEmployee, user.Role)
	s.NotEmpty(user.ID)
	s.NotEqual("s3cret", user.PasswordHash)

	logged, token, exp, err := s.service.Login(s.ctx, "alice", "s3cret")
	s.Require().NoError(err)
	s.Equal(user.ID, logged.ID)
	s.NotEmpty(token)
	s.True(exp.After(time.Now()))

	claims, err := s.service.TokenManager().ParseToken(token)
	s.Require().NoError(err)
	s.Equal(user.ID, claims.UserID)
	s.Equal(domain.RoleEmployee, claims.Role)
	s.NotEmpty(claims.ID)
}

func (s *AuthServiceSuite) TestRegisterDuplicateName() {
	_, err := s.service.Register(s.ctx, "alice", "pw", domain.RoleEmployee)
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, "alice", "pw2", domain.RoleITSupport)
	s.True(util.HasCode(err, util.CodeConflict))
}

func (s *AuthServiceSuite) TestRegisterInvalidRole() {
	_, err := s.service.Register(s.ctx, "mallory", "pw", domain.Role("ADMIN"))
	s.True(util.HasCode(err, util.CodeInvalidArgument))
}

func (s *AuthServiceSuite) TestRegisterRequiresCredentials() {
	_, err := s.service.Register(s.ctx, "", "pw", domain.RoleEmployee)
	s.True(util.HasCode(err, util.CodeInvalidArgument))

	_, err = s.service.Register(s.ctx, "alice", "", domain.RoleEmployee)
	s.True(util.HasCode(err, util.CodeInvalidArgument))
}

func (s *AuthServiceSuite) TestLoginWrongPassword() {
	_, err := s.service.Register(s.ctx, "alice", "right", domain.RoleEmployee)
	s.Require().NoError(err)

	_, _, _, err = s.service.Login(s.ctx, "alice", "wrong")
	s.True(util.HasCode(err, util.CodeAuthenticationFailure))
}

func (s *AuthServiceSuite) TestLoginUnknownUser() {
	_, _, _, err := s.service.Login(s.ctx, "nobody", "pw")
	s.True(util.HasCode(err, util.CodeAuthenticationFailure))
}

func (s *AuthServiceSuite) TestLogoutRevokesToken() {
	_, err := s.service.Register(s.ctx, "alice", "pw", domain.RoleEmployee)
	s.Require().NoError(err)
	_, token, exp, err := s.service.Login(s.ctx, "alice", "pw")
	s.Require().NoError(err)

	claims, err := s.service.TokenManager().ParseToken(token)
	s.Require().NoError(err)

	revoked, err := s.revoker.IsRevoked(s.ctx, claims.ID)
	s.Require().NoError(err)
	s.False(revoked)

	s.Require().NoError(s.service.Logout(s.ctx, claims.ID, exp))

	revoked, err = s.revoker.IsRevoked(s.ctx, claims.ID)
	s.Require().NoError(err)
	s.True(revoked)
}
