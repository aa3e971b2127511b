package auth

import (
	"context"

	"github.com/rs/zerolog"

	domainSession "github.com/toyswap/toyswap/internal/domain/session"
	domainUser "github.com/toyswap/toyswap/internal/domain/user"
)

// Service handles registration and login against the exchange service.
type Service struct {
	remote  domainUser.Remote
	apiHost string
	logger  zerolog.Logger
}

// NewService creates an auth service whose sessions target apiHost.
func NewService(remote domainUser.Remote, apiHost string, logger zerolog.Logger) *Service {
	return &Service{
		remote:  remote,
		apiHost: apiHost,
		logger:  logger.With().Str("service", "auth").Logger(),
	}
}

// Register creates an account and returns a session for it.
func (s *Service) Register(ctx context.Context, reg domainUser.Registration) (domainSession.Session, error) {
	reg.Email = domainUser.NormalizeEmail(reg.Email)
	if err := reg.Validate(); err != nil {
		return domainSession.Session{}, err
	}
	userID, err := s.remote.Register(ctx, reg)
	if err != nil {
		return domainSession.Session{}, err
	}
	s.logger.Info().Str("user_id", userID).Msg("user registered")
	return s.session(userID)
}

// Login authenticates with email and password and returns a session.
func (s *Service) Login(ctx context.Context, email, password string) (domainSession.Session, error) {
	creds := domainUser.Credentials{Email: domainUser.NormalizeEmail(email), Password: password}
	if err := creds.Validate(); err != nil {
		return domainSession.Session{}, err
	}
	userID, err := s.remote.Login(ctx, creds)
	if err != nil {
		return domainSession.Session{}, err
	}
	s.logger.Info().Str("user_id", userID).Msg("user logged in")
	return s.session(userID)
}

func (s *Service) session(userID string) (domainSession.Session, error) {
	sess := domainSession.New(userID, s.apiHost)
	if err := sess.Validate(); err != nil {
		return domainSession.Session{}, err
	}
	return sess, nil
}
