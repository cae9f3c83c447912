package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pmarket/parfume-desk/internal/core/domain"
	"github.com/pmarket/parfume-desk/internal/port"
)

// AuthService manages user accounts and authenticates sessions. Unknown user
// and wrong password are deliberately indistinguishable to the caller.
type AuthService struct {
	repo     port.UserRepository
	verifier port.CredentialVerifier
	log      zerolog.Logger
}

func NewAuthService(repo port.UserRepository, verifier port.CredentialVerifier, log zerolog.Logger) *AuthService {
	return &AuthService{
		repo:     repo,
		verifier: verifier,
		log:      log.With().Str("component", "auth").Logger(),
	}
}

// Login verifies the credentials and returns an ephemeral session. The
// plaintext password buffer is zeroed before returning, on every path.
func (s *AuthService) Login(ctx context.Context, username string, password []byte) (domain.UserSession, error) {
	defer zero(password)

	if username == "" || len(password) == 0 {
		return domain.UserSession{}, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	user, err := s.repo.GetUser(ctx, username)
	if err != nil {
		return domain.UserSession{}, err
	}
	if user == nil {
		s.log.Debug().Str("username", username).Msg("login attempt for unknown user")
		return domain.UserSession{}, domain.ErrBadCredentials
	}

	ok, err := s.verifier.Verify(password, user.PasswordHash)
	if err != nil {
		return domain.UserSession{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.log.Debug().Str("username", username).Msg("password mismatch")
		return domain.UserSession{}, domain.ErrBadCredentials
	}

	if user.Role == domain.RoleBroker && user.BrokerSurname == "" {
		return domain.UserSession{}, fmt.Errorf("broker account %q has no linked broker", username)
	}

	s.log.Info().Str("username", username).Str("role", string(user.Role)).Msg("login successful")
	return domain.UserSession{
		Username:      user.Username,
		Role:          user.Role,
		BrokerSurname: user.BrokerSurname,
	}, nil
}

// Register creates an account with a freshly derived password hash. The
// plaintext buffer is zeroed before returning, success or not.
func (s *AuthService) Register(ctx context.Context, username string, password []byte, role domain.Role, brokerSurname string) error {
	defer zero(password)

	if username == "" || len(password) == 0 {
		return fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}
	if role != domain.RoleAdmin && role != domain.RoleBroker {
		return fmt.Errorf("%w: role must be admin or broker", domain.ErrInvalidInput)
	}
	if role == domain.RoleBroker && brokerSurname == "" {
		return fmt.Errorf("%w: broker accounts need a linked broker surname", domain.ErrInvalidInput)
	}

	hash, err := s.verifier.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.repo.AddUser(ctx, domain.User{
		Username:      username,
		PasswordHash:  hash,
		Role:          role,
		BrokerSurname: brokerSurname,
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("username", username).Str("role", string(role)).Msg("user registered")
	return nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
