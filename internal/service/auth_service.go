package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"streetbite/internal/events"
	"streetbite/internal/model"
	"streetbite/internal/repository"
	"streetbite/internal/utils"
)

const (
	minPasswordLength = 6
	// bcrypt ignores input past 72 bytes
	maxPasswordBytes = 72
)

var (
	ErrDuplicateEmail     = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError reports malformed registration input. It is always
// caller-fixable.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(reason string) error {
	return &ValidationError{Reason: reason}
}

// TokenIssuer signs access tokens for authenticated users
type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}

// AuthService registers accounts and verifies credentials
type AuthService interface {
	Register(ctx context.Context, input model.RegisterInput) (*model.User, error)
	VerifyCredentials(ctx context.Context, email, password string) (*model.AuthResult, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

type authService struct {
	userRepo          repository.UserRepository
	hasher            *utils.PasswordHasher
	tokens            TokenIssuer
	bus               *events.Bus[events.AuthEvent]
	initialAdminEmail string
	logger            *slog.Logger
	now               func() time.Time

	dummyMu   sync.Mutex
	dummyHash string
	newDummy  func() (string, error)
}

// AuthOption customizes an AuthService
type AuthOption func(*authService)

// WithInitialAdminEmail promotes the account registered with email to admin
func WithInitialAdminEmail(email string) AuthOption {
	return func(s *authService) {
		s.initialAdminEmail = normalizeEmail(email)
	}
}

// WithEvents publishes registration and login outcomes to bus
func WithEvents(bus *events.Bus[events.AuthEvent]) AuthOption {
	return func(s *authService) {
		s.bus = bus
	}
}

// WithLogger sets the service logger
func WithLogger(logger *slog.Logger) AuthOption {
	return func(s *authService) {
		s.logger = logger
	}
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, hasher *utils.PasswordHasher, tokens TokenIssuer, opts ...AuthOption) AuthService {
	s := &authService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   slog.Default(),
		now:      time.Now,
	}
	s.newDummy = func() (string, error) {
		return s.hasher.Hash("streetbite-unknown-user")
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegistration(input model.RegisterInput) (model.RegisterInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)

	if input.Name == "" || input.Email == "" || input.Password == "" {
		return input, invalid("name, email and password are required")
	}
	if !emailRe.MatchString(input.Email) {
		return input, invalid("email address is not valid")
	}
	if utf8.RuneCountInString(input.Password) < minPasswordLength {
		return input, invalid(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(input.Password) > maxPasswordBytes {
		return input, invalid(fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}

	switch input.Role {
	case "":
		input.Role = model.RoleCustomer
	case model.RoleCustomer, model.RoleOwner:
	default:
		return input, invalid("role must be customer or owner")
	}
	return input, nil
}

// Register validates input, rejects duplicate emails and stores a new user
func (s *authService) Register(ctx context.Context, input model.RegisterInput) (*model.User, error) {
	input, err := validateRegistration(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if s.initialAdminEmail != "" && input.Email == s.initialAdminEmail {
		role = model.RoleAdmin
		s.logger.InfoContext(ctx, "registering initial admin account")
	}

	user := &model.UserWithHash{
		User: model.User{
			Name:  input.Name,
			Email: input.Email,
			Role:  role,
			Phone: input.Phone,
			City:  input.City,
		},
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	s.publish(ctx, events.UserRegistered, &user.User)
	registered := user.User
	return &registered, nil
}

// VerifyCredentials checks email and password. Unknown email and wrong
// password produce the same result.
func (s *authService) VerifyCredentials(ctx context.Context, email, password string) (*model.AuthResult, error) {
	user, err := s.userRepo.FindByEmailWithHash(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	if user == nil {
		s.checkUnknown(password)
		s.publish(ctx, events.LoginFailed, nil)
		return &model.AuthResult{Valid: false}, nil
	}
	if !s.hasher.Check(password, user.PasswordHash) {
		s.publish(ctx, events.LoginFailed, nil)
		return &model.AuthResult{Valid: false}, nil
	}

	s.publish(ctx, events.LoginSucceeded, &user.User)
	verified := user.User
	return &model.AuthResult{Valid: true, User: &verified}, nil
}

// Login verifies credentials and issues an access token
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	result, err := s.VerifyCredentials(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	if !result.Valid {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(result.User.ID, result.User.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return result.User, token, nil
}

// checkUnknown spends one bcrypt operation at the configured cost so an
// unknown email takes as long as a wrong password.
func (s *authService) checkUnknown(password string) {
	if hash := s.fallbackHash(); hash != "" {
		s.hasher.Check(password, hash)
		return
	}
	_, _ = s.hasher.Hash(password)
}

// fallbackHash is the hash checked against when the email is unknown. A
// failed attempt is retried on the next call.
func (s *authService) fallbackHash() string {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()

	if s.dummyHash == "" {
		hash, err := s.newDummy()
		if err != nil {
			s.logger.Error("failed to prepare fallback hash", slog.Any("error", err))
			return ""
		}
		s.dummyHash = hash
	}
	return s.dummyHash
}

func (s *authService) publish(ctx context.Context, kind events.AuthKind, user *model.User) {
	if s.bus == nil {
		return
	}
	event := events.AuthEvent{Kind: kind, At: s.now()}
	if user != nil {
		event.UserID = user.ID
		event.Role = user.Role
	}
	s.bus.Publish(ctx, event)
}
