package user

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
)

// UseCase describes the account operations exposed to the API layer.
type UseCase interface {
	Authenticate(ctx context.Context, email, password string) (User, error)
	Register(ctx context.Context, u User, password string) (User, error)
	GetAll(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, param User) error
	ForgotPassword(ctx context.Context, email string) (User, error)
	Delete(ctx context.Context, id int64) error
}

// DefaultMailTimeout bounds a single password-reset delivery attempt.
const DefaultMailTimeout = 10 * time.Second

type service struct {
	repo        Repository
	hasher      PasswordHasher
	generator   PasswordGenerator
	notifier    Notifier
	policy      Policy
	logger      *log.Logger
	mailTimeout time.Duration
	now         func() time.Time
}

// Option customizes the service returned by NewService.
type Option func(*service)

// WithLogger replaces log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMailTimeout overrides DefaultMailTimeout.
func WithMailTimeout(d time.Duration) Option {
	return func(s *service) {
		if d > 0 {
			s.mailTimeout = d
		}
	}
}

// WithClock sets the time source used for create_dt/update_dt.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService returns default implementation of UseCase.
func NewService(repo Repository, hasher PasswordHasher, generator PasswordGenerator, notifier Notifier, policy Policy, opts ...Option) UseCase {
	s := &service{
		repo:        repo,
		hasher:      hasher,
		generator:   generator,
		notifier:    notifier,
		policy:      policy,
		logger:      log.Default(),
		mailTimeout: DefaultMailTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authenticate never tells an unknown email apart from a wrong password.
func (s *service) Authenticate(ctx context.Context, email, password string) (User, error) {
	if email == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if !s.hasher.Verify(password, u.Password) {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *service) Register(ctx context.Context, u User, password string) (User, error) {
	if strings.TrimSpace(password) == "" {
		return User{}, ErrValidation("Password is required")
	}
	required := []struct{ name, value string }{
		{"email", u.Email},
		{"fullname", u.FullName},
		{"role", u.Role},
		{"organization", u.Organization},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return User{}, ErrValidation(f.name + " is required")
		}
	}

	// Best-effort check; the unique index catches concurrent registrations.
	if _, err := s.repo.GetByEmail(ctx, u.Email); err == nil {
		return User{}, emailTaken(u.Email)
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	if s.policy.IsDisallowed(u.Email) {
		return User{}, ErrValidation("You should use working email.")
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return User{}, err
	}
	ts := s.timestamp()
	u.ID = 0
	u.Password = digest
	u.Status = StatusActive
	u.CreateDT = ts
	u.UpdateDT = ts

	created, err := s.repo.Create(ctx, u)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return User{}, emailTaken(u.Email)
		}
		return User{}, err
	}
	return created, nil
}

func (s *service) GetAll(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id int64) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// Update locates the row by param.Email, not by ID, and only ever changes the
// email and password columns. A blank param.Password keeps the stored digest.
func (s *service) Update(ctx context.Context, param User) error {
	cur, err := s.repo.GetByEmail(ctx, param.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrValidation("User not found")
		}
		return err
	}

	// cur was found by param.Email, so the emails are always equal here and
	// this branch never runs; it only matters if the lookup key changes.
	if strings.TrimSpace(param.Email) != "" && param.Email != cur.Email {
		if _, err := s.repo.GetByEmail(ctx, param.Email); err == nil {
			return ErrValidation("Email " + param.Email + " is already taken")
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}
		cur.Email = param.Email
	}

	if strings.TrimSpace(param.Password) != "" {
		digest, err := s.hasher.Hash(param.Password)
		if err != nil {
			return err
		}
		cur.Password = digest
	}
	cur.UpdateDT = s.timestamp()

	if err := s.repo.Update(ctx, cur); err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEmail):
			return ErrValidation("Email " + cur.Email + " is already taken")
		case errors.Is(err, ErrNotFound):
			// Deleted between the lookup and the write.
			return ErrValidation("User not found")
		}
		return err
	}
	return nil
}

// ForgotPassword stores a new random password and then mails it. The write is
// committed before delivery is attempted; delivery failures are logged only.
func (s *service) ForgotPassword(ctx context.Context, email string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, unknownEmail(email)
		}
		return User{}, err
	}

	plain, err := s.generator.Generate()
	if err != nil {
		return User{}, err
	}
	digest, err := s.hasher.Hash(plain)
	if err != nil {
		return User{}, err
	}
	u.Password = digest
	u.UpdateDT = s.timestamp()
	if err := s.repo.Update(ctx, u); err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, unknownEmail(email)
		}
		return User{}, err
	}

	s.sendPassword(ctx, u, plain)
	return u, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) sendPassword(ctx context.Context, u User, plain string) {
	// The password is already changed; a caller hanging up must not abort delivery.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.mailTimeout)
	defer cancel()
	if err := s.notifier.SendPasswordReset(ctx, u.Email, plain); err != nil {
		s.logger.Printf("forgot password: deliver new password for user %d: %v", u.ID, err)
		return
	}
	s.logger.Printf("forgot password: new password queued for user %d", u.ID)
}

func (s *service) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

func unknownEmail(email string) error {
	return ErrUnknownEmail("Email \"" + email + "\" doesn't exist.")
}

func emailTaken(email string) error {
	return ErrValidation("Username \"" + email + "\" is already taken")
}
