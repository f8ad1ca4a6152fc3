package user

import "context"

// PasswordHasher turns plaintext passwords into the digest stored in User.Password.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// PasswordGenerator produces the plaintext handed out by ForgotPassword.
type PasswordGenerator interface {
	Generate() (string, error)
}

// Notifier delivers a freshly issued password to its owner.
type Notifier interface {
	SendPasswordReset(ctx context.Context, to, newPassword string) error
}

// TokenGenerator abstracts token creation (e.g., JWT).
type TokenGenerator interface {
	Generate(ctx context.Context, u User) (string, error)
}
