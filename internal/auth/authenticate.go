package auth

import (
	"context"

	"sama/internal/models"
)

// UserSource is the slice of the user repository the credential module needs.
type UserSource interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Authenticate looks up a user by username and verifies the password.
// An unknown username and a wrong password are indistinguishable in the
// result: both return (nil, nil). Callers must present a single generic
// error so usernames cannot be enumerated.
func Authenticate(ctx context.Context, users UserSource, username, password string) (*models.User, error) {
	user, err := users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if !CheckPassword(password, user.Password) {
		return nil, nil
	}
	return user, nil
}
