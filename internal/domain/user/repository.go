package user

import "context"

type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, user *User) error
}

// AvatarStore persists uploaded avatar bytes under a generated filename.
// Implementations must tolerate repeated calls for the same directory.
type AvatarStore interface {
	Save(ctx context.Context, filename string, content []byte) error
}
