package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo         Repository
	avatars      AvatarStore
	publicPrefix string
}

func NewService(repo Repository, avatars AvatarStore, publicPrefix string) *Service {
	return &Service{
		repo:         repo,
		avatars:      avatars,
		publicPrefix: strings.TrimSuffix(publicPrefix, "/"),
	}
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// UpdateProfile applies a sparse update to the user identified by email and
// persists the result. Fields left nil in the update are untouched; there is
// no way to clear a field through this operation.
func (s *Service) UpdateProfile(ctx context.Context, email string, update ProfileUpdate) (*User, error) {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	applyUpdate(existing, update)

	if err := s.repo.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// UploadAvatar validates the uploaded file, stores it under a random name
// and records the public path on the user's avatar field. Previous avatar
// files are left in place.
func (s *Service) UploadAvatar(ctx context.Context, email string, upload AvatarUpload) (string, error) {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	if len(upload.Content) == 0 {
		return "", ErrEmptyFile
	}
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return "", ErrNotAnImage
	}

	extension := ""
	if idx := strings.LastIndex(upload.Filename, "."); idx >= 0 {
		extension = upload.Filename[idx:]
	}
	filename := uuid.NewString() + extension

	if err := s.avatars.Save(ctx, filename, upload.Content); err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	avatarPath := s.publicPrefix + "/" + filename
	applyUpdate(existing, ProfileUpdate{Avatar: &avatarPath})

	if err := s.repo.Save(ctx, existing); err != nil {
		return "", err
	}
	return avatarPath, nil
}

// Authenticate verifies the password against the stored bcrypt hash.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return existing, nil
}

func applyUpdate(existing *User, update ProfileUpdate) {
	if update.FirstName != nil {
		existing.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		existing.LastName = *update.LastName
	}
	if update.Phone != nil {
		existing.Phone = *update.Phone
	}
	if update.Department != nil {
		existing.Department = *update.Department
	}
	if update.Avatar != nil {
		existing.Avatar = update.Avatar
	}
}
