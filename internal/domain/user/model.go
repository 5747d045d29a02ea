package user

import "time"

type User struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	FirstName    string    `gorm:"column:first_name"`
	LastName     string    `gorm:"column:last_name"`
	Phone        string
	Department   string
	Avatar       *string   `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// ProfileUpdate is a sparse update: a nil field means "leave unchanged",
// a non-nil field (including a pointer to the empty string) overwrites.
type ProfileUpdate struct {
	FirstName  *string
	LastName   *string
	Phone      *string
	Department *string
	Avatar     *string
}

// AvatarUpload carries the uploaded file as received at the boundary:
// raw bytes, the declared content type and the original filename.
type AvatarUpload struct {
	Filename    string
	ContentType string
	Content     []byte
}
