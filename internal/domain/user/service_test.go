package user

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]*User
	saves int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*User)}
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	existing, ok := r.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	clone := *existing
	return &clone, nil
}

func (r *fakeUserRepo) Save(ctx context.Context, user *User) error {
	clone := *user
	r.users[user.Email] = &clone
	r.saves++
	return nil
}

type fakeAvatarStore struct {
	files map[string][]byte
	err   error
}

func newFakeAvatarStore() *fakeAvatarStore {
	return &fakeAvatarStore{files: make(map[string][]byte)}
}

func (s *fakeAvatarStore) Save(ctx context.Context, filename string, content []byte) error {
	if s.err != nil {
		return s.err
	}
	s.files[filename] = content
	return nil
}

func strptr(value string) *string {
	return &value
}

func newTestService(repo *fakeUserRepo, store *fakeAvatarStore) *Service {
	return NewService(repo, store, "/uploads/profile-images")
}

func seedUser(repo *fakeUserRepo) *User {
	seeded := &User{
		ID:         "11111111-1111-1111-1111-111111111111",
		Email:      "bob@example.com",
		FirstName:  "Bob",
		LastName:   "Stone",
		Phone:      "555-1234",
		Department: "Sales",
	}
	repo.users[seeded.Email] = seeded
	return seeded
}

func TestUpdateProfileAppliesOnlyPresentFields(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo)
	svc := newTestService(repo, newFakeAvatarStore())

	result, err := svc.UpdateProfile(context.Background(), "bob@example.com", ProfileUpdate{
		Department: strptr("Engineering"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Department != "Engineering" {
		t.Fatalf("expected department Engineering, got %q", result.Department)
	}
	if result.Phone != "555-1234" {
		t.Fatalf("expected phone unchanged, got %q", result.Phone)
	}
	if result.FirstName != "Bob" || result.LastName != "Stone" {
		t.Fatalf("expected names unchanged, got %q %q", result.FirstName, result.LastName)
	}
	if repo.saves != 1 {
		t.Fatalf("expected one save, got %d", repo.saves)
	}
}

func TestUpdateProfileEachFieldIndependently(t *testing.T) {
	cases := []struct {
		name   string
		update ProfileUpdate
		check  func(*User) bool
	}{
		{"first_name", ProfileUpdate{FirstName: strptr("Alice")}, func(u *User) bool {
			return u.FirstName == "Alice" && u.LastName == "Stone" && u.Phone == "555-1234" && u.Department == "Sales" && u.Avatar == nil
		}},
		{"last_name", ProfileUpdate{LastName: strptr("Rivers")}, func(u *User) bool {
			return u.FirstName == "Bob" && u.LastName == "Rivers" && u.Phone == "555-1234" && u.Department == "Sales" && u.Avatar == nil
		}},
		{"phone", ProfileUpdate{Phone: strptr("555-9999")}, func(u *User) bool {
			return u.FirstName == "Bob" && u.LastName == "Stone" && u.Phone == "555-9999" && u.Department == "Sales" && u.Avatar == nil
		}},
		{"department", ProfileUpdate{Department: strptr("HR")}, func(u *User) bool {
			return u.FirstName == "Bob" && u.LastName == "Stone" && u.Phone == "555-1234" && u.Department == "HR" && u.Avatar == nil
		}},
		{"avatar", ProfileUpdate{Avatar: strptr("/uploads/profile-images/x.png")}, func(u *User) bool {
			return u.FirstName == "Bob" && u.Avatar != nil && *u.Avatar == "/uploads/profile-images/x.png"
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeUserRepo()
			seedUser(repo)
			svc := newTestService(repo, newFakeAvatarStore())

			result, err := svc.UpdateProfile(context.Background(), "bob@example.com", tc.update)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !tc.check(result) {
				t.Fatalf("unexpected merge result: %+v", result)
			}
		})
	}
}

func TestUpdateProfileEmptyStringOverwrites(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo)
	svc := newTestService(repo, newFakeAvatarStore())

	result, err := svc.UpdateProfile(context.Background(), "bob@example.com", ProfileUpdate{
		Phone: strptr(""),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Phone != "" {
		t.Fatalf("expected phone overwritten with empty string, got %q", result.Phone)
	}
}

func TestUpdateProfileUnknownEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, newFakeAvatarStore())

	_, err := svc.UpdateProfile(context.Background(), "nobody@example.com", ProfileUpdate{
		FirstName: strptr("Ghost"),
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if repo.saves != 0 {
		t.Fatalf("expected no persistence, got %d saves", repo.saves)
	}
}

func TestGetByEmailUnknown(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, newFakeAvatarStore())

	_, err := svc.GetByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUploadAvatarSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo)
	store := newFakeAvatarStore()
	svc := newTestService(repo, store)

	path, err := svc.UploadAvatar(context.Background(), "bob@example.com", AvatarUpload{
		Filename:    "pic.png",
		ContentType: "image/png",
		Content:     []byte{0x89, 0x50, 0x4e, 0x47},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(path, "/uploads/profile-images/") {
		t.Fatalf("expected public prefix, got %q", path)
	}
	if !strings.HasSuffix(path, ".png") {
		t.Fatalf("expected .png extension, got %q", path)
	}
	if len(store.files) != 1 {
		t.Fatalf("expected one stored file, got %d", len(store.files))
	}

	stored := repo.users["bob@example.com"]
	if stored.Avatar == nil || *stored.Avatar != path {
		t.Fatalf("expected avatar %q persisted, got %+v", path, stored.Avatar)
	}
}

func TestUploadAvatarJPEGSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo)
	svc := newTestService(repo, newFakeAvatarStore())

	_, err := svc.UploadAvatar(context.Background(), "bob@example.com", AvatarUpload{
		Filename:    "photo.jpg",
		ContentType: "image/jpeg",
		Content:     []byte{0xff, 0xd8},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestUploadAvatarUnknownEmail(t *testing.T) {
	repo := newFakeUserRepo()
	store := newFakeAvatarStore()
	svc := newTestService(repo, store)

	_, err := svc.UploadAvatar(context.Background(), "nobody@example.com", AvatarUpload{
		Filename:    "pic.png",
		ContentType: "image/png",
		Content:     []byte{1},
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(store.files) != 0 {
		t.Fatalf("expected no stored files, got %d", len(store.files))
	}
}

func TestUploadAvatarEmptyFile(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo)
	svc := newTestService(repo, newFakeAvatarStore())

	// empty content is rejected before the content type is even looked at
	_, err := svc.UploadAvatar(context.Background(), "bob@example.com", AvatarUpload{
		Filename:    "pic.png",
		ContentType: "image/png",
	})
	if !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}

func TestUploadAvatarRejectsNonImage(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo)
	svc := newTestService(repo, newFakeAvatarStore())

	for _, contentType := range []string{"text/plain", ""} {
		_, err := svc.UploadAvatar(context.Background(), "bob@example.com", AvatarUpload{
			Filename:    "pic.png",
			ContentType: contentType,
			Content:     []byte{1, 2, 3},
		})
		if !errors.Is(err, ErrNotAnImage) {
			t.Fatalf("content type %q: expected ErrNotAnImage, got %v", contentType, err)
		}
	}
}

func TestUploadAvatarNoExtension(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo)
	store := newFakeAvatarStore()
	svc := newTestService(repo, store)

	path, err := svc.UploadAvatar(context.Background(), "bob@example.com", AvatarUpload{
		Filename:    "avatar",
		ContentType: "image/png",
		Content:     []byte{1},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if strings.Contains(path[len("/uploads/profile-images/"):], ".") {
		t.Fatalf("expected no extension in generated name, got %q", path)
	}
}

func TestUploadAvatarTwiceKeepsLatest(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo)
	store := newFakeAvatarStore()
	svc := newTestService(repo, store)

	first, err := svc.UploadAvatar(context.Background(), "bob@example.com", AvatarUpload{
		Filename:    "one.png",
		ContentType: "image/png",
		Content:     []byte{1},
	})
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	second, err := svc.UploadAvatar(context.Background(), "bob@example.com", AvatarUpload{
		Filename:    "two.png",
		ContentType: "image/png",
		Content:     []byte{2},
	})
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}

	if first == second {
		t.Fatalf("expected distinct generated paths, got %q twice", first)
	}
	if len(store.files) != 2 {
		t.Fatalf("expected both files kept on storage, got %d", len(store.files))
	}
	stored := repo.users["bob@example.com"]
	if stored.Avatar == nil || *stored.Avatar != second {
		t.Fatalf("expected avatar %q, got %+v", second, stored.Avatar)
	}
}

func TestUploadAvatarStorageFailure(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo)
	store := newFakeAvatarStore()
	store.err = errors.New("disk full")
	svc := newTestService(repo, store)

	_, err := svc.UploadAvatar(context.Background(), "bob@example.com", AvatarUpload{
		Filename:    "pic.png",
		ContentType: "image/png",
		Content:     []byte{1},
	})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
	if repo.saves != 0 {
		t.Fatalf("expected no persistence after storage failure, got %d saves", repo.saves)
	}
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeUserRepo()
	seeded := seedUser(repo)
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	seeded.PasswordHash = string(hash)
	svc := newTestService(repo, newFakeAvatarStore())

	result, err := svc.Authenticate(context.Background(), "bob@example.com", "s3cret")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Email != "bob@example.com" {
		t.Fatalf("expected bob, got %q", result.Email)
	}

	if _, err := svc.Authenticate(context.Background(), "bob@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody@example.com", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
