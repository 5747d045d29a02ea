package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	userdomain "profile-app-go/internal/domain/user"
	"profile-app-go/internal/transport/httpserver/middleware"
)

// Message codes carried in the success envelope.
const (
	MessageUserFound      = "USER_FOUND"
	MessageUserUpdated    = "USER_UPDATED"
	MessageAvatarUploaded = "AVATAR_UPLOADED"
)

const maxAvatarUploadBytes = 10 << 20

type profileUpdateRequest struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	Avatar     *string `json:"avatar"`
}

type profileResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Phone      string  `json:"phone"`
	Department string  `json:"department"`
	Avatar     *string `json:"avatar"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	result, err := h.Users.GetByEmail(r.Context(), email)
	if err != nil {
		h.failProfileOp(w, "users.get_profile", email, err)
		return
	}

	writeSuccess(w, MessageUserFound, toProfileResponse(result))
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	var req profileUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFailure(w, "invalid json body")
		return
	}

	result, err := h.Users.UpdateProfile(r.Context(), email, userdomain.ProfileUpdate{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Department: req.Department,
		Avatar:     req.Avatar,
	})
	if err != nil {
		h.failProfileOp(w, "users.update_profile", email, err)
		return
	}

	writeSuccess(w, MessageUserUpdated, toProfileResponse(result))
}

func (h *Handlers) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeFailure(w, "file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.log.InternalError("users.upload_avatar: read file failed", err, "email", email)
		writeFailure(w, err.Error())
		return
	}

	avatarPath, err := h.Users.UploadAvatar(r.Context(), email, userdomain.AvatarUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		h.failProfileOp(w, "users.upload_avatar", email, err)
		return
	}

	writeSuccess(w, MessageAvatarUploaded, avatarPath)
}

// failProfileOp logs the failure and writes the uniform bad-request envelope,
// preserving the error message text.
func (h *Handlers) failProfileOp(w http.ResponseWriter, op, email string, err error) {
	switch {
	case errors.Is(err, userdomain.ErrUserNotFound),
		errors.Is(err, userdomain.ErrEmptyFile),
		errors.Is(err, userdomain.ErrNotAnImage):
		h.log.BusinessError(op+": rejected", err, "email", email)
	default:
		h.log.InternalError(op+": failed", err, "email", email)
	}
	writeFailure(w, err.Error())
}

func toProfileResponse(record *userdomain.User) profileResponse {
	return profileResponse{
		ID:         record.ID,
		Email:      record.Email,
		FirstName:  record.FirstName,
		LastName:   record.LastName,
		Phone:      record.Phone,
		Department: record.Department,
		Avatar:     record.Avatar,
		CreatedAt:  record.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  record.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
