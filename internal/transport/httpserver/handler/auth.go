package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  profileResponse `json:"user"`
}

// Login verifies credentials and issues a bearer token carrying the email
// claim the auth middleware resolves callers by.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFailure(w, "invalid json body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeFailure(w, "email and password are required")
		return
	}

	result, err := h.Users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.log.BusinessError("auth.login: rejected", err, "email", req.Email)
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	claims := jwt.MapClaims{
		"email": result.Email,
		"exp":   time.Now().Add(h.auth.TokenTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.auth.JWTSecret))
	if err != nil {
		h.log.InternalError("auth.login: sign token failed", err, "email", req.Email)
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token: signed,
		User:  toProfileResponse(result),
	})
}
