// internal/app/features/auth/handler.go
package auth

import (
	"errors"
	"net/http"

	userstore "github.com/dalemusser/educonnect/internal/app/store/users"
	sysauth "github.com/dalemusser/educonnect/internal/app/system/auth"
	"github.com/dalemusser/educonnect/internal/app/system/authz"
	"github.com/dalemusser/educonnect/internal/app/system/httpjson"
	"github.com/dalemusser/educonnect/internal/app/system/normalize"
	"github.com/dalemusser/educonnect/internal/app/system/password"
	"github.com/dalemusser/educonnect/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the auth feature.
type Handler struct {
	Users  *userstore.Store
	Tokens *sysauth.TokenManager
	Log    *zap.Logger
}

// NewHandler constructs an auth Handler.
func NewHandler(db *mongo.Database, tokens *sysauth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		Tokens: tokens,
		Log:    logger,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// HandleSignup handles POST /api/auth/signup.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		httpjson.Error(w, http.StatusBadRequest, "name, email, password and role are required")
		return
	}
	if _, ok := authz.ParseRole(normalize.Role(req.Role)); !ok {
		httpjson.Error(w, http.StatusBadRequest, `role must be "teacher" or "student"`)
		return
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		h.Log.Error("signup: hashing password", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Server error. Please try again later.")
		return
	}

	_, err = h.Users.Create(r.Context(), models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	})
	switch {
	case errors.Is(err, userstore.ErrDuplicateEmail):
		httpjson.Error(w, http.StatusBadRequest, "Email already registered. Please login instead.")
		return
	case err != nil:
		h.Log.Error("signup: creating user", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Server error. Please try again later.")
		return
	}

	httpjson.Message(w, http.StatusCreated, "User registered successfully. You can now log in.")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

type loginUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// HandleLogin handles POST /api/auth/login.
// Unknown emails and wrong passwords both answer 400, matching the
// client's expectations.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), req.Email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusBadRequest, "User not found")
		return
	}
	if err != nil {
		h.Log.Error("login: looking up user", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Server error. Please try again later.")
		return
	}

	if !password.Verify(user.PasswordHash, req.Password) {
		httpjson.Error(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := h.Tokens.Generate(sysauth.Principal{
		ID:   user.ID.Hex(),
		Name: user.Name,
		Role: user.Role,
	})
	if err != nil {
		h.Log.Error("login: minting token", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Server error. Please try again later.")
		return
	}

	httpjson.Write(w, http.StatusOK, loginResponse{
		Token: token,
		User: loginUser{
			ID:    user.ID.Hex(),
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	})
}
