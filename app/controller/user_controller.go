package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"fern-and-paper/app/middleware"
	"fern-and-paper/logger"
	"fern-and-paper/models"
	"fern-and-paper/repository"
	"fern-and-paper/service"
)

// bcryptCost is the hashing work factor for stored passwords.
const bcryptCost = 12

// UserController handles HTTP requests for accounts and authentication
type UserController struct {
	repository repository.UserRepositoryInterface
	tokens     *service.TokenService
}

// NewUserController creates a new UserController
func NewUserController(repo repository.UserRepositoryInterface, tokens *service.TokenService) *UserController {
	return &UserController{repository: repo, tokens: tokens}
}

func (c *UserController) authResponse(user *models.User) (*models.AuthResponse, error) {
	token, err := c.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		Token:   token,
	}, nil
}

// Login handles POST /api/users/login
func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	logger.L.Infof("📥 Login: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	user, err := c.repository.GetByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		writeError(w, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		logger.L.Infof("❌ Login: bad password for %s", req.Email)
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	response, err := c.authResponse(user)
	if err != nil {
		writeError(w, err)
		return
	}

	logger.L.Infof("✅ Login: user=%s", user.ID)
	writeJSON(w, http.StatusOK, response)
}

// Register handles POST /api/users
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	logger.L.Infof("📥 Register: Received %s request to %s", r.Method, r.URL.Path)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "name, email and password are required", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := c.repository.Create(r.Context(), req.Name, req.Email, string(hash))
	if err != nil {
		writeError(w, err)
		return
	}

	response, err := c.authResponse(user)
	if err != nil {
		writeError(w, err)
		return
	}

	logger.L.Infof("✅ Register: user=%s", user.ID)
	writeJSON(w, http.StatusCreated, response)
}

// GetProfile handles GET /api/users/profile
func (c *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/users/profile
func (c *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	logger.L.Infof("📥 UpdateProfile: user=%s", user.ID)

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	passwordHash := ""
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			writeError(w, err)
			return
		}
		passwordHash = string(hash)
	}

	updated, err := c.repository.UpdateProfile(r.Context(), user.ID,
		strings.TrimSpace(req.Name), strings.ToLower(strings.TrimSpace(req.Email)), passwordHash)
	if err != nil {
		writeError(w, err)
		return
	}

	response, err := c.authResponse(updated)
	if err != nil {
		writeError(w, err)
		return
	}

	logger.L.Infof("✅ UpdateProfile: user=%s", user.ID)
	writeJSON(w, http.StatusOK, response)
}

// List handles GET /api/users (admin)
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.repository.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Get handles GET /api/users/{id} (admin)
func (c *UserController) Get(w http.ResponseWriter, r *http.Request, id string) {
	user, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Update handles PUT /api/users/{id} (admin)
func (c *UserController) Update(w http.ResponseWriter, r *http.Request, id string) {
	logger.L.Infof("📥 UpdateUser: user=%s", id)

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	user, err := c.repository.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /api/users/{id} (admin)
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request, id string) {
	logger.L.Infof("📥 DeleteUser: user=%s", id)

	admin := middleware.UserFromContext(r.Context())
	if admin.ID == id {
		http.Error(w, "Cannot delete your own account", http.StatusBadRequest)
		return
	}

	if err := c.repository.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User removed"})
}
