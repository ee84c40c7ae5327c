package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fern-and-paper/db"
	"fern-and-paper/logger"
	"fern-and-paper/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new UserRepository
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Ensure UserRepository implements UserRepositoryInterface
var _ UserRepositoryInterface = (*UserRepository)(nil)

const userColumns = "id, name, email, password_hash, is_admin, created_at"

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create registers a new account. Emails are unique.
func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	logger.L.Infof("📥 Create user: email=%s", email)

	var exists bool
	err := db.DB.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, models.NewValidationError("user with email %s already exists", email)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	_, err = db.DB.ExecContext(ctx,
		"INSERT INTO users (id, name, email, password_hash, is_admin, created_at) VALUES ($1, $2, $3, $4, $5, $6)",
		user.ID, user.Name, user.Email, user.PasswordHash, user.IsAdmin, user.CreatedAt)
	if err != nil {
		logger.L.Errorf("❌ Error creating user: %v", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.L.Infof("✓ User %s created", user.ID)
	return user, nil
}

// GetByEmail fetches an account by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = $1", userColumns)
	user, err := scanUser(db.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetByID fetches an account by id.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)
	user, err := scanUser(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a self-service edit. Empty arguments keep the
// current value; an empty passwordHash keeps the current password.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, name, email, passwordHash string) (*models.User, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if email != "" && email != user.Email {
		var exists bool
		err := db.DB.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id <> $2)", email, id).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return nil, models.NewValidationError("user with email %s already exists", email)
		}
		user.Email = email
	}
	if passwordHash != "" {
		user.PasswordHash = passwordHash
	}

	_, err = db.DB.ExecContext(ctx,
		"UPDATE users SET name = $2, email = $3, password_hash = $4 WHERE id = $1",
		id, user.Name, user.Email, user.PasswordHash)
	if err != nil {
		logger.L.Errorf("❌ Error updating profile %s: %v", id, err)
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	logger.L.Infof("✓ Profile %s updated", id)
	return user, nil
}

// Update applies an admin edit of another account.
func (r *UserRepository) Update(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}

	_, err = db.DB.ExecContext(ctx,
		"UPDATE users SET name = $2, email = $3, is_admin = $4 WHERE id = $1",
		id, user.Name, user.Email, user.IsAdmin)
	if err != nil {
		logger.L.Errorf("❌ Error updating user %s: %v", id, err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	logger.L.Infof("✓ User %s updated", id)
	return user, nil
}

// List returns every account for the admin back office.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users ORDER BY created_at DESC", userColumns)
	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Delete removes an account.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result, err := db.DB.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		logger.L.Errorf("❌ Error deleting user %s: %v", id, err)
		return fmt.Errorf("failed to delete user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	logger.L.Infof("✓ User %s deleted", id)
	return nil
}
