package repository

import (
	"context"
	"errors"
	"time"

	"KobbyWearsAPI/internal/model"
)

type UserRepository struct {
	DB DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateUser inserts a new user and returns the created id
func (r *UserRepository) CreateUser(ctx context.Context, username, passwordhash string) (int64, error) {
	var id int64
	query := `INSERT INTO users (username, password, created_at) VALUES ($1, $2, $3) RETURNING id`
	if err := r.DB.QueryRow(ctx, query, username, passwordhash, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	query := `SELECT id, username, password, created_at FROM users WHERE username=$1`
	if err := r.DB.QueryRow(ctx, query, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, errors.New("user not found")
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	query := `SELECT id, username, created_at FROM users WHERE id=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&u.ID, &u.Username, &u.CreatedAt); err != nil {
		return nil, errors.New("user not found")
	}
	return &u, nil
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username=$1)`
	if err := r.DB.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateUsername renames a user. Username is the only mutable user field.
func (r *UserRepository) UpdateUsername(ctx context.Context, id int64, username string) error {
	query := `UPDATE users SET username=$1 WHERE id=$2`
	tag, err := r.DB.Exec(ctx, query, username, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("user not found")
	}
	return nil
}
