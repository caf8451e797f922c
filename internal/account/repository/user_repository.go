package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"event_management_service/internal/account/domain"
)

// ErrUserNotFound no user matches the given criteria
var ErrUserNotFound = errors.New("no user found with given criteria")

// UserRepository definition get user info
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	UpdateProfile(ctx context.Context, user *domain.User) error
	UpdateUserStatus(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	UpdateProfileImage(ctx context.Context, userID int64, objectKey string) error
	DeleteUser(ctx context.Context, userID int64) error
	FindByUser(ctx context.Context, userQuery *domain.UserQuery) (*domain.User, error)
	Exists(ctx context.Context, userID int64) (bool, error)
	ListEventManagers(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository create a UserRepository
func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) error {
	row := r.db.QueryRow(ctx,
		`INSERT INTO users(email, username, first_name, last_name, contact_number, profile_image, password, is_event_manager, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		user.Email, user.Username, user.FirstName, user.LastName, user.ContactNumber,
		user.ProfileImage, user.Password, user.IsEventManager, user.Status)
	return row.Scan(&user.ID)
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	// email and username identify the account, they never change here
	_, err := r.db.Exec(ctx,
		`UPDATE users SET first_name = $1, last_name = $2, contact_number = $3
		 WHERE id = $4`,
		user.FirstName, user.LastName, user.ContactNumber, user.ID)
	return err
}

func (r *userRepository) UpdateUserStatus(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, "UPDATE users SET status = $1 WHERE id = $2", user.Status, user.ID)
	return err
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	_, err := r.db.Exec(ctx, "UPDATE users SET password = $1 WHERE id = $2", passwordHash, userID)
	return err
}

func (r *userRepository) UpdateProfileImage(ctx context.Context, userID int64, objectKey string) error {
	_, err := r.db.Exec(ctx, "UPDATE users SET profile_image = $1 WHERE id = $2", objectKey, userID)
	return err
}

func (r *userRepository) DeleteUser(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM users WHERE id = $1", userID)
	return err
}

func (r *userRepository) FindByUser(ctx context.Context, userQuery *domain.UserQuery) (*domain.User, error) {
	queryStr := `SELECT id, email, username, first_name, last_name, contact_number, profile_image, password, is_event_manager, status
	             FROM users WHERE 1=1`
	params := []interface{}{}
	paramCount := 1

	if userQuery.Email != nil {
		queryStr += fmt.Sprintf(" AND email = $%d", paramCount)
		params = append(params, *userQuery.Email)
		paramCount++
	}
	if userQuery.Username != nil {
		queryStr += fmt.Sprintf(" AND username = $%d", paramCount)
		params = append(params, *userQuery.Username)
		paramCount++
	}
	if userQuery.ContactNumber != nil {
		queryStr += fmt.Sprintf(" AND contact_number = $%d", paramCount)
		params = append(params, *userQuery.ContactNumber)
		paramCount++
	}
	if userQuery.ID != nil {
		queryStr += fmt.Sprintf(" AND id = $%d", paramCount)
		params = append(params, *userQuery.ID)
		paramCount++
	}

	row := r.db.QueryRow(ctx, queryStr, params...)
	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.Username, &user.FirstName, &user.LastName,
		&user.ContactNumber, &user.ProfileImage, &user.Password, &user.IsEventManager, &user.Status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)", userID).Scan(&exists)
	return exists, err
}

func (r *userRepository) ListEventManagers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, email, username, first_name, last_name, contact_number, profile_image, password, is_event_manager, status
		 FROM users WHERE is_event_manager = true ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var managers []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Email, &user.Username, &user.FirstName, &user.LastName,
			&user.ContactNumber, &user.ProfileImage, &user.Password, &user.IsEventManager, &user.Status); err != nil {
			return nil, err
		}
		managers = append(managers, user)
	}
	return managers, rows.Err()
}
