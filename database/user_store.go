// database/user_store.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gewnthar/flightops/models"
)

// ErrDuplicateUsername is returned when a username is already taken.
var ErrDuplicateUsername = errors.New("username already exists")

const userColumns = "id, first_name, last_name, username, password, role, created_at"

// CountUsers returns the number of user profiles.
func (db *DB) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM user_profiles").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count user profiles: %w", err)
	}
	return n, nil
}

// GetUserByUsername returns the profile or (nil, nil) when no such user exists.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	row := db.QueryRowContext(ctx, db.Rebind("SELECT "+userColumns+" FROM user_profiles WHERE username = ?"), username)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user %s: %w", username, err)
	}
	return u, nil
}

// ListUsers returns every profile ordered by username.
func (db *DB) ListUsers(ctx context.Context) ([]models.UserProfile, error) {
	rows, err := db.QueryContext(ctx, "SELECT "+userColumns+" FROM user_profiles ORDER BY username")
	if err != nil {
		return nil, fmt.Errorf("failed to query user profiles: %w", err)
	}
	defer rows.Close()

	var users []models.UserProfile
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user profile row: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user profile rows: %w", err)
	}
	return users, nil
}

// CreateUser inserts a new profile and sets its ID and CreatedAt.
// Existing profiles are never updated.
func (db *DB) CreateUser(ctx context.Context, u *models.UserProfile) error {
	existing, err := db.GetUserByUsername(ctx, u.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("failed to create user %s: %w", u.Username, ErrDuplicateUsername)
	}

	u.CreatedAt = time.Now().UTC().Truncate(time.Second)
	id, err := db.insertReturningID(ctx, db.DB,
		"INSERT INTO user_profiles (first_name, last_name, username, password, role, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		u.FirstName, u.LastName, u.Username, u.PasswordHash, string(u.Role), u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user %s: %w", u.Username, err)
	}
	u.ID = id
	db.log.Info("Database: created user profile", slog.String("username", u.Username), slog.String("role", string(u.Role)))
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.UserProfile, error) {
	var u models.UserProfile
	var role string
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = models.Role(role)
	return &u, nil
}

type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// insertReturningID runs an INSERT and returns the generated id. PostgreSQL
// has no LastInsertId, so it gets a RETURNING clause instead.
func (db *DB) insertReturningID(ctx context.Context, q execQuerier, query string, args ...any) (int64, error) {
	if db.driver == "postgres" {
		var id int64
		if err := q.QueryRowContext(ctx, db.Rebind(query)+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
