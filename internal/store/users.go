package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"daytrip/internal/models"
)

const userColumns = `id, email, name, agree_to_marketing, is_staff, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.AgreeToMarketing, &u.IsStaff, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// CreateUser registers a new account and its search counter.
func (s *Store) CreateUser(ctx context.Context, nu models.Registration) (models.User, error) {
	email := strings.ToLower(strings.TrimSpace(nu.Email))
	if email == "" || nu.Password == "" {
		return models.User{}, fmt.Errorf("email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.User{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	user, err := scanUser(tx.QueryRowContext(ctx, `
		INSERT INTO users (email, name, password_hash, agree_to_marketing, is_staff)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		email, strings.TrimSpace(nu.Name), hash, nu.AgreeToMarketing, nu.IsStaff))
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrUserExists
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO user_search_counts (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`, user.ID); err != nil {
		return models.User{}, fmt.Errorf("insert search count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return user, nil
}

// Authenticate validates credentials and returns the account.
func (s *Store) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var hash []byte
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`, password_hash
		FROM users
		WHERE email = $1
	`, email)

	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.AgreeToMarketing, &u.IsStaff, &u.CreatedAt, &u.UpdatedAt, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// CreateSession records an issued token id.
func (s *Store) CreateSession(ctx context.Context, jti string, userID int64, expiresAt time.Time) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (jti, user_id, expires_at)
		VALUES ($1, $2, $3)
	`, jti, userID, expiresAt); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// SessionUser returns the owner of a live session.
func (s *Store) SessionUser(ctx context.Context, jti string) (models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `
		SELECT u.id, u.email, u.name, u.agree_to_marketing, u.is_staff, u.created_at, u.updated_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.jti = $1 AND s.expires_at > NOW()
	`, jti))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUnauthorized
		}
		return models.User{}, fmt.Errorf("lookup session: %w", err)
	}
	return u, nil
}

// DeleteSession revokes a session. Deleting an unknown session is not an error.
func (s *Store) DeleteSession(ctx context.Context, jti string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE jti = $1`, jti); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// UserByID loads a single account.
func (s *Store) UserByID(ctx context.Context, id int64) (models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

// UpdateProfile applies the non-nil fields of update.
func (s *Store) UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) (models.User, error) {
	var name any
	if update.Name != nil {
		name = strings.TrimSpace(*update.Name)
	}
	var marketing any
	if update.AgreeToMarketing != nil {
		marketing = *update.AgreeToMarketing
	}

	u, err := scanUser(s.db.QueryRowContext(ctx, `
		UPDATE users
		SET name = COALESCE($2, name),
		    agree_to_marketing = COALESCE($3, agree_to_marketing),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		id, name, marketing))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("update profile: %w", err)
	}
	return u, nil
}

// EmailExists reports whether an account uses email.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
	`, strings.ToLower(strings.TrimSpace(email))).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

// EnsureStaff creates a staff account for email, or promotes the existing one.
// It reports whether a new account was created.
func (s *Store) EnsureStaff(ctx context.Context, email, password string) (bool, error) {
	_, err := s.CreateUser(ctx, models.Registration{Email: email, Name: "admin", Password: password, IsStaff: true})
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, ErrUserExists) {
		return false, err
	}

	if _, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET is_staff = TRUE, updated_at = NOW()
		WHERE email = $1 AND NOT is_staff
	`, strings.ToLower(strings.TrimSpace(email))); err != nil {
		return false, fmt.Errorf("promote staff: %w", err)
	}
	return false, nil
}
