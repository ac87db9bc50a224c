// Package auth is the single-account layer sitting next to the journal core.
// It shares the journal's database handle and reports outcomes as a success
// flag plus a human-readable message rather than errors.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User mirrors the users table.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email,omitempty"`
	FullName     string    `json:"full_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LastLoginAt  time.Time `json:"last_login_at,omitempty"`
}

const (
	findUserStatement = `
	SELECT id, username, password_hash, email, full_name, created_at, COALESCE(last_login_at, 0)
	FROM users
	WHERE username = ?
	`

	insertUserStatement = `
	INSERT INTO users (username, password_hash, email, full_name)
	VALUES (?, ?, ?, ?)
	`

	touchLastLoginStatement = `
	UPDATE users
	SET last_login_at = unixepoch()
	WHERE id = ?
	`

	countUsersStatement = `
	SELECT COUNT(*)
	FROM users
	`
)

func findUser(ctx context.Context, conn *sql.DB, username string) (*User, error) {
	var (
		user               User
		created, lastLogin float64
	)
	err := conn.QueryRowContext(ctx, findUserStatement, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.FullName,
		&created,
		&lastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	user.CreatedAt = time.Unix(int64(created), 0)
	if lastLogin > 0 {
		user.LastLoginAt = time.Unix(int64(lastLogin), 0)
	}
	return &user, nil
}

// Register creates a new account. The result is a success flag and a message
// suitable for showing to the user; validation failures and storage failures
// both come back through the message.
func Register(ctx context.Context, conn *sql.DB, username, password, email, fullName string) (bool, string) {
	username = strings.TrimSpace(username)

	if username == "" {
		return false, "Username is required"
	}
	if len(username) < 3 {
		return false, "Username must be at least 3 characters"
	}
	if password == "" {
		return false, "Password is required"
	}
	if len(password) < 6 {
		return false, "Password must be at least 6 characters"
	}

	existing, err := findUser(ctx, conn, username)
	if err != nil {
		return false, fmt.Sprintf("Registration failed: %v", err)
	}
	if existing != nil {
		return false, "Username already exists"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Sprintf("Registration failed: %v", err)
	}

	if _, err := conn.ExecContext(ctx, insertUserStatement, username, string(hash), email, fullName); err != nil {
		return false, fmt.Sprintf("Registration failed: %v", err)
	}

	return true, "Registration successful! Please login."
}

// Login validates the credentials and touches the last-login timestamp. The
// message never reveals whether the username or the password was wrong.
func Login(ctx context.Context, conn *sql.DB, username, password string) (bool, string) {
	if strings.TrimSpace(username) == "" || password == "" {
		return false, "Username and password are required"
	}

	user, err := findUser(ctx, conn, strings.TrimSpace(username))
	if err != nil {
		return false, fmt.Sprintf("Login failed: %v", err)
	}
	if user == nil {
		return false, "Invalid username or password"
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return false, "Invalid username or password"
	}

	if _, err := conn.ExecContext(ctx, touchLastLoginStatement, user.ID); err != nil {
		return false, fmt.Sprintf("Login failed: %v", err)
	}

	return true, "Login successful!"
}

// HasUsers reports whether any account exists. Failures count as "no users",
// matching the first-run setup flow.
func HasUsers(ctx context.Context, conn *sql.DB) bool {
	var count int
	if err := conn.QueryRowContext(ctx, countUsersStatement).Scan(&count); err != nil {
		return false
	}
	return count > 0
}
