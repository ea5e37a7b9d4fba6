package database

import (
	"database/sql"
	"errors"
	"time"

	"opsconsole-backend/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepo handles user database operations
type UserRepo struct{}

// NewUserRepo creates a new user repository
func NewUserRepo() *UserRepo {
	return &UserRepo{}
}

const userColumns = `id, user_name, nick_name, email, password_hash, dept_id, status,
	login_ip, login_date, created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var email, loginIP sql.NullString
	var loginDate sql.NullTime

	err := row.Scan(
		&user.ID, &user.UserName, &user.NickName, &email, &user.PasswordHash,
		&user.DeptID, &user.Status, &loginIP, &loginDate,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	user.Email = email.String
	user.LoginIP = loginIP.String
	if loginDate.Valid {
		user.LoginDate = loginDate.Time
	}

	return user, nil
}

// Create creates a new user
func (r *UserRepo) Create(user *models.User) error {
	result, err := DB.Exec(`
		INSERT INTO users (user_name, nick_name, email, password_hash, dept_id, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`, user.UserName, user.NickName, user.Email, user.PasswordHash, user.DeptID, user.Status)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepo) GetByID(id int64) (*models.User, error) {
	return scanUser(DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

// GetByUserName retrieves a user by username
func (r *UserRepo) GetByUserName(name string) (*models.User, error) {
	return scanUser(DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE user_name = ?`, name))
}

// ExistsByUserName reports whether a username is taken
func (r *UserRepo) ExistsByUserName(name string) (bool, error) {
	var count int
	err := DB.QueryRow("SELECT COUNT(*) FROM users WHERE user_name = ?", name).Scan(&count)
	return count > 0, err
}

// Count returns the total number of users
func (r *UserRepo) Count() (int, error) {
	var count int
	err := DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// UpdateLoginMetadata records the last login address and time for a user
func (r *UserRepo) UpdateLoginMetadata(id int64, ip string, when time.Time) error {
	_, err := DB.Exec(`
		UPDATE users SET login_ip = ?, login_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, ip, when, id)
	return err
}
