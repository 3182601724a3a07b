package database

import (
	"database/sql"
	"fmt"

	"github.com/Wahla-007/Suf-Proj/app/models"
	"golang.org/x/crypto/bcrypt"
)

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password_hash, full_name, is_admin, is_password_changed, joined_date, created_at, updated_at
			  FROM users WHERE email = $1 AND deleted_at IS NULL`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FullName,
		&user.IsAdmin, &user.IsPasswordChanged, &user.JoinedDate, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password_hash, full_name, is_admin, is_password_changed, joined_date, created_at, updated_at
			  FROM users WHERE id = $1 AND deleted_at IS NULL`

	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Email, &user.Password, &user.FullName,
		&user.IsAdmin, &user.IsPasswordChanged, &user.JoinedDate, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetAllUsers returns every non-deleted user ordered by name.
func GetAllUsers(db *sql.DB) ([]*models.User, error) {
	query := `SELECT id, email, full_name, is_admin, is_password_changed, joined_date, created_at, updated_at
			  FROM users WHERE deleted_at IS NULL ORDER BY full_name, email`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		err := rows.Scan(
			&user.ID, &user.Email, &user.FullName, &user.IsAdmin,
			&user.IsPasswordChanged, &user.JoinedDate, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			continue
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// GetBillableUsers returns the billing roster: every active non-admin user.
func GetBillableUsers(db *sql.DB) ([]*models.User, error) {
	query := `SELECT id, email, full_name, is_admin, is_password_changed, joined_date, created_at, updated_at
			  FROM users WHERE is_admin = false AND deleted_at IS NULL ORDER BY email`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		err := rows.Scan(
			&user.ID, &user.Email, &user.FullName, &user.IsAdmin,
			&user.IsPasswordChanged, &user.JoinedDate, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			continue
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// CreateUser inserts a user, hashing the plaintext password.
func CreateUser(db *sql.DB, user *models.User) error {
	hashed, err := hashPassword(user.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	query := `INSERT INTO users (id, email, password_hash, full_name, is_admin, joined_date, created_at, updated_at)
			  VALUES (gen_random_uuid(), $1, $2, $3, $4, CURRENT_DATE, NOW(), NOW())
			  RETURNING id, joined_date, created_at, updated_at`

	return db.QueryRow(query, user.Email, hashed, user.FullName, user.IsAdmin).Scan(
		&user.ID, &user.JoinedDate, &user.CreatedAt, &user.UpdatedAt,
	)
}

// UpdateUser updates the mutable profile fields.
func UpdateUser(db *sql.DB, user *models.User) error {
	query := `UPDATE users SET email = $1, full_name = $2, is_admin = $3, updated_at = NOW()
			  WHERE id = $4 AND deleted_at IS NULL`

	result, err := db.Exec(query, user.Email, user.FullName, user.IsAdmin, user.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return err
}

// DeleteUser soft-deletes a user. Attendance and bills stay behind their
// foreign keys and only disappear on a hard delete.
func DeleteUser(db *sql.DB, userID string) error {
	query := `UPDATE users SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := db.Exec(query, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return err
}

// UpdateUserPassword replaces the stored hash and marks the password changed.
func UpdateUserPassword(db *sql.DB, userID string, hashedPassword string) error {
	query := `UPDATE users SET password_hash = $1, is_password_changed = true, updated_at = NOW() WHERE id = $2`
	_, err := db.Exec(query, hashedPassword, userID)
	return err
}

// ResetUserPassword sets a fresh password and clears the changed flag so the
// user is prompted to pick their own.
func ResetUserPassword(db *sql.DB, userID string, newPassword string) error {
	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	query := `UPDATE users SET password_hash = $1, is_password_changed = false, updated_at = NOW() WHERE id = $2`
	_, err = db.Exec(query, hashed, userID)
	return err
}
