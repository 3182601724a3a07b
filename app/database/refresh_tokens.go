package database

import (
	"database/sql"
	"time"

	"github.com/Wahla-007/Suf-Proj/app/models"
)

// CreateRefreshToken stores a new refresh token for a user.
func CreateRefreshToken(db *sql.DB, token string, userID string, expiresAt time.Time) error {
	query := `INSERT INTO refresh_tokens (token, user_id, created_at, expires_at)
			  VALUES ($1, $2, NOW(), $3)`
	_, err := db.Exec(query, token, userID, expiresAt)
	return err
}

// GetRefreshToken looks up a token together with its owner. Returns nil when
// the token does not exist.
func GetRefreshToken(db *sql.DB, token string) (*models.RefreshToken, error) {
	query := `SELECT rt.id, rt.token, rt.user_id, rt.created_at, rt.expires_at, rt.revoked, rt.revoked_at,
			  u.email, u.full_name, u.is_admin
			  FROM refresh_tokens rt
			  JOIN users u ON rt.user_id = u.id
			  WHERE rt.token = $1 AND u.deleted_at IS NULL`

	rt := &models.RefreshToken{}
	user := &models.User{}
	err := db.QueryRow(query, token).Scan(
		&rt.ID, &rt.Token, &rt.UserID, &rt.CreatedAt, &rt.ExpiresAt, &rt.Revoked, &rt.RevokedAt,
		&user.Email, &user.FullName, &user.IsAdmin,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	user.ID = rt.UserID
	rt.User = user
	return rt, nil
}

// RevokeRefreshToken marks a token unusable. Returns sql.ErrNoRows when the
// token is unknown.
func RevokeRefreshToken(db *sql.DB, token string) error {
	query := `UPDATE refresh_tokens SET revoked = true, revoked_at = NOW() WHERE token = $1 AND revoked = false`

	result, err := db.Exec(query, token)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return err
}

// DeleteExpiredRefreshTokens prunes tokens that can never be used again.
func DeleteExpiredRefreshTokens(db *sql.DB) (int64, error) {
	result, err := db.Exec(`DELETE FROM refresh_tokens WHERE expires_at < NOW() OR revoked = true`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
