package database

import (
	"database/sql"
	"log"
	"strings"

	"github.com/Wahla-007/Suf-Proj/app/models"
	"github.com/shopspring/decimal"
)

// GetSetting returns the value for a key, or "" when the key is unset.
func GetSetting(db *sql.DB, key string) (string, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetSetting upserts a key/value pair.
func SetSetting(db *sql.DB, key, value string) error {
	query := `INSERT INTO settings (key, value) VALUES ($1, $2)
			  ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	_, err := db.Exec(query, key, value)
	return err
}

// ListSettings returns every setting row.
func ListSettings(db *sql.DB) ([]*models.Setting, error) {
	rows, err := db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []*models.Setting
	for rows.Next() {
		s := &models.Setting{}
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			continue
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// GetWaterFee returns the flat per-period fee. An unset or unparseable value
// degrades to zero; billing must never fail on a bad setting.
func GetWaterFee(db *sql.DB) (decimal.Decimal, error) {
	value, err := GetSetting(db, models.SettingWaterFee)
	if err != nil {
		return decimal.Zero, err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, nil
	}
	fee, err := decimal.NewFromString(value)
	if err != nil {
		log.Printf("Invalid %s setting %q, using 0", models.SettingWaterFee, value)
		return decimal.Zero, nil
	}
	return fee, nil
}
