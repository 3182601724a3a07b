package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the schema when missing and applies incremental
// updates. Every statement is idempotent so the app can run it on each start.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(256) NOT NULL UNIQUE,
			password_hash VARCHAR(256) NOT NULL,
			full_name VARCHAR(256) NOT NULL DEFAULT '',
			is_admin BOOLEAN NOT NULL DEFAULT false,
			is_password_changed BOOLEAN NOT NULL DEFAULT false,
			joined_date DATE NOT NULL DEFAULT CURRENT_DATE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS refresh_tokens (
			id SERIAL PRIMARY KEY,
			token VARCHAR(256) NOT NULL UNIQUE,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			expires_at TIMESTAMPTZ NOT NULL,
			revoked BOOLEAN NOT NULL DEFAULT false,
			revoked_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user ON refresh_tokens(user_id)`,
		`CREATE TABLE IF NOT EXISTS attendances (
			id SERIAL PRIMARY KEY,
			teacher_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			date DATE,
			breakfast BOOLEAN NOT NULL DEFAULT false,
			lunch BOOLEAN NOT NULL DEFAULT false,
			dinner BOOLEAN NOT NULL DEFAULT false,
			marked_by VARCHAR(256) NOT NULL DEFAULT '',
			is_verified BOOLEAN,
			verification_note TEXT NOT NULL DEFAULT '',
			verified_at TIMESTAMPTZ,
			dispute_status VARCHAR(10) NOT NULL DEFAULT 'None',
			dispute_reason TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (teacher_id, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attendances_date ON attendances(date)`,
		`CREATE TABLE IF NOT EXISTS weekly_plans (
			id SERIAL PRIMARY KEY,
			week_start DATE NOT NULL,
			created_by_id UUID REFERENCES users(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_weekly_plans_week_start ON weekly_plans(week_start)`,
		`CREATE TABLE IF NOT EXISTS weekly_plan_days (
			id SERIAL PRIMARY KEY,
			weekly_plan_id INTEGER NOT NULL REFERENCES weekly_plans(id) ON DELETE CASCADE,
			day_of_week INTEGER NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
			breakfast_name VARCHAR(100) NOT NULL DEFAULT 'Breakfast',
			lunch_name VARCHAR(100) NOT NULL DEFAULT 'Lunch',
			dinner_name VARCHAR(100) NOT NULL DEFAULT 'Dinner',
			breakfast_price NUMERIC(10,2) NOT NULL DEFAULT 0,
			lunch_price NUMERIC(10,2) NOT NULL DEFAULT 0,
			dinner_price NUMERIC(10,2) NOT NULL DEFAULT 0,
			UNIQUE (weekly_plan_id, day_of_week)
		)`,
		`CREATE TABLE IF NOT EXISTS bills (
			id SERIAL PRIMARY KEY,
			teacher_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			year INTEGER NOT NULL,
			month INTEGER NOT NULL,
			total_meals_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
			water_fee NUMERIC(10,2) NOT NULL DEFAULT 0,
			previous_due NUMERIC(10,2) NOT NULL DEFAULT 0,
			total_due NUMERIC(10,2) NOT NULL DEFAULT 0,
			paid_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
			status VARCHAR(10) NOT NULL DEFAULT 'Pending',
			generated_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			paid_on TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bills_teacher ON bills(teacher_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bills_period ON bills(year, month)`,
		`CREATE TABLE IF NOT EXISTS bill_lines (
			id SERIAL PRIMARY KEY,
			bill_id INTEGER NOT NULL REFERENCES bills(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			meal_type VARCHAR(100) NOT NULL DEFAULT '',
			price NUMERIC(10,2) NOT NULL DEFAULT 0,
			is_verified BOOLEAN NOT NULL DEFAULT true
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bill_lines_bill ON bill_lines(bill_id)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id SERIAL PRIMARY KEY,
			bill_id INTEGER NOT NULL REFERENCES bills(id) ON DELETE CASCADE,
			amount NUMERIC(10,2) NOT NULL DEFAULT 0,
			method VARCHAR(50) NOT NULL DEFAULT 'Simulated',
			transaction_id VARCHAR(100) NOT NULL DEFAULT '',
			paid_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key VARCHAR(100) PRIMARY KEY,
			value TEXT NOT NULL DEFAULT ''
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	if err := addDisputeColumns(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// addDisputeColumns upgrades attendance tables created before dispute
// handling existed.
func addDisputeColumns(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = 'attendances'
				AND column_name = 'dispute_status'
			) THEN
				ALTER TABLE attendances ADD COLUMN dispute_status VARCHAR(10) NOT NULL DEFAULT 'None';
				ALTER TABLE attendances ADD COLUMN dispute_reason TEXT NOT NULL DEFAULT '';
			END IF;
		END $$;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to run migration for dispute columns: %v", err)
		return err
	}
	return nil
}
