package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"
)

func InitDB(ctx context.Context, dbURL string, maxOpen, maxIdle int) (*sql.DB, error) {
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)

	log.Println("✅ Database connected successfully")
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			id BIGSERIAL PRIMARY KEY,
			date DATE NOT NULL,
			item_name VARCHAR(255) NOT NULL,
			type VARCHAR(100) NOT NULL,
			quantity VARCHAR(50) NOT NULL DEFAULT '',
			unit VARCHAR(50) NOT NULL DEFAULT '',
			amount NUMERIC(15,2) NOT NULL CHECK (amount >= 0),
			note TEXT NOT NULL DEFAULT '',
			extra_note TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date, id)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_type ON transactions(type)`,

		`CREATE TABLE IF NOT EXISTS payable_state (
			id SMALLINT PRIMARY KEY CHECK (id = 1),
			total_owed NUMERIC(15,2) NOT NULL DEFAULT 0,
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS assets (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			manufacturer VARCHAR(255) NOT NULL DEFAULT '',
			acquired_on DATE NOT NULL,
			cost NUMERIC(15,2) NOT NULL,
			life_years INTEGER NOT NULL,
			salvage NUMERIC(15,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS invoices (
			id BIGSERIAL PRIMARY KEY,
			number VARCHAR(100) UNIQUE NOT NULL,
			customer VARCHAR(255) NOT NULL,
			date DATE NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			note TEXT NOT NULL DEFAULT '',
			total NUMERIC(15,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS invoice_lines (
			id BIGSERIAL PRIMARY KEY,
			invoice_id BIGINT NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			item VARCHAR(255) NOT NULL,
			quantity NUMERIC(15,2) NOT NULL,
			unit_price NUMERIC(15,2) NOT NULL,
			subtotal NUMERIC(15,2) NOT NULL
		)`,

		`CREATE SEQUENCE IF NOT EXISTS budget_code_seq`,

		`CREATE TABLE IF NOT EXISTS budgets (
			id BIGSERIAL PRIMARY KEY,
			code VARCHAR(20) UNIQUE NOT NULL,
			project_name VARCHAR(255) NOT NULL,
			client_name VARCHAR(255) NOT NULL,
			location VARCHAR(255) NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			date DATE NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'DRAFT',
			total NUMERIC(15,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS budget_lines (
			id BIGSERIAL PRIMARY KEY,
			budget_id BIGINT NOT NULL REFERENCES budgets(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			category VARCHAR(100) NOT NULL DEFAULT '',
			item VARCHAR(255) NOT NULL,
			spec TEXT NOT NULL DEFAULT '',
			quantity NUMERIC(15,2) NOT NULL,
			unit VARCHAR(50) NOT NULL DEFAULT 'unit',
			unit_price NUMERIC(15,2) NOT NULL,
			total NUMERIC(15,2) NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS employees (
			id BIGSERIAL PRIMARY KEY,
			nik VARCHAR(32) UNIQUE,
			name VARCHAR(255) NOT NULL,
			position VARCHAR(100) NOT NULL,
			division VARCHAR(100) NOT NULL DEFAULT '',
			status VARCHAR(20) NOT NULL DEFAULT 'TETAP',
			base_salary NUMERIC(15,2) NOT NULL,
			birth_place VARCHAR(100) NOT NULL DEFAULT '',
			birth_date DATE,
			address TEXT NOT NULL DEFAULT '',
			phone VARCHAR(30) NOT NULL DEFAULT '',
			email VARCHAR(255) NOT NULL DEFAULT '',
			bank VARCHAR(100) NOT NULL DEFAULT '',
			account_number VARCHAR(50) NOT NULL DEFAULT '',
			npwp VARCHAR(30) NOT NULL DEFAULT '',
			education VARCHAR(100) NOT NULL DEFAULT '',
			marital_status VARCHAR(30) NOT NULL DEFAULT '',
			joined_on DATE NOT NULL,
			note TEXT NOT NULL DEFAULT '',
			photo VARCHAR(255) NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS payroll_slips (
			id BIGSERIAL PRIMARY KEY,
			employee_id BIGINT NOT NULL REFERENCES employees(id) ON DELETE RESTRICT,
			period CHAR(7) NOT NULL,
			base_salary NUMERIC(15,2) NOT NULL,
			allowance NUMERIC(15,2) NOT NULL DEFAULT 0,
			bonus NUMERIC(15,2) NOT NULL DEFAULT 0,
			deduction NUMERIC(15,2) NOT NULL DEFAULT 0,
			total NUMERIC(15,2) NOT NULL,
			allowance_note TEXT NOT NULL DEFAULT '',
			deduction_note TEXT NOT NULL DEFAULT '',
			status VARCHAR(20) NOT NULL DEFAULT 'DRAFT',
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			paid_at TIMESTAMP,
			UNIQUE(employee_id, period)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_payroll_period ON payroll_slips(period)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.Println("✅ Migrations completed successfully")
	return nil
}
