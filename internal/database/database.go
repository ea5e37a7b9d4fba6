package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB is the global database connection
var DB *sql.DB

// Config holds database configuration
type Config struct {
	Path string
}

// Open initializes the database connection and runs migrations
func Open(cfg Config) error {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	var err error
	DB, err = sql.Open("sqlite", cfg.Path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// migrate runs all database migrations
func migrate() error {
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if err := runMigration(m); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.name, err)
		}
	}

	return nil
}

type migration struct {
	name string
	up   string
}

func runMigration(m migration) error {
	var count int
	err := DB.QueryRow("SELECT COUNT(*) FROM migrations WHERE name = ?", m.name).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Already applied
	}

	if _, err := DB.Exec(m.up); err != nil {
		return err
	}

	_, err = DB.Exec("INSERT INTO migrations (name) VALUES (?)", m.name)
	return err
}

var migrations = []migration{
	{
		name: "001_create_depts",
		up: `
			CREATE TABLE depts (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				parent_id INTEGER NOT NULL DEFAULT 0,
				dept_name TEXT NOT NULL,
				order_num INTEGER NOT NULL DEFAULT 0,
				status INTEGER NOT NULL DEFAULT 0
			);
		`,
	},
	{
		name: "002_create_users",
		up: `
			CREATE TABLE users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_name TEXT NOT NULL UNIQUE,
				nick_name TEXT NOT NULL,
				email TEXT,
				password_hash TEXT NOT NULL,
				dept_id INTEGER NOT NULL DEFAULT 0,
				status INTEGER NOT NULL DEFAULT 0,
				login_ip TEXT,
				login_date DATETIME,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX idx_users_user_name ON users(user_name);
		`,
	},
	{
		name: "003_create_menus",
		up: `
			CREATE TABLE menus (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				parent_id INTEGER NOT NULL DEFAULT 0,
				menu_name TEXT NOT NULL,
				path TEXT NOT NULL DEFAULT '',
				component TEXT,
				menu_type TEXT NOT NULL DEFAULT 'C',
				perms TEXT,
				icon TEXT,
				order_num INTEGER NOT NULL DEFAULT 0,
				visible INTEGER NOT NULL DEFAULT 1
			);
			CREATE TABLE user_menus (
				user_id INTEGER NOT NULL,
				menu_id INTEGER NOT NULL,
				PRIMARY KEY (user_id, menu_id),
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
				FOREIGN KEY (menu_id) REFERENCES menus(id) ON DELETE CASCADE
			);
		`,
	},
	{
		name: "004_create_sys_configs",
		up: `
			CREATE TABLE sys_configs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				config_key TEXT NOT NULL UNIQUE,
				config_value TEXT NOT NULL,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			);
			INSERT INTO sys_configs (config_key, config_value) VALUES
				('sys.account.captchaEnabled', 'false'),
				('sys.account.registerUser', 'true');
		`,
	},
	{
		name: "005_create_login_logs",
		up: `
			CREATE TABLE login_logs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_name TEXT NOT NULL,
				ip_address TEXT,
				user_agent TEXT,
				status INTEGER NOT NULL DEFAULT 0,
				message TEXT,
				login_time DATETIME DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX idx_login_logs_user_name ON login_logs(user_name);
		`,
	},
}
