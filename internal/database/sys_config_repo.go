package database

import "time"

// SysConfigRepo handles system configuration database operations. The rows
// it manages are mirrored into the config cache at startup; runtime reads go
// through the cache, not this repo.
type SysConfigRepo struct{}

// NewSysConfigRepo creates a new system configuration repository
func NewSysConfigRepo() *SysConfigRepo {
	return &SysConfigRepo{}
}

// GetAll retrieves all configuration entries
func (r *SysConfigRepo) GetAll() (map[string]string, error) {
	rows, err := DB.Query("SELECT config_key, config_value FROM sys_configs")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		entries[key] = value
	}

	return entries, rows.Err()
}

// Set inserts or updates a configuration entry
func (r *SysConfigRepo) Set(key, value string) error {
	_, err := DB.Exec(`
		INSERT INTO sys_configs (config_key, config_value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(config_key) DO UPDATE SET config_value = ?, updated_at = ?
	`, key, value, time.Now(), value, time.Now())
	return err
}
