package database

import (
	"time"

	"opsconsole-backend/internal/models"
)

// LoginLogRepo handles login log database operations
type LoginLogRepo struct{}

// NewLoginLogRepo creates a new login log repository
func NewLoginLogRepo() *LoginLogRepo {
	return &LoginLogRepo{}
}

// Create creates a new login log entry
func (r *LoginLogRepo) Create(log *models.LoginLog) error {
	result, err := DB.Exec(`
		INSERT INTO login_logs (user_name, ip_address, user_agent, status, message, login_time)
		VALUES (?, ?, ?, ?, ?, ?)
	`, log.UserName, log.IPAddress, log.UserAgent, log.Status, log.Message, log.LoginTime)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	log.ID = id
	return nil
}

// Record is a convenience method logging an attempt with the current time
func (r *LoginLogRepo) Record(userName, ip, userAgent string, status int, message string) error {
	return r.Create(&models.LoginLog{
		UserName:  userName,
		IPAddress: ip,
		UserAgent: userAgent,
		Status:    status,
		Message:   message,
		LoginTime: time.Now(),
	})
}

// ListByUserName retrieves recent login attempts for a user, newest first
func (r *LoginLogRepo) ListByUserName(userName string, limit int) ([]*models.LoginLog, error) {
	rows, err := DB.Query(`
		SELECT id, user_name, ip_address, user_agent, status, message, login_time
		FROM login_logs WHERE user_name = ?
		ORDER BY login_time DESC LIMIT ?
	`, userName, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.LoginLog
	for rows.Next() {
		log := &models.LoginLog{}
		var ip, ua, msg *string
		err := rows.Scan(&log.ID, &log.UserName, &ip, &ua, &log.Status, &msg, &log.LoginTime)
		if err != nil {
			return nil, err
		}
		if ip != nil {
			log.IPAddress = *ip
		}
		if ua != nil {
			log.UserAgent = *ua
		}
		if msg != nil {
			log.Message = *msg
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}
