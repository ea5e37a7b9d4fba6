package models

import "time"

// LoginLog represents a record of a login or logout attempt
type LoginLog struct {
	ID        int64     `json:"id"`
	UserName  string    `json:"userName"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	Status    int       `json:"status"` // 0 success, 1 failure
	Message   string    `json:"message"`
	LoginTime time.Time `json:"loginTime"`
}

// Login log status values
const (
	LoginStatusSuccess = 0
	LoginStatusFailure = 1
)

// Login log messages
const (
	LoginMsgSuccess = "login succeeded"
	LoginMsgLogout  = "logout"
)
