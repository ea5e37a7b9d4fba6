package models

import "time"

// UserStatus represents the state of a user account
type UserStatus int

const (
	StatusNormal   UserStatus = 0
	StatusDisabled UserStatus = 1
	StatusLocked   UserStatus = 2
)

// User represents a console account
type User struct {
	ID           int64      `json:"userId"`
	UserName     string     `json:"userName"`
	NickName     string     `json:"nickName"`
	Email        string     `json:"email,omitempty"`
	PasswordHash string     `json:"-"` // Never expose in JSON
	DeptID       int64      `json:"deptId"`
	Status       UserStatus `json:"status"`
	LoginIP      string     `json:"loginIp,omitempty"`
	LoginDate    time.Time  `json:"loginDate,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Dept represents the department a user belongs to
type Dept struct {
	ID       int64  `json:"deptId"`
	ParentID int64  `json:"parentId"`
	DeptName string `json:"deptName"`
	OrderNum int    `json:"orderNum"`
	Status   int    `json:"status"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	UserName  string `json:"userName" form:"userName"`
	Password  string `json:"password" form:"password"`
	Code      string `json:"code" form:"code"`
	UUID      string `json:"uuid" form:"uuid"`
	LoginInfo string `json:"loginInfo" form:"loginInfo"`
}

// RegisterRequest represents the request body for self-registration
type RegisterRequest struct {
	UserName        string `json:"userName" validate:"required,min=2,max=30"`
	NickName        string `json:"nickName" validate:"omitempty,max=64"`
	Email           string `json:"email" validate:"omitempty,email"`
	Password        string `json:"password" validate:"required,min=5,max=64"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// CurrentUser is the profile payload returned by getInfo
type CurrentUser struct {
	User        *User    `json:"user"`
	Dept        *Dept    `json:"dept,omitempty"`
	Permissions []string `json:"permissions"`
}
