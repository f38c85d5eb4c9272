package dto

import "time"

// LoginRequest authenticates an employee terminal.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expiresAt"`
	EmployeeID string    `json:"employeeID"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
}
