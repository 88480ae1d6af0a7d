package domain

import "time"

type User struct {
	ID        string    `json:"_id"`
	FullName  string    `json:"fullname"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"` // Stored hashed, cleared before responses
	CreatedOn time.Time `json:"createdOn"`
}

type RegisterRequest struct {
	FullName string `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterResponse struct {
	Error       bool   `json:"error"`
	User        *User  `json:"user"`
	AccessToken string `json:"accesstoken"`
	Message     string `json:"message"`
}

type LoginResponse struct {
	Error       bool   `json:"error"`
	Message     string `json:"message"`
	Email       string `json:"email"`
	AccessToken string `json:"accesstoken"`
}

type UserResponse struct {
	User    *User  `json:"user"`
	Message string `json:"message"`
}
