package models

import "time"

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
	RoleServer   UserRole = "server"
)

// ConfirmationMode controls the initial status of order items routed to an
// employee: "auto" employees get their lines created already done.
type ConfirmationMode string

const (
	ConfirmationManual ConfirmationMode = "manual"
	ConfirmationAuto   ConfirmationMode = "auto"
)

type User struct {
	ID               string           `json:"id"`
	Username         string           `json:"username"`
	PasswordHash     string           `json:"-"`
	Role             UserRole         `json:"role"`
	EmployeeCode     string           `json:"employee_code,omitempty"`
	ConfirmationMode ConfirmationMode `json:"confirmation_mode"`
	CreatedAt        time.Time        `json:"created_at"`
}

// Employee is the projection of a user handed to the POS and queue views.
type Employee struct {
	ID               string           `json:"id"`
	Username         string           `json:"username"`
	EmployeeCode     string           `json:"employee_code"`
	ConfirmationMode ConfirmationMode `json:"confirmation_mode"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type CreateEmployeeRequest struct {
	Username         string           `json:"username" validate:"required"`
	Password         string           `json:"password" validate:"required,min=4"`
	EmployeeCode     string           `json:"employee_code" validate:"required"`
	ConfirmationMode ConfirmationMode `json:"confirmation_mode" validate:"required,oneof=manual auto"`
}

type UpdateEmployeeRequest struct {
	Username         string           `json:"username" validate:"required"`
	Password         string           `json:"password"` // empty keeps the current password
	EmployeeCode     string           `json:"employee_code" validate:"required"`
	ConfirmationMode ConfirmationMode `json:"confirmation_mode" validate:"required,oneof=manual auto"`
}
