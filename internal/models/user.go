package models

// UserRecord is the session-scoped copy of an identity provider account.
type UserRecord struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// NewUser carries the registration form.
type NewUser struct {
	Name            string `json:"name" form:"name" validate:"required,min=2,max=50"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=8,eqfield=ConfirmPassword"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required"`
}

// Credentials carries the login form.
type Credentials struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}
