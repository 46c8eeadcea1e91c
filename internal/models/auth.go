package models

import "time"

// Identity is the request-scoped authentication context produced by the
// auth middleware. ProfileID is empty when the account has no profile
// row; handlers that need it fail independently.
type Identity struct {
	AccountID string
	Role      Role
	ProfileID string
}

// HasProfile reports whether a profile row was resolved for the account.
func (i *Identity) HasProfile() bool {
	return i.ProfileID != ""
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResponse is returned on successful login. The caller persists the
// token and sends it back raw in the Authorization header.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
	ProfileID *string   `json:"profile_id,omitempty"`
}

// UserInfo is the account summary embedded in login responses.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// RegisterStudentRequest creates an account plus student profile in one
// transaction.
type RegisterStudentRequest struct {
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=8"`
	FullName      string  `json:"full_name" validate:"required"`
	GradeLevel    string  `json:"grade_level" validate:"required"`
	GuardianName  string  `json:"guardian_name" validate:"required"`
	GuardianPhone string  `json:"guardian_phone" validate:"required,max=14"`
	AvatarURL     *string `json:"avatar_url,omitempty"`
}

// RegisterTeacherRequest creates an account plus teacher profile in one
// transaction.
type RegisterTeacherRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8"`
	FullName    string  `json:"full_name" validate:"required"`
	Address     *string `json:"address,omitempty"`
	AddressProv *string `json:"address_province,omitempty"`
	AddressCity *string `json:"address_city,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}
