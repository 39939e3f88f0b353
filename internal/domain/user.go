package domain

import "time"

type UserRole string

const (
	UserRoleMember   UserRole = "MEMBER"
	UserRoleProvider UserRole = "PROVIDER"
	UserRoleAdmin    UserRole = "ADMIN"
)

type User struct {
	ID           int32     `json:"id"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	AvatarURL    string    `json:"avatar_url"`
	Role         UserRole  `json:"role"`
	Credits      int32     `json:"credits"` // 1 credit = $1, never negative
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}
