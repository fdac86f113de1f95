package dto

import "github.com/agrodash/plot-api/internal/models"

// UserDTO is the public projection of a user. The password hash never
// appears in responses.
type UserDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SessionUserDTO is the authenticated user together with its roles
type SessionUserDTO struct {
	ID    uint64            `json:"id"`
	Name  string            `json:"name"`
	Email string            `json:"email"`
	Roles []models.RoleName `json:"roles"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	User  SessionUserDTO `json:"user"`
	Token string         `json:"token"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, u := range users {
		out[i] = ToUserDTO(u)
	}
	return out
}

// ToSessionUserDTO converts a User model with loaded roles
func ToSessionUserDTO(user models.User) SessionUserDTO {
	return SessionUserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Roles: user.RoleNames(),
	}
}
