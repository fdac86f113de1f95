package models

// RoleName is the closed set of roles a user can hold.
type RoleName string

const (
	RoleAdmin RoleName = "admin"
	RoleUser  RoleName = "user"
)

// AllRoles lists every known role, in seeding order.
var AllRoles = []RoleName{RoleAdmin, RoleUser}

// Valid reports whether r is a known role.
func (r RoleName) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}

type Role struct {
	ID   uint64   `gorm:"primarykey" json:"id"`
	Name RoleName `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
}

// UserRole joins users and roles. The composite primary key keeps each
// assignment unique.
type UserRole struct {
	UserID uint64 `gorm:"primarykey" json:"userId"`
	RoleID uint64 `gorm:"primarykey" json:"roleId"`
}

// HasRole reports whether want is among roles. Unknown role names never match.
func HasRole(roles []RoleName, want RoleName) bool {
	if !want.Valid() {
		return false
	}
	for _, r := range roles {
		if r == want {
			return true
		}
	}
	return false
}
