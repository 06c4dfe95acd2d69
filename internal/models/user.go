package models

import (
	"database/sql/driver"
	"fmt"
)

type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleMember Role = "Member"
)

// ParseRole decodes a stored role. Anything other than "Admin" is a Member.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleMember
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// Value implements driver.Valuer.
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// Scan implements sql.Scanner.
func (r *Role) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*r = ParseRole(v)
	case []byte:
		*r = ParseRole(string(v))
	case nil:
		*r = RoleMember
	default:
		return fmt.Errorf("cannot scan %T into Role", value)
	}
	return nil
}

type User struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:text" json:"name"`
	Role Role   `gorm:"type:varchar(20);not null" json:"role"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
