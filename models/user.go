// models/user.go
package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of stakeholder roles.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleATC       Role = "atc"
	RoleRegulator Role = "regulator"
)

// AllRoles lists every valid role, in display order.
var AllRoles = []Role{RoleAdmin, RoleATC, RoleRegulator}

// ParseRole converts user input into a Role, rejecting anything outside the closed set.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range AllRoles {
		if r == valid {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// DashboardPath is where a user of this role lands after login.
func (r Role) DashboardPath() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleATC:
		return "/atc"
	case RoleRegulator:
		return "/regulator"
	}
	return "/login"
}

// UserProfile is a row of the user_profiles table.
type UserProfile struct {
	ID           int64     `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Username     string    `db:"username" json:"username"` // unique
	PasswordHash string    `db:"password" json:"-"`        // werkzeug-style "pbkdf2:sha256:<iter>$<salt>$<hex>"
	Role         Role      `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// FullName joins first and last name for display.
func (u UserProfile) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
