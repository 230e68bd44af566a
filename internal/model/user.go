package model

import (
	"fmt"
	"regexp"
	"time"

	apperrors "reviewhub/internal/errors"
)

// Roles a user can hold. Superuser and staff flags escalate independently
// of the role field.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

const (
	// UsernameMaxLen is the maximum username length.
	UsernameMaxLen = 150
	// EmailMaxLen is the maximum email length.
	EmailMaxLen = 254
)

// usernamePattern is the set of characters a username may contain.
var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// reservedUsernames are usernames that collide with API routes.
var reservedUsernames = map[string]bool{"me": true}

// User represents an identity: credentials, profile and role.
type User struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Username  string `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Email     string `json:"email" gorm:"uniqueIndex;size:254;not null"`
	FirstName string `json:"first_name" gorm:"size:150"`
	LastName  string `json:"last_name" gorm:"size:150"`
	Bio       string `json:"bio" gorm:"type:text"`
	Role      string `json:"role" gorm:"size:30;not null;default:'user'"`
	Superuser bool   `json:"is_superuser" gorm:"default:false"`
	Staff     bool   `json:"is_staff" gorm:"default:false"`
	// ConfirmationCode holds a bcrypt hash of the last issued code,
	// blank until one is issued. The plaintext code is only ever
	// delivered by mail.
	ConfirmationCode string     `json:"-" gorm:"size:100"`
	LastLogin        *time.Time `json:"last_login,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// IsAdmin reports admin standing: the admin role or the superuser flag.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Superuser
}

// IsModerator reports moderator standing: the moderator role or the staff flag.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator || u.Staff
}

// IsActivated reports whether the user has logged in at least once and
// still holds an issued confirmation code.
func (u *User) IsActivated() bool {
	return u.LastLogin != nil && u.ConfirmationCode != ""
}

// ValidateUsername records every violated username rule on errs.
func ValidateUsername(username string, errs *apperrors.ValidationError) {
	if username == "" {
		errs.Add("username", "username is required")
		return
	}
	if reservedUsernames[username] {
		errs.Add("username", fmt.Sprintf("username %q is not allowed", username))
	}
	if !usernamePattern.MatchString(username) {
		errs.Add("username", "username may only contain letters, digits and .@+- characters")
	}
	if len(username) > UsernameMaxLen {
		errs.Add("username", fmt.Sprintf("username must be at most %d characters", UsernameMaxLen))
	}
}

// ValidateEmail records every violated email rule on errs.
func ValidateEmail(email string, errs *apperrors.ValidationError) {
	if email == "" {
		errs.Add("email", "email is required")
		return
	}
	if len(email) > EmailMaxLen {
		errs.Add("email", fmt.Sprintf("email must be at most %d characters", EmailMaxLen))
	}
}

// ValidateRole records a violation when role is not a known choice.
func ValidateRole(role string, errs *apperrors.ValidationError) {
	switch role {
	case RoleUser, RoleModerator, RoleAdmin:
	default:
		errs.Add("role", fmt.Sprintf("role must be one of %s, %s, %s", RoleUser, RoleModerator, RoleAdmin))
	}
}
