// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Role is stored as plain text and validated at the API boundary.
const (
	RoleStudent = "student"
	RoleMentor  = "mentor"
	RoleAdmin   = "admin"
)

// Availability states.
const (
	AvailabilityAvailable = "available"
	AvailabilityBusy      = "busy"
	AvailabilityOffline   = "offline"
)

// DefaultAvatarURL is applied when a user registers without an avatar.
const DefaultAvatarURL = "https://images.pexels.com/photos/1040880/pexels-photo-1040880.jpeg?auto=compress&cs=tinysrgb&w=150"

// User represents a member of the Sama community.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Username     string `gorm:"unique;not null" json:"username"`
	Email        string `gorm:"unique;not null" json:"email"`
	Password     string `gorm:"not null" json:"-"`
	Avatar       string `json:"avatar"`
	Role         string `gorm:"default:student" json:"role"`
	Bio          string `gorm:"type:text" json:"bio"`
	Location     string `json:"location"`
	Rating       int    `gorm:"default:0" json:"rating"`
	IsOnline     bool   `gorm:"default:false" json:"is_online"`
	Availability string `gorm:"default:available" json:"availability"`

	Posts     []Post     `gorm:"foreignKey:AuthorID" json:"-"`
	Skills    []Skill    `gorm:"many2many:user_skills" json:"-"`
	Interests []Interest `gorm:"many2many:user_interests" json:"-"`

	// SkillNames and InterestNames are the flattened name lists exposed over
	// the API; populated from the preloaded associations by AfterFind.
	SkillNames    []string `gorm:"-" json:"skills"`
	InterestNames []string `gorm:"-" json:"interests"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AfterFind flattens preloaded skill/interest associations into name lists.
// The lists are always non-nil so clients see [] rather than null.
func (u *User) AfterFind(tx *gorm.DB) error {
	u.SkillNames = make([]string, 0, len(u.Skills))
	for _, s := range u.Skills {
		u.SkillNames = append(u.SkillNames, s.Name)
	}
	u.InterestNames = make([]string, 0, len(u.Interests))
	for _, i := range u.Interests {
		u.InterestNames = append(u.InterestNames, i.Name)
	}
	return nil
}

// ValidRole reports whether role is one of the enumerated user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleMentor, RoleAdmin:
		return true
	}
	return false
}

// ValidAvailability reports whether a is one of the enumerated availability states.
func ValidAvailability(a string) bool {
	switch a {
	case AvailabilityAvailable, AvailabilityBusy, AvailabilityOffline:
		return true
	}
	return false
}
