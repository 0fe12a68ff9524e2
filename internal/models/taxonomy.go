package models

// Skill is a taxonomy entry users attach to their profile.
// Rows are created lazily via get-or-create keyed on the unique name.
type Skill struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

// Interest mirrors Skill for the user_interests association.
type Interest struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}
