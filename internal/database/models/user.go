package models

// User represents a login identity that can authenticate against the API
type User struct {
	TimestampedModel
	Username     string `json:"username" gorm:"uniqueIndex;not null;size:150" validate:"required,max=150"`
	Email        string `json:"email" gorm:"size:255" validate:"omitempty,email,max=255"`
	FirstName    string `json:"first_name" gorm:"size:100" validate:"max=100"`
	LastName     string `json:"last_name" gorm:"size:100" validate:"max=100"`
	PasswordHash string `json:"-" gorm:"not null;size:255"`
	IsSuperuser  bool   `json:"is_superuser" gorm:"default:false"`
	IsActive     bool   `json:"is_active" gorm:"default:true"`

	// Relationships
	Employee *Employee `json:"employee,omitempty" gorm:"foreignKey:UserID"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

// FullName returns the display name for the user
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
