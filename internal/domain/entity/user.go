package entity

// User represents a registered account. Rows are never updated or deleted.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Password string `gorm:"column:password;type:text;not null" json:"-"`
	Role     Role   `gorm:"type:text;not null" json:"role"`
}

func (User) TableName() string {
	return "users"
}
