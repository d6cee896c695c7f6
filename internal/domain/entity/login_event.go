package entity

import "time"

// LoginTimeLayout is the storage format of login_history.login_time
const LoginTimeLayout = "2006-01-02 15:04:05"

// LoginEvent is an append-only record of a successful authentication
type LoginEvent struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string `gorm:"type:text;not null" json:"username"`
	Role      Role   `gorm:"type:text;not null" json:"role"`
	LoginTime string `gorm:"column:login_time;type:text;not null" json:"login_time"`
}

func (LoginEvent) TableName() string {
	return "login_history"
}

// Timestamp parses LoginTime in the local zone. Zero time if the stored value is malformed.
func (e *LoginEvent) Timestamp() time.Time {
	t, err := time.ParseInLocation(LoginTimeLayout, e.LoginTime, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}
