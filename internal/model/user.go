package model

import "time"

// User учётная запись владельца списка.
type User struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	Name      string  `gorm:"size:255;not null"`
	Email     string  `gorm:"size:255;not null;uniqueIndex"`
	Password  string  `gorm:"size:255;not null"` // bcrypt-хеш, наружу не отдаётся
	AvatarURL *string `gorm:"size:512"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
