package model

import "time"

// EntryType вид записи в списке.
type EntryType string

const (
	EntryTypeMovie  EntryType = "Movie"
	EntryTypeTVShow EntryType = "TV Show"
)

// ParseEntryType нормализует тип записи. Допускается слитное написание "TVShow".
func ParseEntryType(s string) (EntryType, bool) {
	switch s {
	case string(EntryTypeMovie):
		return EntryTypeMovie, true
	case string(EntryTypeTVShow), "TVShow":
		return EntryTypeTVShow, true
	}
	return "", false
}

// Entry серверная модель записи списка (фильм или сериал).
type Entry struct {
	ID     int64 `gorm:"primaryKey;autoIncrement"`
	UserID int64 `gorm:"not null;index"` // ссылка на users.id

	// Связи
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Title       string    `gorm:"size:255;not null"`
	Type        EntryType `gorm:"size:50;not null"`
	Director    string    `gorm:"size:255;not null"`
	Budget      string    `gorm:"size:100;not null"`
	Location    string    `gorm:"size:255;not null"`
	Duration    string    `gorm:"size:100;not null"`
	YearTime    string    `gorm:"column:year_time;size:100;not null"`
	Description *string   `gorm:"type:text"`
	ImageURL    *string   `gorm:"column:image_url;size:512"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
