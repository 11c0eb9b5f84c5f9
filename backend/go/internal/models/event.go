package models

// Event is a scheduled happening at a site.
type Event struct {
	ID              uint `gorm:"primaryKey"`
	MonasteryID     uint `gorm:"index;not null"`
	Title           string
	Date            string `gorm:"size:64"`
	Time            string `gorm:"size:64"`
	Description     string `gorm:"size:4096"`
	Type            string `gorm:"size:32"` // festival | ritual | ceremony | teaching
	CanBook         bool
	MaxParticipants *int
}

func (Event) TableName() string { return "events" }
