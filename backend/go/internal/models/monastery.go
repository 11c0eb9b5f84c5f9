package models

// Monastery is the root record for a cultural site.
type Monastery struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"not null;size:255"`
	Location string `gorm:"not null;size:255"`
	Founded  string `gorm:"not null;size:64"`

	Media      []Media          `gorm:"foreignKey:MonasteryID"`
	Info       *MonasteryInfo   `gorm:"foreignKey:MonasteryID"`
	Events     []Event          `gorm:"foreignKey:MonasteryID"`
	Archives   []ArchiveItem    `gorm:"foreignKey:MonasteryID"`
	Highlights []AudioHighlight `gorm:"foreignKey:MonasteryID"`
}

// TableName keeps the table name the frontend-era schema used.
func (Monastery) TableName() string { return "monasteries" }

// MonasteryInfo carries the extended profile of a site, one row per
// monastery. Coordinates are optional; sites without them are excluded
// from route planning.
type MonasteryInfo struct {
	ID               uint `gorm:"primaryKey"`
	MonasteryID      uint `gorm:"uniqueIndex;not null"`
	District         *string
	Latitude         *float64
	Longitude        *float64
	FoundingYear     *int
	Description      *string `gorm:"size:4096"`
	Significance     *string `gorm:"size:4096"`
	AudioIntro       *string `gorm:"size:4096"`
	AudioDurationMin *int
}

func (MonasteryInfo) TableName() string { return "monastery_info" }

// AudioHighlight is one narrated point of interest inside a site.
type AudioHighlight struct {
	ID          uint `gorm:"primaryKey"`
	MonasteryID uint `gorm:"index;not null"`
	Title       string
	Description string `gorm:"size:2048"`
	DurationSec int
	Location    string
}

func (AudioHighlight) TableName() string { return "audio_highlights" }

// Media is an uploaded or generated file attached to a site.
// FilePath is the storage object name, not a public URL.
type Media struct {
	ID          uint `gorm:"primaryKey"`
	MonasteryID uint `gorm:"index;not null"`
	Title       string
	Type        string `gorm:"size:32"` // image | panorama | audio | video
	FilePath    string `gorm:"size:512"`
}

func (Media) TableName() string { return "media" }
