package models

// ArchiveItem is one digitalized artifact in a site's archive.
type ArchiveItem struct {
	ID              uint `gorm:"primaryKey"`
	MonasteryID     uint `gorm:"index;not null"`
	Title           string
	Type            string `gorm:"size:32"` // manuscript | mural | artifact | document
	Description     string `gorm:"size:4096"`
	ImageURL        string `gorm:"size:512"`
	DateCreated     *string
	DigitalizedDate string `gorm:"size:64"`
}

func (ArchiveItem) TableName() string { return "archive_items" }
