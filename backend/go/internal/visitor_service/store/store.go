package store

import (
	"errors"

	"gorm.io/gorm"

	"monastery360/backend/go/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store wraps all visitor-service database operations.
type Store struct {
	DB *gorm.DB
}

// NewStore creates a new Store instance.
func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// AutoMigrate creates or updates the visitor-service tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Monastery{},
		&models.MonasteryInfo{},
		&models.AudioHighlight{},
		&models.Media{},
		&models.Event{},
		&models.ArchiveItem{},
		&models.QaCacheEntry{},
	)
}

// --- Monasteries ---

// ListMonasteries returns all sites with their relations preloaded.
func (s *Store) ListMonasteries() ([]models.Monastery, error) {
	var monasteries []models.Monastery
	err := s.DB.
		Preload("Media").
		Preload("Info").
		Preload("Events").
		Preload("Archives").
		Preload("Highlights").
		Order("id").
		Find(&monasteries).Error
	if err != nil {
		return nil, err
	}
	return monasteries, nil
}

// GetMonastery returns one site with relations, or ErrNotFound.
func (s *Store) GetMonastery(id uint) (*models.Monastery, error) {
	var monastery models.Monastery
	err := s.DB.
		Preload("Media").
		Preload("Info").
		Preload("Events").
		Preload("Archives").
		Preload("Highlights").
		First(&monastery, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &monastery, nil
}

// CreateMonastery inserts a new site record.
func (s *Store) CreateMonastery(m *models.Monastery) error {
	return s.DB.Create(m).Error
}

// UpsertInfo creates or replaces the extended profile of a site.
// One row per monastery, enforced by the unique index.
func (s *Store) UpsertInfo(monasteryID uint, info *models.MonasteryInfo) error {
	info.MonasteryID = monasteryID

	var existing models.MonasteryInfo
	err := s.DB.Where("monastery_id = ?", monasteryID).First(&existing).Error
	switch {
	case err == nil:
		info.ID = existing.ID
		return s.DB.Save(info).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.DB.Create(info).Error
	default:
		return err
	}
}

// --- Attachments ---

// AddEvent attaches an event to a site.
func (s *Store) AddEvent(monasteryID uint, event *models.Event) error {
	event.MonasteryID = monasteryID
	return s.DB.Create(event).Error
}

// AddArchive attaches an archive item to a site.
func (s *Store) AddArchive(monasteryID uint, item *models.ArchiveItem) error {
	item.MonasteryID = monasteryID
	return s.DB.Create(item).Error
}

// AddHighlight attaches an audio highlight to a site.
func (s *Store) AddHighlight(monasteryID uint, highlight *models.AudioHighlight) error {
	highlight.MonasteryID = monasteryID
	return s.DB.Create(highlight).Error
}

// AddMedia records an uploaded or generated media file.
func (s *Store) AddMedia(monasteryID uint, media *models.Media) error {
	media.MonasteryID = monasteryID
	return s.DB.Create(media).Error
}

// --- Cross-site listings ---

// ListEvents returns all events across sites, most recent id first.
func (s *Store) ListEvents() ([]models.Event, error) {
	var events []models.Event
	if err := s.DB.Order("id desc").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// ListArchives returns all archive items across sites.
func (s *Store) ListArchives() ([]models.ArchiveItem, error) {
	var items []models.ArchiveItem
	if err := s.DB.Order("id desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// MonasteryExists reports whether a site id is known.
func (s *Store) MonasteryExists(id uint) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.Monastery{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
