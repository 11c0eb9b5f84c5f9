package api

import (
	"monastery360/backend/go/internal/models"
	"monastery360/backend/go/internal/visitor_service/service"
)

// The JSON shapes below follow the visitor frontend's expectations:
// snake_case for media and top-level fields, camelCase inside info,
// events and archiveItems.

type mediaDTO struct {
	Title   string `json:"title"`
	Type    string `json:"type"`
	FileURL string `json:"file_url"`
}

type coordinatesDTO struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type highlightDTO struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Location    string `json:"location"`
}

type audioGuideDTO struct {
	Introduction *string        `json:"introduction"`
	Duration     int            `json:"duration"`
	Highlights   []highlightDTO `json:"highlights"`
}

type infoDTO struct {
	District     *string        `json:"district"`
	Coordinates  coordinatesDTO `json:"coordinates"`
	FoundingYear *int           `json:"foundingYear"`
	Description  *string        `json:"description"`
	Significance *string        `json:"significance"`
	AudioGuide   audioGuideDTO  `json:"audioGuide"`
}

type eventDTO struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Description     string `json:"description"`
	Type            string `json:"type"`
	CanBook         bool   `json:"canBook"`
	MaxParticipants *int   `json:"maxParticipants"`
}

type archiveDTO struct {
	ID              uint    `json:"id"`
	Title           string  `json:"title"`
	Type            string  `json:"type"`
	Description     string  `json:"description"`
	ImageURL        string  `json:"imageUrl"`
	DateCreated     *string `json:"dateCreated"`
	DigitalizedDate string  `json:"digitalizedDate"`
}

type monasteryDTO struct {
	ID       uint         `json:"id"`
	Name     string       `json:"name"`
	Location string       `json:"location"`
	Founded  string       `json:"founded"`
	Media    []mediaDTO   `json:"media"`
	Info     *infoDTO     `json:"info"`
	Events   []eventDTO   `json:"events"`
	Archives []archiveDTO `json:"archiveItems"`
}

func serializeMedia(svc *service.Service, m models.Media) mediaDTO {
	return mediaDTO{
		Title:   m.Title,
		Type:    m.Type,
		FileURL: svc.MediaURL(m.FilePath),
	}
}

func serializeMonastery(svc *service.Service, m *models.Monastery) monasteryDTO {
	dto := monasteryDTO{
		ID:       m.ID,
		Name:     m.Name,
		Location: m.Location,
		Founded:  m.Founded,
		Media:    make([]mediaDTO, 0, len(m.Media)),
		Events:   make([]eventDTO, 0, len(m.Events)),
		Archives: make([]archiveDTO, 0, len(m.Archives)),
	}

	for _, md := range m.Media {
		dto.Media = append(dto.Media, serializeMedia(svc, md))
	}

	if m.Info != nil {
		duration := 0
		if m.Info.AudioDurationMin != nil {
			duration = *m.Info.AudioDurationMin
		}
		highlights := make([]highlightDTO, 0, len(m.Highlights))
		for _, h := range m.Highlights {
			highlights = append(highlights, highlightDTO{
				ID:          h.ID,
				Title:       h.Title,
				Description: h.Description,
				Duration:    h.DurationSec,
				Location:    h.Location,
			})
		}
		dto.Info = &infoDTO{
			District:     m.Info.District,
			Coordinates:  coordinatesDTO{Lat: m.Info.Latitude, Lng: m.Info.Longitude},
			FoundingYear: m.Info.FoundingYear,
			Description:  m.Info.Description,
			Significance: m.Info.Significance,
			AudioGuide: audioGuideDTO{
				Introduction: m.Info.AudioIntro,
				Duration:     duration,
				Highlights:   highlights,
			},
		}
	}

	for _, e := range m.Events {
		dto.Events = append(dto.Events, eventDTO{
			ID:              e.ID,
			Title:           e.Title,
			Date:            e.Date,
			Time:            e.Time,
			Description:     e.Description,
			Type:            e.Type,
			CanBook:         e.CanBook,
			MaxParticipants: e.MaxParticipants,
		})
	}

	for _, a := range m.Archives {
		dto.Archives = append(dto.Archives, archiveDTO{
			ID:              a.ID,
			Title:           a.Title,
			Type:            a.Type,
			Description:     a.Description,
			ImageURL:        a.ImageURL,
			DateCreated:     a.DateCreated,
			DigitalizedDate: a.DigitalizedDate,
		})
	}

	return dto
}
