package api

import (
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"monastery360/backend/go/internal/assistant/retriever"
	"monastery360/backend/go/internal/media"
	"monastery360/backend/go/internal/models"
	"monastery360/backend/go/internal/routing/geo"
	"monastery360/backend/go/internal/tts"
	"monastery360/backend/go/internal/visitor_service/service"
	"monastery360/backend/go/internal/visitor_service/store"
	"monastery360/backend/go/pkg/logger"
)

// Handler carries the dependencies of every visitor-service endpoint.
type Handler struct {
	svc *service.Service
	log *logger.Logger
}

// NewHandler creates a new Handler.
func NewHandler(svc *service.Service, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Health is the root liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Monastery360 Backend Running!"})
}

func (h *Handler) monasteryID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid monastery id"})
		return 0, false
	}
	return uint(id), true
}

// respondMonastery reloads the site with relations and writes the
// serialized form; every mutation endpoint answers this way.
func (h *Handler) respondMonastery(c *gin.Context, id uint) {
	monastery, err := h.svc.Store().GetMonastery(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Monastery not found"})
			return
		}
		h.log.WithError(err).Error("failed to load monastery")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load monastery"})
		return
	}
	c.JSON(http.StatusOK, serializeMonastery(h.svc, monastery))
}

// ListMonasteries returns every site with relations.
func (h *Handler) ListMonasteries(c *gin.Context) {
	monasteries, err := h.svc.Store().ListMonasteries()
	if err != nil {
		h.log.WithError(err).Error("failed to list monasteries")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list monasteries"})
		return
	}

	out := make([]monasteryDTO, 0, len(monasteries))
	for i := range monasteries {
		out = append(out, serializeMonastery(h.svc, &monasteries[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GetMonastery returns one site by id.
func (h *Handler) GetMonastery(c *gin.Context) {
	id, ok := h.monasteryID(c)
	if !ok {
		return
	}
	h.respondMonastery(c, id)
}

// CreateMonastery registers a new site.
func (h *Handler) CreateMonastery(c *gin.Context) {
	var payload struct {
		Name     string `json:"name" binding:"required"`
		Location string `json:"location" binding:"required"`
		Founded  string `json:"founded" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	monastery := &models.Monastery{
		Name:     payload.Name,
		Location: payload.Location,
		Founded:  payload.Founded,
	}
	if err := h.svc.Store().CreateMonastery(monastery); err != nil {
		h.log.WithError(err).Error("failed to create monastery")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create monastery"})
		return
	}
	h.respondMonastery(c, monastery.ID)
}

// UpsertInfo creates or replaces a site's extended profile.
func (h *Handler) UpsertInfo(c *gin.Context) {
	id, ok := h.monasteryID(c)
	if !ok {
		return
	}

	var payload struct {
		District         *string  `json:"district"`
		Latitude         *float64 `json:"latitude"`
		Longitude        *float64 `json:"longitude"`
		FoundingYear     *int     `json:"founding_year"`
		Description      *string  `json:"description"`
		Significance     *string  `json:"significance"`
		AudioIntro       *string  `json:"audio_intro"`
		AudioDurationMin *int     `json:"audio_duration_min"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if ok, err := h.svc.Store().MonasteryExists(id); err != nil || !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Monastery not found"})
		return
	}

	info := &models.MonasteryInfo{
		District:         payload.District,
		Latitude:         payload.Latitude,
		Longitude:        payload.Longitude,
		FoundingYear:     payload.FoundingYear,
		Description:      payload.Description,
		Significance:     payload.Significance,
		AudioIntro:       payload.AudioIntro,
		AudioDurationMin: payload.AudioDurationMin,
	}
	if err := h.svc.Store().UpsertInfo(id, info); err != nil {
		h.log.WithError(err).Error("failed to upsert monastery info")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save info"})
		return
	}
	h.respondMonastery(c, id)
}

// AddEvent attaches an event to a site.
func (h *Handler) AddEvent(c *gin.Context) {
	id, ok := h.monasteryID(c)
	if !ok {
		return
	}

	var payload struct {
		Title           string `json:"title" binding:"required"`
		Date            string `json:"date"`
		Time            string `json:"time"`
		Description     string `json:"description"`
		Type            string `json:"type"`
		CanBook         bool   `json:"can_book"`
		MaxParticipants *int   `json:"max_participants"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if ok, err := h.svc.Store().MonasteryExists(id); err != nil || !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Monastery not found"})
		return
	}

	event := &models.Event{
		Title:           payload.Title,
		Date:            payload.Date,
		Time:            payload.Time,
		Description:     payload.Description,
		Type:            payload.Type,
		CanBook:         payload.CanBook,
		MaxParticipants: payload.MaxParticipants,
	}
	if err := h.svc.Store().AddEvent(id, event); err != nil {
		h.log.WithError(err).Error("failed to add event")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add event"})
		return
	}
	h.respondMonastery(c, id)
}

// AddArchive attaches an archive item to a site.
func (h *Handler) AddArchive(c *gin.Context) {
	id, ok := h.monasteryID(c)
	if !ok {
		return
	}

	var payload struct {
		Title           string  `json:"title" binding:"required"`
		Type            string  `json:"type"`
		Description     string  `json:"description"`
		ImageURL        string  `json:"image_url"`
		DateCreated     *string `json:"date_created"`
		DigitalizedDate string  `json:"digitalized_date"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if ok, err := h.svc.Store().MonasteryExists(id); err != nil || !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Monastery not found"})
		return
	}

	item := &models.ArchiveItem{
		Title:           payload.Title,
		Type:            payload.Type,
		Description:     payload.Description,
		ImageURL:        payload.ImageURL,
		DateCreated:     payload.DateCreated,
		DigitalizedDate: payload.DigitalizedDate,
	}
	if err := h.svc.Store().AddArchive(id, item); err != nil {
		h.log.WithError(err).Error("failed to add archive item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add archive item"})
		return
	}
	h.respondMonastery(c, id)
}

// AddHighlight attaches an audio highlight to a site.
func (h *Handler) AddHighlight(c *gin.Context) {
	id, ok := h.monasteryID(c)
	if !ok {
		return
	}

	var payload struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		DurationSec int    `json:"duration_sec"`
		Location    string `json:"location"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if ok, err := h.svc.Store().MonasteryExists(id); err != nil || !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Monastery not found"})
		return
	}

	highlight := &models.AudioHighlight{
		Title:       payload.Title,
		Description: payload.Description,
		DurationSec: payload.DurationSec,
		Location:    payload.Location,
	}
	if err := h.svc.Store().AddHighlight(id, highlight); err != nil {
		h.log.WithError(err).Error("failed to add audio highlight")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add highlight"})
		return
	}
	h.respondMonastery(c, id)
}

// UploadMedia stores a multipart file against a site.
func (h *Handler) UploadMedia(c *gin.Context) {
	id, ok := h.monasteryID(c)
	if !ok {
		return
	}

	if ok, err := h.svc.Store().MonasteryExists(id); err != nil || !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Monastery not found"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file"})
		return
	}

	title := c.PostForm("title")
	if title == "" {
		title = fileHeader.Filename
	}
	mediaType := c.PostForm("type")
	if mediaType == "" {
		mediaType = "image"
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable file"})
		return
	}
	defer f.Close()

	row, err := h.svc.SaveMedia(c.Request.Context(), id, fileHeader.Filename, f, fileHeader.Size,
		fileHeader.Header.Get("Content-Type"), title, mediaType)
	if err != nil {
		h.log.WithError(err).Error("failed to store media")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store media"})
		return
	}
	c.JSON(http.StatusOK, serializeMedia(h.svc, *row))
}

// GetMedia streams a stored file by name.
func (h *Handler) GetMedia(c *gin.Context) {
	name := c.Param("filename")

	r, err := h.svc.OpenMedia(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		h.log.WithError(err).Error("failed to open media")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open media"})
		return
	}
	defer r.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	// Stream straight from storage; media objects can be large.
	c.DataFromReader(http.StatusOK, -1, contentType, r, nil)
}

// GenerateNarration synthesizes a guided narration for a site.
func (h *Handler) GenerateNarration(c *gin.Context) {
	id, ok := h.monasteryID(c)
	if !ok {
		return
	}

	var payload struct {
		Title  string `json:"title"`
		Voice  string `json:"voice"`
		Script string `json:"script"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	row, err := h.svc.GenerateNarration(c.Request.Context(), id, payload.Title, payload.Voice, payload.Script)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Monastery not found"})
		case errors.Is(err, tts.ErrUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "No speech backend available"})
		default:
			h.log.WithError(err).Error("narration synthesis failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to synthesize narration"})
		}
		return
	}
	c.JSON(http.StatusOK, serializeMedia(h.svc, *row))
}

// Narrate synthesizes arbitrary text to audio.
func (h *Handler) Narrate(c *gin.Context) {
	var payload struct {
		Text  string `json:"text" binding:"required"`
		Lang  string `json:"lang"`
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	name, err := h.svc.Narrate(c.Request.Context(), payload.Text, "")
	if err != nil {
		if errors.Is(err, tts.ErrUnavailable) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "No speech backend available"})
			return
		}
		h.log.WithError(err).Error("narration synthesis failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to synthesize narration"})
		return
	}

	title := payload.Title
	if title == "" {
		title = "Narration"
	}
	c.JSON(http.StatusOK, gin.H{
		"file_url": h.svc.MediaURL(name),
		"title":    title,
		"lang":     payload.Lang,
	})
}

// Ingest rebuilds the retrieval index from the database.
func (h *Handler) Ingest(c *gin.Context) {
	count, err := h.svc.IngestKnowledge(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("knowledge ingest failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest knowledge"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// Qna answers a visitor question over the indexed corpus.
func (h *Handler) Qna(c *gin.Context) {
	var payload struct {
		Question   string `json:"question" binding:"required"`
		TopK       *int   `json:"top_k"`
		TargetLang string `json:"target_lang"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	topK := 5
	if payload.TopK != nil {
		topK = *payload.TopK
	}

	answer, citations, err := h.svc.Qna(c.Request.Context(), payload.Question, topK, payload.TargetLang)
	if err != nil {
		if errors.Is(err, retriever.ErrEmptyIndex) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Knowledge index is empty, run ingest first"})
			return
		}
		h.log.WithError(err).Error("qna failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to answer question"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer, "citations": citations})
}

// Route plans a visit itinerary under a time budget.
func (h *Handler) Route(c *gin.Context) {
	var payload struct {
		Question        string   `json:"question"`
		DurationMinutes *int     `json:"duration_minutes"`
		StartLat        *float64 `json:"start_lat"`
		StartLng        *float64 `json:"start_lng"`
		TransportMode   string   `json:"transport_mode"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	budget := 90
	if payload.DurationMinutes != nil {
		budget = *payload.DurationMinutes
	}
	mode := geo.ModeFoot
	if payload.TransportMode != "" {
		mode = geo.Mode(payload.TransportMode)
	}

	itinerary, err := h.svc.PlanRoute(c.Request.Context(), budget, payload.StartLat, payload.StartLng, mode)
	if err != nil {
		h.log.WithError(err).Error("route planning failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to plan route"})
		return
	}
	c.JSON(http.StatusOK, itinerary)
}

// ListQaCache exposes the answer cache for inspection.
func (h *Handler) ListQaCache(c *gin.Context) {
	items, err := h.svc.CacheEntries(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("failed to list qa cache")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list cache"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// ClearQaCache wipes the answer cache.
func (h *Handler) ClearQaCache(c *gin.Context) {
	deleted, err := h.svc.ClearCache(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("failed to clear qa cache")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cache"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
