package api

import "github.com/gin-gonic/gin"

// SetupRouter configures and returns a Gin engine for the visitor
// service.
func SetupRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	r.GET("/", h.Health)
	r.GET("/media/:filename", h.GetMedia)

	monasteries := r.Group("/monasteries")
	{
		monasteries.GET("", h.ListMonasteries)
		monasteries.POST("", h.CreateMonastery)
		monasteries.GET("/:id", h.GetMonastery)
		monasteries.POST("/:id/info", h.UpsertInfo)
		monasteries.POST("/:id/events", h.AddEvent)
		monasteries.POST("/:id/archives", h.AddArchive)
		monasteries.POST("/:id/audio_highlights", h.AddHighlight)
		monasteries.POST("/:id/media", h.UploadMedia)
		monasteries.POST("/:id/narration", h.GenerateNarration)
	}

	ai := r.Group("/ai")
	{
		ai.POST("/ingest", h.Ingest)
		ai.POST("/qna", h.Qna)
		ai.POST("/route", h.Route)
		ai.POST("/narrate", h.Narrate)
	}

	admin := r.Group("/admin")
	{
		admin.GET("/qa_cache", h.ListQaCache)
		admin.POST("/qa_cache/clear", h.ClearQaCache)
	}

	return r
}
