package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monastery360/backend/go/internal/assistant/cache"
	"monastery360/backend/go/internal/assistant/pipeline"
	"monastery360/backend/go/internal/assistant/retriever"
	"monastery360/backend/go/internal/assistant/schema"
	"monastery360/backend/go/internal/assistant/vectorstore"
	"monastery360/backend/go/internal/config"
	"monastery360/backend/go/internal/media"
	"monastery360/backend/go/internal/routing/directions"
	"monastery360/backend/go/internal/routing/planner"
	"monastery360/backend/go/internal/translation"
	"monastery360/backend/go/internal/visitor_service/service"
	"monastery360/backend/go/internal/visitor_service/store"
	"monastery360/backend/go/pkg/logger"
)

// newTestRouter wires the endpoints that run without a database: the
// health probe and the assistant flow over an in-memory index and cache.
func newTestRouter(docs []schema.Document) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.New("test")

	index := vectorstore.NewStore()
	index.Rebuild(docs)

	ret := retriever.NewRetriever(nil, index, log)
	answerCache := cache.NewMemoryCache()
	translator := translation.NewTranslator(nil, "en", log)
	qna := pipeline.NewQnAPipeline(answerCache, ret, nil, translator, log)

	chain := directions.NewChain(log, directions.NewGeometricProvider())
	routePlanner := planner.New(chain, log)

	cfg := &config.AppConfig{}
	svc := service.NewService(cfg, store.NewStore(nil), nil, index, qna, answerCache, routePlanner, nil, nil, log)
	return SetupRouter(NewHandler(svc, log))
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router := newTestRouter(nil)

	w := doJSON(t, router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Monastery360 Backend Running!"}`, w.Body.String())
}

func TestQnaEmptyIndex(t *testing.T) {
	router := newTestRouter(nil)

	w := doJSON(t, router, http.MethodPost, "/ai/qna", `{"question": "When was Hemis founded?"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQnaMissingQuestion(t *testing.T) {
	router := newTestRouter(nil)

	w := doJSON(t, router, http.MethodPost, "/ai/qna", `{"top_k": 3}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQnaAnswersFromIndex(t *testing.T) {
	router := newTestRouter([]schema.Document{
		{DocType: schema.DocTypeSite, DocID: 1, Title: "Hemis", Content: "founded 1672"},
	})

	w := doJSON(t, router, http.MethodPost, "/ai/qna", `{"question": "hemis", "top_k": 1}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Answer    string `json:"answer"`
		Citations []struct {
			DocType string `json:"doc_type"`
			DocID   uint   `json:"doc_id"`
			Title   string `json:"title"`
		} `json:"citations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// No generator configured: the answer is the retrieved context.
	assert.Equal(t, "[site:1] Hemis\nfounded 1672", resp.Answer)
	require.Len(t, resp.Citations, 1)
	assert.Equal(t, "site", resp.Citations[0].DocType)
	assert.Equal(t, uint(1), resp.Citations[0].DocID)
}

func TestQnaSecondCallHitsCache(t *testing.T) {
	router := newTestRouter([]schema.Document{
		{DocType: schema.DocTypeSite, DocID: 1, Title: "Hemis", Content: "founded 1672"},
	})

	first := doJSON(t, router, http.MethodPost, "/ai/qna", `{"question": "hemis"}`)
	require.Equal(t, http.StatusOK, first.Code)

	second := doJSON(t, router, http.MethodPost, "/ai/qna", `{"question": "hemis"}`)
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	// The admin listing shows exactly one entry for the repeated question.
	list := doJSON(t, router, http.MethodGet, "/admin/qa_cache", "")
	require.Equal(t, http.StatusOK, list.Code)
	var items []map[string]any
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &items))
	assert.Len(t, items, 1)
}

// newMediaRouter wires a router over a disk-backed media storage.
func newMediaRouter(t *testing.T) (*gin.Engine, media.Storage) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.New("test")

	storage, err := media.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	cfg := &config.AppConfig{}
	svc := service.NewService(cfg, store.NewStore(nil), nil, nil, nil, nil, nil, nil, storage, log)
	return SetupRouter(NewHandler(svc, log)), storage
}

func TestGetMediaStreamsStoredFile(t *testing.T) {
	router, storage := newMediaRouter(t)

	body := strings.Repeat("panorama bytes ", 1024)
	require.NoError(t, storage.Save(context.Background(), "tour.jpg",
		strings.NewReader(body), int64(len(body)), "image/jpeg"))

	w := doJSON(t, router, http.MethodGet, "/media/tour.jpg", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, body, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "image/jpeg")
}

func TestGetMediaMissingFile(t *testing.T) {
	router, _ := newMediaRouter(t)

	w := doJSON(t, router, http.MethodGet, "/media/nope.mp3", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearQaCache(t *testing.T) {
	router := newTestRouter([]schema.Document{
		{DocType: schema.DocTypeSite, DocID: 1, Title: "Hemis", Content: "founded 1672"},
	})

	doJSON(t, router, http.MethodPost, "/ai/qna", `{"question": "hemis"}`)

	w := doJSON(t, router, http.MethodPost, "/admin/qa_cache/clear", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted": 1}`, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/admin/qa_cache/clear", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted": 0}`, w.Body.String())
}
