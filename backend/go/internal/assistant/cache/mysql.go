package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"monastery360/backend/go/internal/assistant/schema"
	"monastery360/backend/go/internal/models"
)

// MySQLCache persists answers in the qa_cache table. The unique
// (question_hash, lang) index plus an upsert makes concurrent writers
// for one key resolve last-write-wins without any locking here.
type MySQLCache struct {
	db *gorm.DB
}

// NewMySQLCache creates a MySQLCache on an existing connection.
func NewMySQLCache(db *gorm.DB) *MySQLCache {
	return &MySQLCache{db: db}
}

// Get looks up the exact (question, language) key.
func (c *MySQLCache) Get(ctx context.Context, question, lang string) (*Entry, bool) {
	var row models.QaCacheEntry
	err := c.db.WithContext(ctx).
		Where("question_hash = ? AND lang = ?", questionHash(question), lang).
		First(&row).Error
	if err != nil {
		// Unreachable storage counts as a miss; the pipeline will
		// produce a fresh answer.
		return nil, false
	}

	return &Entry{
		Question:  row.Question,
		Lang:      row.Lang,
		Answer:    row.Answer,
		Citations: decodeCitations(row.Citations),
		CreatedAt: row.CreatedAt,
	}, true
}

// Put upserts the answer under the (question, language) key.
func (c *MySQLCache) Put(ctx context.Context, question, lang, answer string, citations []schema.Citation) error {
	raw, err := json.Marshal(citations)
	if err != nil {
		return fmt.Errorf("failed to encode citations: %w", err)
	}

	row := models.QaCacheEntry{
		QuestionHash: questionHash(question),
		Lang:         lang,
		Question:     question,
		Answer:       answer,
		Citations:    datatypes.JSON(raw),
	}

	return c.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "question_hash"}, {Name: "lang"}},
			UpdateAll: true,
		}).
		Create(&row).Error
}

// List returns all cached entries, oldest first.
func (c *MySQLCache) List(ctx context.Context) ([]ListItem, error) {
	var rows []models.QaCacheEntry
	if err := c.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]ListItem, len(rows))
	for i, row := range rows {
		items[i] = ListItem{
			ID:        row.ID,
			Question:  row.Question,
			Lang:      row.Lang,
			CreatedAt: row.CreatedAt,
		}
	}
	return items, nil
}

// Clear deletes every cached entry.
func (c *MySQLCache) Clear(ctx context.Context) (int64, error) {
	result := c.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.QaCacheEntry{})
	return result.RowsAffected, result.Error
}

var _ AnswerCache = (*MySQLCache)(nil)
