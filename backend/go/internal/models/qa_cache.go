package models

import (
	"time"

	"gorm.io/datatypes"
)

// QaCacheEntry is one cached answer for an exact (question, language)
// pair. Entries are written once on a cache miss and never evicted;
// concurrent writers for the same key resolve last-write-wins via the
// unique (question_hash, lang) index.
type QaCacheEntry struct {
	ID           uint   `gorm:"primaryKey"`
	QuestionHash string `gorm:"index:idx_question_lang,unique;not null;size:64"` // sha-256 of the verbatim question
	Lang         string `gorm:"index:idx_question_lang,unique;not null;size:16"`
	Question     string `gorm:"size:4096"` // verbatim question text, no normalization
	Answer       string `gorm:"type:text"`
	Citations    datatypes.JSON
	CreatedAt    time.Time
}

func (QaCacheEntry) TableName() string { return "qa_cache" }
