package repository

import "github.com/sevamart/sevamart-backend/internal/domain/entity"

// ContentRepository defines database operations for CMS content blocks.
type ContentRepository interface {
	// Upsert inserts or replaces the block for its type.
	Upsert(b *entity.ContentBlock) error
	GetByType(blockType string) (*entity.ContentBlock, error)
	ListActive() ([]*entity.ContentBlock, error)
}
