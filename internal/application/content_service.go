package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/internal/domain/repository"
	"github.com/sevamart/sevamart-backend/pkg/apperr"
	"github.com/sevamart/sevamart-backend/pkg/helpers"
)

var contentTypes = map[string]bool{"hero": true, "whyUs": true, "ads": true}

// ContentService manages the CMS-style content blocks shown on the
// landing page.
type ContentService struct {
	Repo      repository.ContentRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewContentService(repo repository.ContentRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *ContentService {
	return &ContentService{Repo: repo, GCS: gcs, GCSBucket: gcsBucket, Logger: logger}
}

func (s *ContentService) List() ([]*entity.ContentBlock, error) {
	return s.Repo.ListActive()
}

func (s *ContentService) Get(blockType string) (*entity.ContentBlock, error) {
	b, err := s.Repo.GetByType(blockType)
	if err != nil || b == nil {
		return nil, apperr.NotFound("content block not found")
	}
	return b, nil
}

type ContentInput struct {
	Type     string
	Title    string
	Subtitle string
	Body     string
	IsActive *bool
}

// Upsert writes the block for its type, creating it on first write.
func (s *ContentService) Upsert(ctx context.Context, in ContentInput, image io.Reader, filename, contentType string) (*entity.ContentBlock, error) {
	if !contentTypes[in.Type] {
		return nil, apperr.Validation("type must be one of hero, whyUs, ads")
	}
	b := &entity.ContentBlock{
		Type:     in.Type,
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Body:     in.Body,
		IsActive: true,
	}
	if in.IsActive != nil {
		b.IsActive = *in.IsActive
	}
	if existing, err := s.Repo.GetByType(in.Type); err == nil && existing != nil {
		b.ImageURL = existing.ImageURL
	}
	if image != nil {
		if s.GCS == nil || s.GCSBucket == "" {
			return nil, errors.New("gcs not configured")
		}
		ext := strings.ToLower(filepath.Ext(filename))
		objectPath := filepath.ToSlash(filepath.Join("content", in.Type, uuid.NewString()+ext))
		url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, image)
		if err != nil {
			return nil, err
		}
		b.ImageURL = url
	}
	if err := s.Repo.Upsert(b); err != nil {
		return nil, err
	}
	return b, nil
}
