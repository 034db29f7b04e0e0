package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/internal/domain/repository"
	"github.com/sevamart/sevamart-backend/pkg/apperr"
	"github.com/sevamart/sevamart-backend/pkg/helpers"
)

// CatalogService manages categories and services. Services are mirrored
// into an Elasticsearch index for search; indexing is best effort and
// never fails the write.
type CatalogService struct {
	Categories repository.CategoryRepository
	Services   repository.ServiceRepository
	GCS        *storage.Client
	GCSBucket  string
	ES         *elasticsearch.Client
	ESIndex    string
	Logger     *logrus.Logger
}

func NewCatalogService(categories repository.CategoryRepository, services repository.ServiceRepository, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		Categories: categories,
		Services:   services,
		GCS:        gcs,
		GCSBucket:  gcsBucket,
		ES:         es,
		ESIndex:    esIndex,
		Logger:     logger,
	}
}

type CategoryInput struct {
	Name        string
	Description string
	IsActive    *bool
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (*entity.Category, error) {
	if in.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	c := &entity.Category{Name: in.Name, Description: in.Description, IsActive: true}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if err := s.Categories.Create(c); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperr.Validation("category name already exists")
		}
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) GetCategory(id string) (*entity.Category, error) {
	c, err := s.Categories.GetByID(id)
	if err != nil || c == nil {
		return nil, apperr.NotFound("category not found")
	}
	return c, nil
}

func (s *CatalogService) ListCategories(includeInactive bool) ([]*entity.Category, error) {
	return s.Categories.List(includeInactive)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id string, in CategoryInput) (*entity.Category, error) {
	c, err := s.Categories.GetByID(id)
	if err != nil || c == nil {
		return nil, apperr.NotFound("category not found")
	}
	if in.Name != "" {
		c.Name = in.Name
	}
	if in.Description != "" {
		c.Description = in.Description
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if err := s.Categories.Update(c); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperr.Validation("category name already exists")
		}
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.Categories.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("category not found")
		}
		return err
	}
	return nil
}

type ServiceInput struct {
	Name        string
	Description string
	CategoryID  string
	MinPrice    *float64
	IsActive    *bool
}

func (s *CatalogService) CreateService(ctx context.Context, in ServiceInput) (*entity.Service, error) {
	if in.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	svc := &entity.Service{Name: in.Name, Description: in.Description, IsActive: true}
	if in.CategoryID != "" {
		c, err := s.Categories.GetByID(in.CategoryID)
		if err != nil || c == nil {
			return nil, apperr.Validation("category does not exist")
		}
		svc.CategoryID = c.ID
		svc.CategoryName = c.Name
	}
	if in.MinPrice != nil {
		svc.MinPrice = *in.MinPrice
	}
	if in.IsActive != nil {
		svc.IsActive = *in.IsActive
	}
	if err := s.Services.Create(svc); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperr.Validation("service name already exists")
		}
		return nil, err
	}
	s.indexService(ctx, svc)
	return svc, nil
}

func (s *CatalogService) GetService(id string) (*entity.Service, error) {
	svc, err := s.Services.GetByID(id)
	if err != nil || svc == nil {
		return nil, apperr.NotFound("service not found")
	}
	return svc, nil
}

func (s *CatalogService) ListServices(includeInactive bool) ([]*entity.Service, error) {
	return s.Services.List(includeInactive)
}

func (s *CatalogService) UpdateService(ctx context.Context, id string, in ServiceInput) (*entity.Service, error) {
	svc, err := s.Services.GetByID(id)
	if err != nil || svc == nil {
		return nil, apperr.NotFound("service not found")
	}
	if in.Name != "" {
		svc.Name = in.Name
	}
	if in.Description != "" {
		svc.Description = in.Description
	}
	if in.CategoryID != "" {
		c, err := s.Categories.GetByID(in.CategoryID)
		if err != nil || c == nil {
			return nil, apperr.Validation("category does not exist")
		}
		svc.CategoryID = c.ID
		svc.CategoryName = c.Name
	}
	if in.MinPrice != nil {
		svc.MinPrice = *in.MinPrice
	}
	if in.IsActive != nil {
		svc.IsActive = *in.IsActive
	}
	if err := s.Services.Update(svc); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperr.Validation("service name already exists")
		}
		return nil, err
	}
	s.indexService(ctx, svc)
	return svc, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, id string) error {
	if err := s.Services.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("service not found")
		}
		return err
	}
	s.deleteFromIndex(ctx, id)
	return nil
}

// UploadServiceImage stores a catalog image in GCS and records its URL.
func (s *CatalogService) UploadServiceImage(ctx context.Context, id string, r io.Reader, filename, contentType string) (*entity.Service, error) {
	svc, err := s.Services.GetByID(id)
	if err != nil || svc == nil {
		return nil, apperr.NotFound("service not found")
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("services", id, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}
	svc.ImageURL = url
	if err := s.Services.Update(svc); err != nil {
		return nil, err
	}
	s.indexService(ctx, svc)
	return svc, nil
}

func (s *CatalogService) indexService(ctx context.Context, svc *entity.Service) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          svc.ID,
		"name":        svc.Name,
		"description": svc.Description,
		"category":    svc.CategoryName,
		"min_price":   svc.MinPrice,
		"is_active":   svc.IsActive,
		"updated_at":  svc.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: svc.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("service_id", svc.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("service_id", svc.ID).Warn("es index response error")
	}
}

func (s *CatalogService) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("service_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// SearchServices performs a multi_match query on name, description and
// category.
func (s *CatalogService) SearchServices(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description", "category"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
