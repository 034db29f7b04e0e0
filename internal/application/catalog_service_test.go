package application

import (
	"context"
	"testing"

	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/pkg/apperr"
)

func newCatalogService() (*CatalogService, *memCategoryRepo, *memServiceRepo) {
	categories := newMemCategoryRepo()
	services := newMemServiceRepo()
	return NewCatalogService(categories, services, nil, "", nil, "", nil), categories, services
}

func TestCreateCategoryDefaultsActive(t *testing.T) {
	svc, _, _ := newCatalogService()

	c, err := svc.CreateCategory(context.Background(), CategoryInput{Name: "Plumbing"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !c.IsActive {
		t.Error("new category should be active")
	}

	if _, err := svc.CreateCategory(context.Background(), CategoryInput{}); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("empty name: got %v, want validation error", err)
	}
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	svc, _, _ := newCatalogService()
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, CategoryInput{Name: "Plumbing"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.CreateCategory(ctx, CategoryInput{Name: "Plumbing"})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("duplicate: got %v, want validation error", err)
	}
}

func TestDeleteCategoryNotFound(t *testing.T) {
	svc, _, _ := newCatalogService()
	if err := svc.DeleteCategory(context.Background(), "ghost"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("missing category: got %v, want not found", err)
	}
}

func TestCreateServiceLinksCategory(t *testing.T) {
	svc, _, _ := newCatalogService()
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, CategoryInput{Name: "Cleaning"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	s, err := svc.CreateService(ctx, ServiceInput{Name: "Deep Cleaning", CategoryID: cat.ID})
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	if s.CategoryID != cat.ID || s.CategoryName != "Cleaning" {
		t.Errorf("category link = (%q, %q)", s.CategoryID, s.CategoryName)
	}

	_, err = svc.CreateService(ctx, ServiceInput{Name: "Orphan", CategoryID: "ghost"})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("unknown category: got %v, want validation error", err)
	}
}

func TestListServicesFiltersInactive(t *testing.T) {
	svc, _, services := newCatalogService()
	ctx := context.Background()

	if _, err := svc.CreateService(ctx, ServiceInput{Name: "Visible"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	inactive := false
	if _, err := svc.CreateService(ctx, ServiceInput{Name: "Hidden", IsActive: &inactive}); err != nil {
		t.Fatalf("create hidden: %v", err)
	}

	public, err := svc.ListServices(false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(public) != 1 {
		t.Errorf("public list = %d services, want 1", len(public))
	}

	all, err := svc.ListServices(true)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("admin list = %d services, want 2", len(all))
	}
	if n := len(services.services); n != 2 {
		t.Errorf("stored = %d", n)
	}
}

func TestUpdateServiceRelink(t *testing.T) {
	svc, _, _ := newCatalogService()
	ctx := context.Background()

	catA, _ := svc.CreateCategory(ctx, CategoryInput{Name: "A"})
	catB, _ := svc.CreateCategory(ctx, CategoryInput{Name: "B"})
	s, err := svc.CreateService(ctx, ServiceInput{Name: "Svc", CategoryID: catA.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateService(ctx, s.ID, ServiceInput{CategoryID: catB.ID})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.CategoryID != catB.ID || updated.CategoryName != "B" {
		t.Errorf("relink = (%q, %q)", updated.CategoryID, updated.CategoryName)
	}
}

func TestDeleteServiceNotFound(t *testing.T) {
	svc, _, _ := newCatalogService()
	if err := svc.DeleteService(context.Background(), "ghost"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("missing service: got %v, want not found", err)
	}
}

func TestSearchWithoutESReturnsEmpty(t *testing.T) {
	svc, _, _ := newCatalogService()
	hits, err := svc.SearchServices(context.Background(), "cleaning", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("got %d hits with no index configured", len(hits))
	}
}

func TestContentUpsertValidatesType(t *testing.T) {
	content := newMemContentRepo()
	svc := NewContentService(content, nil, "", nil)
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, ContentInput{Type: "footer"}, nil, "", ""); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("bad type: got %v, want validation error", err)
	}

	b, err := svc.Upsert(ctx, ContentInput{Type: "hero", Title: "Welcome"}, nil, "", "")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !b.IsActive {
		t.Error("block should default active")
	}
}

func TestContentUpsertPreservesImage(t *testing.T) {
	content := newMemContentRepo()
	svc := NewContentService(content, nil, "", nil)
	ctx := context.Background()

	seed := &entity.ContentBlock{Type: "hero", Title: "v1", ImageURL: "https://img/hero.png", IsActive: true}
	if err := content.Upsert(seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	b, err := svc.Upsert(ctx, ContentInput{Type: "hero", Title: "v2"}, nil, "", "")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if b.ImageURL != "https://img/hero.png" {
		t.Errorf("image url lost on text-only update: %q", b.ImageURL)
	}
	if b.Title != "v2" {
		t.Errorf("title = %q", b.Title)
	}

	got, err := svc.Get("hero")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "v2" {
		t.Errorf("stored title = %q", got.Title)
	}
	if _, err := svc.Get("ads"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("missing block: got %v, want not found", err)
	}
}
