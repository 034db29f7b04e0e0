package application

import (
	"fmt"
	"strings"
	"time"

	"github.com/sevamart/sevamart-backend/internal/domain/entity"
	"github.com/sevamart/sevamart-backend/internal/domain/repository"
)

// In-memory repository fakes for workflow tests. They reproduce the
// sentinel-error contract of the postgres implementations: ErrNotFound
// for missing rows, ErrConflict for unique violations.

type memUserRepo struct {
	seq   int
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(u *entity.User) error {
	for _, e := range r.users {
		if e.Email == u.Email {
			return repository.ErrConflict
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) Update(u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) List(role entity.Role) ([]*entity.User, error) {
	out := []*entity.User{}
	for _, u := range r.users {
		if role == "" || u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memUserRepo) ListActiveIDs(role entity.Role) ([]string, error) {
	ids := []string{}
	for _, u := range r.users {
		if u.IsActive && (role == "" || u.Role == role) {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

type memBookingRepo struct {
	seq      int
	bookings map[string]*entity.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: map[string]*entity.Booking{}}
}

func (r *memBookingRepo) Create(b *entity.Booking) error {
	r.seq++
	b.ID = fmt.Sprintf("booking-%d", r.seq)
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *memBookingRepo) GetByID(id string) (*entity.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memBookingRepo) ListByCustomer(customerID string) ([]*entity.Booking, error) {
	out := []*entity.Booking{}
	for _, b := range r.bookings {
		if b.CustomerID == customerID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListByVendor(vendorID string) ([]*entity.Booking, error) {
	out := []*entity.Booking{}
	for _, b := range r.bookings {
		if b.VendorID != nil && *b.VendorID == vendorID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListAll() ([]*entity.Booking, error) {
	out := []*entity.Booking{}
	for _, b := range r.bookings {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memBookingRepo) Update(b *entity.Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return repository.ErrNotFound
	}
	b.UpdatedAt = time.Now()
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

type memServiceRepo struct {
	seq      int
	services map[string]*entity.Service
}

func newMemServiceRepo() *memServiceRepo {
	return &memServiceRepo{services: map[string]*entity.Service{}}
}

func (r *memServiceRepo) Create(s *entity.Service) error {
	for _, e := range r.services {
		if e.Name == s.Name {
			return repository.ErrConflict
		}
	}
	r.seq++
	s.ID = fmt.Sprintf("service-%d", r.seq)
	cp := *s
	r.services[s.ID] = &cp
	return nil
}

func (r *memServiceRepo) GetByID(id string) (*entity.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memServiceRepo) List(includeInactive bool) ([]*entity.Service, error) {
	out := []*entity.Service{}
	for _, s := range r.services {
		if includeInactive || s.IsActive {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memServiceRepo) Update(s *entity.Service) error {
	if _, ok := r.services[s.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *s
	r.services[s.ID] = &cp
	return nil
}

func (r *memServiceRepo) Delete(id string) error {
	if _, ok := r.services[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.services, id)
	return nil
}

type memCategoryRepo struct {
	seq        int
	categories map[string]*entity.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: map[string]*entity.Category{}}
}

func (r *memCategoryRepo) Create(c *entity.Category) error {
	for _, e := range r.categories {
		if e.Name == c.Name {
			return repository.ErrConflict
		}
	}
	r.seq++
	c.ID = fmt.Sprintf("category-%d", r.seq)
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memCategoryRepo) List(includeInactive bool) ([]*entity.Category, error) {
	out := []*entity.Category{}
	for _, c := range r.categories {
		if includeInactive || c.IsActive {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memCategoryRepo) Update(c *entity.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) Delete(id string) error {
	if _, ok := r.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

type memSubscriptionRepo struct {
	seq  int
	subs map[string]*entity.Subscription
}

func newMemSubscriptionRepo() *memSubscriptionRepo {
	return &memSubscriptionRepo{subs: map[string]*entity.Subscription{}}
}

func (r *memSubscriptionRepo) activeConflict(s *entity.Subscription) bool {
	if s.Status != entity.SubscriptionActive {
		return false
	}
	for _, e := range r.subs {
		if e.ID != s.ID && e.VendorID == s.VendorID && e.Status == entity.SubscriptionActive {
			return true
		}
	}
	return false
}

func (r *memSubscriptionRepo) Create(s *entity.Subscription) error {
	if r.activeConflict(s) {
		return repository.ErrConflict
	}
	r.seq++
	s.ID = fmt.Sprintf("sub-%d", r.seq)
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	cp := *s
	r.subs[s.ID] = &cp
	return nil
}

func (r *memSubscriptionRepo) GetByID(id string) (*entity.Subscription, error) {
	s, ok := r.subs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memSubscriptionRepo) ListByVendor(vendorID string) ([]*entity.Subscription, error) {
	out := []*entity.Subscription{}
	for _, s := range r.subs {
		if s.VendorID == vendorID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memSubscriptionRepo) ListAll() ([]*entity.Subscription, error) {
	out := []*entity.Subscription{}
	for _, s := range r.subs {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memSubscriptionRepo) Update(s *entity.Subscription) error {
	if _, ok := r.subs[s.ID]; !ok {
		return repository.ErrNotFound
	}
	if r.activeConflict(s) {
		return repository.ErrConflict
	}
	s.UpdatedAt = time.Now()
	cp := *s
	r.subs[s.ID] = &cp
	return nil
}

func (r *memSubscriptionRepo) HasActive(vendorID string) (bool, error) {
	for _, s := range r.subs {
		if s.VendorID == vendorID && s.Status == entity.SubscriptionActive {
			return true, nil
		}
	}
	return false, nil
}

type memPlanRepo struct {
	plans map[entity.PlanTier]*entity.SubscriptionPlan
}

func newMemPlanRepo() *memPlanRepo {
	return &memPlanRepo{plans: map[entity.PlanTier]*entity.SubscriptionPlan{}}
}

func (r *memPlanRepo) List(includeInactive bool) ([]*entity.SubscriptionPlan, error) {
	out := []*entity.SubscriptionPlan{}
	for _, p := range r.plans {
		if includeInactive || p.IsActive {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memPlanRepo) Get(id entity.PlanTier) (*entity.SubscriptionPlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPlanRepo) Update(p *entity.SubscriptionPlan) error {
	if _, ok := r.plans[p.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *p
	r.plans[p.ID] = &cp
	return nil
}

func (r *memPlanRepo) Count() (int, error) {
	return len(r.plans), nil
}

func (r *memPlanRepo) Seed(plans []*entity.SubscriptionPlan) error {
	for _, p := range plans {
		if _, ok := r.plans[p.ID]; ok {
			continue
		}
		cp := *p
		r.plans[p.ID] = &cp
	}
	return nil
}

type memNotificationRepo struct {
	seq   int
	notes map[string]*entity.Notification
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{notes: map[string]*entity.Notification{}}
}

func (r *memNotificationRepo) Create(n *entity.Notification) error {
	r.seq++
	n.ID = fmt.Sprintf("note-%d", r.seq)
	n.CreatedAt = time.Now()
	cp := *n
	r.notes[n.ID] = &cp
	return nil
}

func (r *memNotificationRepo) BulkCreate(ns []*entity.Notification) error {
	for _, n := range ns {
		if err := r.Create(n); err != nil {
			return err
		}
	}
	return nil
}

func (r *memNotificationRepo) GetByID(id string) (*entity.Notification, error) {
	n, ok := r.notes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *memNotificationRepo) ListByUser(userID string) ([]*entity.Notification, error) {
	out := []*entity.Notification{}
	for _, n := range r.notes {
		if n.UserID == userID {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memNotificationRepo) CountUnread(userID string) (int, error) {
	count := 0
	for _, n := range r.notes {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *memNotificationRepo) MarkRead(id string) error {
	n, ok := r.notes[id]
	if !ok {
		return repository.ErrNotFound
	}
	n.IsRead = true
	return nil
}

func (r *memNotificationRepo) MarkAllRead(userID string) error {
	for _, n := range r.notes {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *memNotificationRepo) Delete(id string) error {
	if _, ok := r.notes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.notes, id)
	return nil
}

type memContentRepo struct {
	seq    int
	blocks map[string]*entity.ContentBlock
}

func newMemContentRepo() *memContentRepo {
	return &memContentRepo{blocks: map[string]*entity.ContentBlock{}}
}

func (r *memContentRepo) Upsert(b *entity.ContentBlock) error {
	if existing, ok := r.blocks[b.Type]; ok {
		b.ID = existing.ID
		b.CreatedAt = existing.CreatedAt
	} else {
		r.seq++
		b.ID = fmt.Sprintf("block-%d", r.seq)
		b.CreatedAt = time.Now()
	}
	b.UpdatedAt = time.Now()
	cp := *b
	r.blocks[b.Type] = &cp
	return nil
}

func (r *memContentRepo) GetByType(blockType string) (*entity.ContentBlock, error) {
	b, ok := r.blocks[blockType]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memContentRepo) ListActive() ([]*entity.ContentBlock, error) {
	out := []*entity.ContentBlock{}
	for _, b := range r.blocks {
		if b.IsActive {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}
