package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/atikur-24/daily-fit-server/internal/models"
	"github.com/atikur-24/daily-fit-server/internal/repositories"
)

// memRepository is an in-memory Repository for service tests
type memRepository struct {
	mu       sync.Mutex
	users    map[string]*models.User
	classes  map[string]*models.Class
	carts    map[string]*models.CartItem
	payments map[string]*models.PaymentRecord
	reviews  []*models.Review

	// lookups counts store reads, used to assert that a call never reached the store
	lookups int
	seq     int

	transactions int
	// commitErr fails WithTransaction after fn ran
	commitErr error
}

func newMemRepository() *memRepository {
	return &memRepository{
		users:    map[string]*models.User{},
		classes:  map[string]*models.Class{},
		carts:    map[string]*models.CartItem{},
		payments: map[string]*models.PaymentRecord{},
	}
}

func (m *memRepository) User() repositories.UserRepository       { return &memUsers{m} }
func (m *memRepository) Class() repositories.ClassRepository     { return &memClasses{m} }
func (m *memRepository) Cart() repositories.CartRepository       { return &memCarts{m} }
func (m *memRepository) Payment() repositories.PaymentRepository { return &memPayments{m} }
func (m *memRepository) Review() repositories.ReviewRepository   { return &memReviews{m} }
func (m *memRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	m.transactions++
	if err := fn(m); err != nil {
		return err
	}
	return m.commitErr
}
func (m *memRepository) Ping(ctx context.Context) error { return nil }
func (m *memRepository) Close() error                   { return nil }

// stamp returns increasing timestamps so ordering is deterministic
func (m *memRepository) stamp() time.Time {
	m.seq++
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m.seq) * time.Second)
}

func (m *memRepository) addUser(name, email string, role models.UserRole) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &models.User{ID: uuid.NewString(), Name: name, Email: email, Role: role, CreatedAt: m.stamp()}
	m.users[u.ID] = u
	return u
}

type memUsers struct{ m *memRepository }

func (r *memUsers) Create(ctx context.Context, user *models.User) (*models.WriteResult, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = r.m.stamp()
	cp := *user
	r.m.users[user.ID] = &cp
	return models.InsertResult(user.ID), nil
}

func (r *memUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.lookups++
	u, ok := r.m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.lookups++
	for _, u := range r.m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memUsers) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []*models.User{}
	for _, u := range r.m.users {
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memUsers) UpdateRole(ctx context.Context, id string, role models.UserRole) (*models.WriteResult, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return models.UpdateResult(0, 0), nil
	}
	if u.Role == role {
		return models.UpdateResult(1, 0), nil
	}
	u.Role = role
	return models.UpdateResult(1, 1), nil
}

func (r *memUsers) Delete(ctx context.Context, id string) (*models.WriteResult, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[id]; !ok {
		return models.DeleteResult(0), nil
	}
	delete(r.m.users, id)
	return models.DeleteResult(1), nil
}

func (r *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type memClasses struct{ m *memRepository }

func (r *memClasses) Create(ctx context.Context, class *models.Class) (*models.WriteResult, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	class.CreatedAt = r.m.stamp()
	cp := *class
	r.m.classes[class.ID] = &cp
	return models.InsertResult(class.ID), nil
}

func (r *memClasses) GetByID(ctx context.Context, id string) (*models.Class, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.classes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memClasses) List(ctx context.Context, filters repositories.ClassFilters) ([]*models.Class, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []*models.Class{}
	for _, c := range r.m.classes {
		if filters.Status != nil && c.Status != *filters.Status {
			continue
		}
		if filters.InstructorEmail != nil && c.InstructorEmail != *filters.InstructorEmail {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memClasses) UpdateStatus(ctx context.Context, id string, status models.ClassStatus) (*models.WriteResult, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.classes[id]
	if !ok {
		return models.UpdateResult(0, 0), nil
	}
	if c.Status == status {
		return models.UpdateResult(1, 0), nil
	}
	c.Status = status
	return models.UpdateResult(1, 1), nil
}

func (r *memClasses) UpdateFeedback(ctx context.Context, id string, feedback string) (*models.WriteResult, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.classes[id]
	if !ok {
		return models.UpdateResult(0, 0), nil
	}
	c.Feedback = &feedback
	return models.UpdateResult(1, 1), nil
}

func (r *memClasses) Delete(ctx context.Context, id string) (*models.WriteResult, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.classes[id]; !ok {
		return models.DeleteResult(0), nil
	}
	delete(r.m.classes, id)
	return models.DeleteResult(1), nil
}

type memCarts struct{ m *memRepository }

func (r *memCarts) Create(ctx context.Context, item *models.CartItem) (*models.WriteResult, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.CreatedAt = r.m.stamp()
	cp := *item
	r.m.carts[item.ID] = &cp
	return models.InsertResult(item.ID), nil
}

func (r *memCarts) GetByID(ctx context.Context, id string) (*models.CartItem, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.lookups++
	item, ok := r.m.carts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *memCarts) ListByEmail(ctx context.Context, email string) ([]*models.CartItem, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.lookups++
	out := []*models.CartItem{}
	for _, item := range r.m.carts {
		if item.Email == email {
			cp := *item
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memCarts) Delete(ctx context.Context, id string) (*models.WriteResult, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.carts[id]; !ok {
		return models.DeleteResult(0), nil
	}
	delete(r.m.carts, id)
	return models.DeleteResult(1), nil
}

type memPayments struct{ m *memRepository }

func (r *memPayments) Create(ctx context.Context, payment *models.PaymentRecord) (*models.WriteResult, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	payment.CreatedAt = r.m.stamp()
	cp := *payment
	r.m.payments[payment.ID] = &cp
	return models.InsertResult(payment.ID), nil
}

func (r *memPayments) List(ctx context.Context, filters repositories.PaymentFilters) ([]*models.PaymentRecord, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []*models.PaymentRecord{}
	for _, p := range r.m.payments {
		if filters.Email != nil && p.Email != *filters.Email {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, nil
}

type memReviews struct{ m *memRepository }

func (r *memReviews) List(ctx context.Context) ([]*models.Review, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return append([]*models.Review{}, r.m.reviews...), nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
