package user_test

import (
	"context"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/artem13815/accounts/pkg/user"
)

// memRepo is an in-memory user.Repository for use-case tests.
type memRepo struct {
	mu      sync.Mutex
	rows    map[int64]user.User
	nextID  int64
	updates int

	// err, when set, is returned by every call.
	err error
	// createErr, when set, is returned by Create only.
	createErr error
	// beforeUpdate, when set, runs at the start of Update.
	beforeUpdate func()
}

func newMemRepo() *memRepo {
	return &memRepo{rows: make(map[int64]user.User)}
}

func (r *memRepo) GetByID(_ context.Context, id int64) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return user.User{}, r.err
	}
	u, ok := r.rows[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *memRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return user.User{}, r.err
	}
	for _, u := range r.rows {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *memRepo) List(_ context.Context) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]user.User, 0, len(r.rows))
	for _, u := range r.rows {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) Create(_ context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return user.User{}, r.err
	}
	if r.createErr != nil {
		return user.User{}, r.createErr
	}
	for _, existing := range r.rows {
		if existing.Email == u.Email {
			return user.User{}, user.ErrDuplicateEmail
		}
	}
	r.nextID++
	u.ID = r.nextID
	r.rows[u.ID] = u
	return u, nil
}

func (r *memRepo) Update(_ context.Context, u user.User) error {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.rows[u.ID]; !ok {
		return user.ErrNotFound
	}
	r.rows[u.ID] = u
	r.updates++
	return nil
}

func (r *memRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	delete(r.rows, id)
	return nil
}

func (r *memRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type notifierMock struct {
	mock.Mock
}

func (m *notifierMock) SendPasswordReset(ctx context.Context, to, newPassword string) error {
	args := m.Called(ctx, to, newPassword)
	return args.Error(0)
}

type fixedGenerator struct {
	password string
	err      error
}

func (g fixedGenerator) Generate() (string, error) { return g.password, g.err }
