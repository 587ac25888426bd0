package user

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainAudit "admin-dashboard/internal/domain/audit"
	domainUser "admin-dashboard/internal/domain/user"
	"admin-dashboard/internal/logger"
	auditUsecase "admin-dashboard/internal/usecase/audit"
	appErrors "admin-dashboard/pkg/errors"
	"admin-dashboard/pkg/utils"
)

func TestMain(m *testing.M) {
	if err := logger.Init("development"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domainUser.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domainUser.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domainUser.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domainUser.ErrEmailInUse
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID uuid.UUID) (*domainUser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context, params domainUser.ListParams) ([]*domainUser.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*domainUser.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		all = append(all, &clone)
	}
	total := int64(len(all))
	start := (params.Page - 1) * params.Limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + params.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domainUser.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domainUser.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return domainUser.ErrUserNotFound
	}
	delete(r.users, userID)
	return nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*domainAudit.Log
}

func (r *fakeAuditRepo) Create(_ context.Context, entry *domainAudit.Log) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context, _ domainAudit.ListParams) ([]*domainAudit.Log, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries, int64(len(r.entries)), nil
}

func (r *fakeAuditRepo) last() *domainAudit.Log {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return nil
	}
	return r.entries[len(r.entries)-1]
}

func newTestService() (*Service, *fakeUserRepo, *fakeAuditRepo) {
	users := newFakeUserRepo()
	auditLog := &fakeAuditRepo{}
	return NewService(users, auditUsecase.NewService(auditLog)), users, auditLog
}

func adminMeta() Meta {
	actorID := uuid.New()
	return Meta{ActorID: &actorID, IPAddress: "10.0.0.1", UserAgent: "test-agent"}
}

func TestCreateUser(t *testing.T) {
	service, users, auditLog := newTestService()

	resp, err := service.Create(context.Background(), &CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret1",
		Role:     domainUser.RoleAdmin,
	}, adminMeta())
	require.NoError(t, err)
	assert.Equal(t, domainUser.RoleAdmin, resp.Role)

	stored, err := users.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.True(t, utils.CheckPassword(stored.PasswordHash, "secret1"))

	entry := auditLog.last()
	require.NotNil(t, entry)
	assert.Equal(t, domainAudit.ActionCreate, entry.Action)
	assert.Equal(t, domainAudit.EntityUser, entry.Entity)
}

func TestCreateUserDefaultsRole(t *testing.T) {
	service, _, _ := newTestService()

	resp, err := service.Create(context.Background(), &CreateUserRequest{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "secret1",
	}, adminMeta())
	require.NoError(t, err)
	assert.Equal(t, domainUser.RoleUser, resp.Role)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Create(context.Background(), &CreateUserRequest{
		Name:     "Carol",
		Email:    "carol@example.com",
		Password: "secret1",
	}, adminMeta())
	require.NoError(t, err)

	_, err = service.Create(context.Background(), &CreateUserRequest{
		Name:     "Carol Again",
		Email:    "carol@example.com",
		Password: "another1",
	}, adminMeta())
	assert.ErrorIs(t, err, appErrors.ErrEmailInUse)
}

func TestUpdateUser(t *testing.T) {
	service, users, auditLog := newTestService()

	created, err := service.Create(context.Background(), &CreateUserRequest{
		Name:     "Dave",
		Email:    "dave@example.com",
		Password: "secret1",
	}, adminMeta())
	require.NoError(t, err)

	newName := "David"
	newRole := domainUser.RoleAdmin
	newPassword := "updated1"
	resp, err := service.Update(context.Background(), created.ID, &UpdateUserRequest{
		Name:     &newName,
		Role:     &newRole,
		Password: &newPassword,
	}, adminMeta())
	require.NoError(t, err)
	assert.Equal(t, "David", resp.Name)
	assert.Equal(t, domainUser.RoleAdmin, resp.Role)
	assert.Equal(t, "dave@example.com", resp.Email)

	stored, err := users.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword(stored.PasswordHash, "updated1"))

	entry := auditLog.last()
	require.NotNil(t, entry)
	assert.Equal(t, domainAudit.ActionUpdate, entry.Action)
	// Password values never appear in the audit trail.
	assert.Equal(t, "[redacted]", entry.Changes["password"])
}

func TestUpdateUserNotFound(t *testing.T) {
	service, _, _ := newTestService()

	newName := "Nobody"
	_, err := service.Update(context.Background(), uuid.New(), &UpdateUserRequest{Name: &newName}, adminMeta())
	assert.ErrorIs(t, err, appErrors.ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	service, _, auditLog := newTestService()

	created, err := service.Create(context.Background(), &CreateUserRequest{
		Name:     "Erin",
		Email:    "erin@example.com",
		Password: "secret1",
	}, adminMeta())
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID, adminMeta()))

	_, err = service.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, appErrors.ErrUserNotFound)

	entry := auditLog.last()
	require.NotNil(t, entry)
	assert.Equal(t, domainAudit.ActionDelete, entry.Action)

	assert.ErrorIs(t, service.Delete(context.Background(), created.ID, adminMeta()), appErrors.ErrUserNotFound)
}

func TestListUsersClampsPagination(t *testing.T) {
	service, _, _ := newTestService()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := service.Create(context.Background(), &CreateUserRequest{
			Name:     "User",
			Email:    email,
			Password: "secret1",
		}, adminMeta())
		require.NoError(t, err)
	}

	resp, err := service.List(context.Background(), domainUser.ListParams{Page: 0, Limit: -5})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 10, resp.Limit)
	assert.Equal(t, int64(3), resp.Total)
	assert.Len(t, resp.Data, 3)
	assert.Equal(t, int64(1), resp.TotalPages)
}
