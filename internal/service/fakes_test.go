package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/events"
	"github.com/spec-kit/admin-console/internal/repository"
)

// In-memory stand-ins for the Postgres repositories. They serialize access
// with a mutex, which models per-row atomicity well enough for the
// rotate-once and redeem-once properties under test.

type memUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return uniqueViolation()
		}
	}
	r.seq++
	user.ID = "user-" + strconv.Itoa(r.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) List(ctx context.Context, filters repository.UserListFilters) ([]domain.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]domain.User, 0)
	for _, user := range r.users {
		if filters.Search == "" ||
			strings.Contains(strings.ToLower(user.Name), strings.ToLower(filters.Search)) ||
			strings.Contains(strings.ToLower(user.Email), strings.ToLower(filters.Search)) {
			matched = append(matched, *user)
		}
	}
	total := len(matched)
	if filters.Offset >= len(matched) {
		return []domain.User{}, total, nil
	}
	matched = matched[filters.Offset:]
	if filters.Limit < len(matched) {
		matched = matched[:filters.Limit]
	}
	return matched, total, nil
}

func (r *memUserRepo) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) UpdateStatus(ctx context.Context, id string, status domain.UserStatus) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	user.Status = status
	user.UpdatedAt = time.Now()
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) CountActive(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, user := range r.users {
		if user.Status == domain.UserStatusActive {
			count++
		}
	}
	return count, nil
}

func (r *memUserRepo) WithTx(tx pgx.Tx) repository.UserRepository { return r }

type memInviteRepo struct {
	mu      sync.Mutex
	seq     int
	invites map[string]*domain.Invite // keyed by id
}

func newMemInviteRepo() *memInviteRepo {
	return &memInviteRepo{invites: make(map[string]*domain.Invite)}
}

func (r *memInviteRepo) UpsertByEmail(ctx context.Context, invite *domain.Invite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.invites {
		if existing.Email == invite.Email {
			existing.Role = invite.Role
			existing.Token = invite.Token
			existing.ExpiresAt = invite.ExpiresAt
			existing.AcceptedAt = nil
			invite.ID = existing.ID
			invite.CreatedAt = existing.CreatedAt
			return nil
		}
	}
	r.seq++
	invite.ID = "invite-" + strconv.Itoa(r.seq)
	invite.CreatedAt = time.Now()
	copied := *invite
	r.invites[invite.ID] = &copied
	return nil
}

func (r *memInviteRepo) GetByToken(ctx context.Context, token string) (*domain.Invite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, invite := range r.invites {
		if invite.Token == token {
			copied := *invite
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memInviteRepo) MarkAccepted(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	invite, ok := r.invites[id]
	if !ok || invite.AcceptedAt != nil {
		return pgx.ErrNoRows
	}
	now := time.Now()
	invite.AcceptedAt = &now
	return nil
}

func (r *memInviteRepo) CountPending(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	now := time.Now()
	for _, invite := range r.invites {
		if invite.AcceptedAt == nil && invite.ExpiresAt.After(now) {
			count++
		}
	}
	return count, nil
}

func (r *memInviteRepo) WithTx(tx pgx.Tx) repository.InviteRepository { return r }

type memProjectRepo struct {
	mu       sync.Mutex
	seq      int
	projects map[string]*domain.Project
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{projects: make(map[string]*domain.Project)}
}

func (r *memProjectRepo) Create(ctx context.Context, project *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	project.ID = "project-" + strconv.Itoa(r.seq)
	project.Status = domain.ProjectStatusActive
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	copied := *project
	r.projects[project.ID] = &copied
	return nil
}

func (r *memProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if project, ok := r.projects[id]; ok {
		copied := *project
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memProjectRepo) Update(ctx context.Context, project *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.projects[project.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	project.CreatedAt = existing.CreatedAt
	project.UpdatedAt = time.Now()
	copied := *project
	r.projects[project.ID] = &copied
	return nil
}

func (r *memProjectRepo) List(ctx context.Context, filters repository.ProjectListFilters) ([]domain.Project, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]domain.Project, 0)
	for _, project := range r.projects {
		if project.IsDeleted {
			continue
		}
		if filters.Search == "" || strings.Contains(strings.ToLower(project.Name), strings.ToLower(filters.Search)) {
			matched = append(matched, *project)
		}
	}
	total := len(matched)
	if filters.Offset >= len(matched) {
		return []domain.Project{}, total, nil
	}
	matched = matched[filters.Offset:]
	if filters.Limit < len(matched) {
		matched = matched[:filters.Limit]
	}
	return matched, total, nil
}

func (r *memProjectRepo) CountLive(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, project := range r.projects {
		if !project.IsDeleted {
			count++
		}
	}
	return count, nil
}

type memRefreshRepo struct {
	mu     sync.Mutex
	seq    int
	tokens map[string]*domain.RefreshToken // keyed by id
	users  *memUserRepo
}

func newMemRefreshRepo(users *memUserRepo) *memRefreshRepo {
	return &memRefreshRepo{tokens: make(map[string]*domain.RefreshToken), users: users}
}

func (r *memRefreshRepo) Create(ctx context.Context, token *domain.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	token.ID = "rt-" + strconv.Itoa(r.seq)
	token.CreatedAt = time.Now()
	copied := *token
	r.tokens[token.ID] = &copied
	return nil
}

func (r *memRefreshRepo) GetByTokenWithUser(ctx context.Context, tokenStr string) (*domain.RefreshToken, *domain.User, error) {
	r.mu.Lock()
	var found *domain.RefreshToken
	for _, token := range r.tokens {
		if token.Token == tokenStr {
			copied := *token
			found = &copied
			break
		}
	}
	r.mu.Unlock()
	if found == nil {
		return nil, nil, pgx.ErrNoRows
	}
	user, err := r.users.GetByID(ctx, found.UserID)
	if err != nil {
		return nil, nil, err
	}
	return found, user, nil
}

func (r *memRefreshRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[id]; !ok {
		return false, nil
	}
	delete(r.tokens, id)
	return true, nil
}

func (r *memRefreshRepo) DeleteByToken(ctx context.Context, tokenStr string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, token := range r.tokens {
		if token.Token == tokenStr {
			delete(r.tokens, id)
			return nil
		}
	}
	return nil
}

func (r *memRefreshRepo) DeleteAllForUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, token := range r.tokens {
		if token.UserID == userID {
			delete(r.tokens, id)
		}
	}
	return nil
}

func (r *memRefreshRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}

// passthroughTx runs the transactional closure directly; the in-memory repos
// ignore the tx handle.
type passthroughTx struct{}

func (passthroughTx) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

// recordingAudit captures emitted audit payloads for assertions.
type recordingAudit struct {
	mu      sync.Mutex
	entries []events.AuditRecordedPayload
}

func (a *recordingAudit) Record(ctx context.Context, payload events.AuditRecordedPayload) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, payload)
}

func (a *recordingAudit) actions() []domain.AuditAction {
	a.mu.Lock()
	defer a.mu.Unlock()
	actions := make([]domain.AuditAction, 0, len(a.entries))
	for _, entry := range a.entries {
		actions = append(actions, entry.Action)
	}
	return actions
}
