package correction_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonia-catalog/harmonia/internal/correction"
	"github.com/harmonia-catalog/harmonia/internal/platform/apperr"
	"github.com/harmonia-catalog/harmonia/internal/platform/postgres"
	"github.com/harmonia-catalog/harmonia/internal/platform/sec"
	"github.com/harmonia-catalog/harmonia/pkg/uuidv7"
)

// payload is a minimal stand-in entity used only to exercise [correction.Engine].
type payload struct {
	Name string
}

// fakeMaterializer implements [correction.Materializer] entirely in memory.
type fakeMaterializer struct {
	mu          sync.Mutex
	history     map[string]payload
	live        map[string]payload
	validateErr error
}

func newFakeMaterializer() *fakeMaterializer {
	return &fakeMaterializer{history: map[string]payload{}, live: map[string]payload{}}
}

func (m *fakeMaterializer) EntityType() correction.EntityType { return correction.EntityArtist }

func (m *fakeMaterializer) Validate(ctx context.Context, p payload) error {
	if m.validateErr != nil {
		return m.validateErr
	}
	if p.Name == "" {
		return apperr.ValidationError("name is required")
	}
	return nil
}

func (m *fakeMaterializer) CreateHistory(ctx context.Context, tx postgres.Tx, p payload) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuidv7.New()
	m.history[id] = p
	return id, nil
}

func (m *fakeMaterializer) CreateLive(ctx context.Context, tx postgres.Tx, p payload) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuidv7.New()
	m.live[id] = p
	return id, nil
}

func (m *fakeMaterializer) Reapply(ctx context.Context, tx postgres.Tx, entityID, historyID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot, ok := m.history[historyID]
	if !ok {
		return apperr.NotFound("history snapshot")
	}
	m.live[entityID] = snapshot
	return nil
}

// fakeTx is a no-op [postgres.Tx] sufficient for fake-backed tests: every
// call into real SQL only ever happens inside [fakeStore]/[fakeMaterializer],
// neither of which touch the handle's methods, so every method here is
// unreachable in practice and exists only to satisfy the interface.
type fakeTx struct{}

func (fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) { return nil, nil }
func (fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row        { return nil }
func (fakeTx) SendBatch(ctx context.Context, batch *pgx.Batch) pgx.BatchResults     { return nil }
func (fakeTx) Begin(ctx context.Context) (postgres.Tx, error)                       { return fakeTx{}, nil }
func (fakeTx) Commit(ctx context.Context) error                                     { return nil }
func (fakeTx) Rollback(ctx context.Context) error                                   { return nil }

// fakeTxRunner implements [postgres.TxRunner] by invoking fn directly
// against a [fakeTx], with no real transaction semantics — sufficient
// because the fakes never issue SQL.
type fakeTxRunner struct{}

func (fakeTxRunner) Run(ctx context.Context, fn func(postgres.Tx) error) error {
	return fn(fakeTx{})
}

// fakeStore implements [correction.Store] entirely in memory.
type fakeStore struct {
	mu          sync.Mutex
	corrections map[string]*correction.Correction
	revisions   map[string][]*correction.CorrectionRevision
	users       map[string][]*correction.CorrectionUser
	seq         int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		corrections: map[string]*correction.Correction{},
		revisions:   map[string][]*correction.CorrectionRevision{},
		users:       map[string][]*correction.CorrectionUser{},
	}
}

func (s *fakeStore) CreateCorrection(ctx context.Context, tx postgres.Tx, c *correction.Correction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.corrections[c.ID] = &cp
	return nil
}

func (s *fakeStore) CreateRevision(ctx context.Context, tx postgres.Tx, rev *correction.CorrectionRevision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	cp := *rev
	cp.Seq = s.seq
	s.revisions[rev.CorrectionID] = append(s.revisions[rev.CorrectionID], &cp)
	return nil
}

func (s *fakeStore) GetCorrection(ctx context.Context, tx postgres.Tx, id string) (*correction.Correction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.corrections[id]
	if !ok {
		return nil, apperr.NotFound("Correction")
	}
	cp := *c
	return &cp, nil
}

func (s *fakeStore) LatestCorrectionForEntity(ctx context.Context, tx postgres.Tx, entityType correction.EntityType, entityID string) (*correction.Correction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var candidates []*correction.Correction
	for _, c := range s.corrections {
		if c.EntityType == entityType && c.EntityID == entityID {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].CreatedAt.Equal(candidates[j].CreatedAt) {
			return candidates[i].ID > candidates[j].ID
		}
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})
	cp := *candidates[0]
	return &cp, nil
}

func (s *fakeStore) LatestRevision(ctx context.Context, tx postgres.Tx, correctionID string) (*correction.CorrectionRevision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	revs := s.revisions[correctionID]
	if len(revs) == 0 {
		return nil, apperr.NotFound("CorrectionRevision")
	}
	best := revs[0]
	for _, r := range revs[1:] {
		if r.EntityHistoryID > best.EntityHistoryID || (r.EntityHistoryID == best.EntityHistoryID && r.Seq > best.Seq) {
			best = r
		}
	}
	cp := *best
	return &cp, nil
}

func (s *fakeStore) SetStatus(ctx context.Context, tx postgres.Tx, correctionID string, status correction.Status, handledAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.corrections[correctionID]
	if !ok {
		return apperr.NotFound("Correction")
	}
	c.Status = status
	c.HandledAt = &handledAt
	return nil
}

func (s *fakeStore) AddCorrectionUser(ctx context.Context, tx postgres.Tx, correctionID, userID string, userType correction.UserType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[correctionID] = append(s.users[correctionID], &correction.CorrectionUser{
		CorrectionID: correctionID, UserID: userID, UserType: userType,
	})
	return nil
}

func (s *fakeStore) IsAuthor(ctx context.Context, tx postgres.Tx, correctionID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users[correctionID] {
		if u.UserID == userID && u.UserType == correction.UserTypeAuthor {
			return true, nil
		}
	}
	return false, nil
}

// fakeRoles grants privilege to a fixed set of user ids.
type fakeRoles struct {
	privileged map[string]bool
}

func (r *fakeRoles) HasAnyRole(ctx context.Context, userID string, roles ...sec.UserRole) (bool, error) {
	return r.privileged[userID], nil
}

func (r *fakeRoles) IsPrivileged(ctx context.Context, userID string) (bool, error) {
	return r.privileged[userID], nil
}

func newEngine(privilegedUsers ...string) (*correction.Engine[payload], *fakeMaterializer, *fakeStore) {
	privileged := map[string]bool{}
	for _, u := range privilegedUsers {
		privileged[u] = true
	}
	mat := newFakeMaterializer()
	store := newFakeStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := correction.NewEngine[payload](mat, store, &fakeRoles{privileged: privileged}, fakeTxRunner{}, logger)
	return engine, mat, store
}

func TestEngine_ProposeCreate_MemberIsPending(t *testing.T) {
	engine, mat, store := newEngine()

	entityID, err := engine.ProposeCreate(context.Background(), payload{Name: "Aimer"}, "user-1", "first proposal")
	require.NoError(t, err)
	require.NotEmpty(t, entityID, "the live entity is materialized regardless of privilege")
	assert.Equal(t, payload{Name: "Aimer"}, mat.live[entityID])

	var c *correction.Correction
	for _, cand := range store.corrections {
		c = cand
	}
	require.NotNil(t, c)
	assert.Equal(t, entityID, c.EntityID)
	assert.Equal(t, correction.StatusPending, c.Status)
	assert.Equal(t, correction.TypeCreate, c.Type)
	assert.Nil(t, c.HandledAt)
}

func TestEngine_ProposeCreate_PrivilegedIsAutoApproved(t *testing.T) {
	engine, mat, store := newEngine("mod-1")

	entityID, err := engine.ProposeCreate(context.Background(), payload{Name: "Aimer"}, "mod-1", "trusted edit")
	require.NoError(t, err)
	require.NotEmpty(t, entityID)
	assert.Equal(t, payload{Name: "Aimer"}, mat.live[entityID])

	var c *correction.Correction
	for _, cand := range store.corrections {
		c = cand
	}
	require.NotNil(t, c)
	assert.Equal(t, correction.StatusApproved, c.Status)
	assert.NotNil(t, c.HandledAt)
}

func TestEngine_ProposeCreate_ValidationFailsBeforeAnyStorage(t *testing.T) {
	engine, _, store := newEngine()

	_, err := engine.ProposeCreate(context.Background(), payload{Name: ""}, "user-1", "bad")
	require.Error(t, err)
	assert.Empty(t, store.corrections, "validation errors must never touch storage")
}

func TestEngine_ProposeUpdate_AppendsRevisionWhilePending(t *testing.T) {
	engine, _, store := newEngine()
	ctx := context.Background()

	entityID, err := engine.ProposeCreate(ctx, payload{Name: "Aimer"}, "user-1", "first")
	require.NoError(t, err)

	var correctionID string
	for id := range store.corrections {
		correctionID = id
	}

	err = engine.ProposeUpdate(ctx, entityID, payload{Name: "Aimer (updated)"}, "user-1", "second")
	require.NoError(t, err)

	assert.Len(t, store.revisions[correctionID], 2)
}

func TestEngine_ProposeUpdate_UnauthorizedNonAuthorCannotRevisePending(t *testing.T) {
	engine, _, store := newEngine()
	ctx := context.Background()

	entityID, err := engine.ProposeCreate(ctx, payload{Name: "Aimer"}, "user-1", "first")
	require.NoError(t, err)

	var correctionID string
	for id := range store.corrections {
		correctionID = id
	}

	err = engine.ProposeUpdate(ctx, entityID, payload{Name: "hijacked"}, "user-2", "bad edit")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
	assert.Len(t, store.revisions[correctionID], 1, "no revision should be recorded")
}

func TestEngine_ProposeUpdate_TerminalCorrectionOpensNewOne(t *testing.T) {
	engine, _, store := newEngine("mod-1")
	ctx := context.Background()

	entityID, err := engine.ProposeCreate(ctx, payload{Name: "Aimer"}, "mod-1", "auto-approved")
	require.NoError(t, err)
	require.NotEmpty(t, entityID)

	err = engine.ProposeUpdate(ctx, entityID, payload{Name: "Aimer v2"}, "user-3", "follow-up edit")
	require.NoError(t, err)

	var pendingCount int
	for _, c := range store.corrections {
		if c.EntityID == entityID && c.Status == correction.StatusPending {
			pendingCount++
		}
	}
	assert.Equal(t, 1, pendingCount)
}

func TestEngine_ProposeUpdate_UnknownEntityFails(t *testing.T) {
	engine, _, _ := newEngine()

	err := engine.ProposeUpdate(context.Background(), "nonexistent", payload{Name: "x"}, "user-1", "edit")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

func TestEngine_Approve_PendingCreateKeepsItsLiveEntity(t *testing.T) {
	engine, mat, store := newEngine("mod-1")
	ctx := context.Background()

	entityID, err := engine.ProposeCreate(ctx, payload{Name: "Aimer"}, "user-1", "first")
	require.NoError(t, err)
	require.NotEmpty(t, entityID)

	var correctionID string
	for id := range store.corrections {
		correctionID = id
	}

	err = engine.Approve(ctx, correctionID, "mod-1")
	require.NoError(t, err)

	c := store.corrections[correctionID]
	assert.Equal(t, correction.StatusApproved, c.Status)
	assert.Equal(t, entityID, c.EntityID, "approval must not change the id assigned at proposal time")
	assert.Equal(t, payload{Name: "Aimer"}, mat.live[entityID])
}

func TestEngine_Approve_NonPrivilegedIsUnauthorized(t *testing.T) {
	engine, _, store := newEngine("mod-1")
	ctx := context.Background()

	_, err := engine.ProposeCreate(ctx, payload{Name: "Aimer"}, "user-1", "first")
	require.NoError(t, err)

	var correctionID string
	for id := range store.corrections {
		correctionID = id
	}

	err = engine.Approve(ctx, correctionID, "user-1")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
	assert.Equal(t, correction.StatusPending, store.corrections[correctionID].Status)
}

func TestEngine_Approve_NonPendingIsInvalidState(t *testing.T) {
	engine, _, store := newEngine("mod-1")
	ctx := context.Background()

	_, err := engine.ProposeCreate(ctx, payload{Name: "Aimer"}, "mod-1", "auto-approved")
	require.NoError(t, err)

	var correctionID string
	for id := range store.corrections {
		correctionID = id
	}

	err = engine.Approve(ctx, correctionID, "mod-1")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_STATE", ae.Code)
}

func TestEngine_Reject_TransitionsPendingToRejected(t *testing.T) {
	engine, mat, store := newEngine("mod-1")
	ctx := context.Background()

	entityID, err := engine.ProposeCreate(ctx, payload{Name: "Aimer"}, "user-1", "first")
	require.NoError(t, err)

	var correctionID string
	for id := range store.corrections {
		correctionID = id
	}

	err = engine.Reject(ctx, correctionID, "mod-1")
	require.NoError(t, err)

	c := store.corrections[correctionID]
	assert.Equal(t, correction.StatusRejected, c.Status)
	assert.NotNil(t, c.HandledAt)
	assert.Equal(t, payload{Name: "Aimer"}, mat.live[entityID], "rejection must leave the live entity untouched")
}
