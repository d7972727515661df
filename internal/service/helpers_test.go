package service

import (
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pribylovaa/go-board/internal/config"
	"github.com/pribylovaa/go-board/internal/counter"
	"github.com/pribylovaa/go-board/internal/mocks"
	"github.com/pribylovaa/go-board/internal/storage/memory"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testCfg() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:       "unit-secret",
		AccessTokenTTL:  5 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "board-service",
		BcryptCost:      bcrypt.MinCost,
	}
}

// testClock — управляемые часы, общие для сервиса, сессий и токенов.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *testClock {
	return &testClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type fakeRecorder struct {
	mu       sync.Mutex
	ok       map[string]int
	failures map[string]int
}

func newRecorder() *fakeRecorder {
	return &fakeRecorder{ok: map[string]int{}, failures: map[string]int{}}
}

func (r *fakeRecorder) AuthSucceeded(e string) {
	r.mu.Lock()
	r.ok[e]++
	r.mu.Unlock()
}

func (r *fakeRecorder) AuthFailed(reason string) {
	r.mu.Lock()
	r.failures[reason]++
	r.mu.Unlock()
}

type memEnv struct {
	svc    *Service
	st     *memory.Storage
	clk    *testClock
	rec    *fakeRecorder
	syncer *counter.Synchronizer
}

// newMemSvc — сервис поверх хранилища в памяти.
func newMemSvc(t *testing.T, opts ...Option) *memEnv {
	t.Helper()
	clk := newClock()
	st := memory.New().WithClock(clk.Now)
	syncer := counter.NewSynchronizer(counter.NewMemoryStore(), st, nil)
	rec := newRecorder()

	opts = append([]Option{WithClock(clk.Now), WithRecorder(rec)}, opts...)
	svc, err := New(st, syncer, testCfg(), opts...)
	require.NoError(t, err)

	return &memEnv{svc: svc, st: st, clk: clk, rec: rec, syncer: syncer}
}

// newMockSvc — сервис поверх gomock-хранилища.
func newMockSvc(t *testing.T, opts ...Option) (*Service, *mocks.MockStorage, *testClock) {
	t.Helper()
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	clk := newClock()

	opts = append([]Option{WithClock(clk.Now)}, opts...)
	svc, err := New(st, nil, testCfg(), opts...)
	require.NoError(t, err)

	return svc, st, clk
}
