package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-board/internal/models"
	"github.com/pribylovaa/go-board/internal/pkg/log"
	"github.com/pribylovaa/go-board/internal/service"
	apierrors "github.com/pribylovaa/go-board/internal/transport/http/errors"
)

// capHandler — тестовый slog.Handler: копит базовые attrs из With(...)
// и attrs последней записи.
type capHandler struct {
	mu      sync.Mutex
	base    []slog.Attr
	lastMsg string
	attrs   map[string]any
	count   int
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make(map[string]any, len(h.base)+8)
	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})

	h.count++
	h.lastMsg = r.Message
	h.attrs = out

	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.base = append(h.base, attrs...)
	return h
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

func makeReq(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = (&net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 12345}).String()
	return req
}

type errEnvelope struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

type fakeAuth struct {
	claims models.AccessClaims
	err    error
	got    string
}

func (f *fakeAuth) Authenticate(_ context.Context, token string) (models.AccessClaims, error) {
	f.got = token
	return f.claims, f.err
}

type fakeObserver struct {
	method, route, code string
	calls               int
}

func (f *fakeObserver) ObserveHTTP(method, route, code string, _ time.Duration) {
	f.method, f.route, f.code = method, route, code
	f.calls++
}

func TestChain_Order(t *testing.T) {
	order := []string{}

	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name+"-begin")
				next.ServeHTTP(w, r)
				order = append(order, name+"-end")
			})
		}
	}

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	Chain(final, mw("m1"), mw("m2")).ServeHTTP(rr, makeReq("/chain"))

	require.Equal(t, []string{"m1-begin", "m2-begin", "handler", "m2-end", "m1-end"}, order)
	require.Equal(t, http.StatusTeapot, rr.Code)
}

func TestRequestID_GenerateAndPropagate(t *testing.T) {
	var seenHeader, seenCtx string

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenHeader = r.Header.Get("X-Request-Id")
		seenCtx = RequestIDFrom(r.Context())
	})

	rr := httptest.NewRecorder()
	Chain(h, RequestID()).ServeHTTP(rr, makeReq("/rid"))

	respID := rr.Header().Get("X-Request-Id")
	_, err := uuid.Parse(respID)
	require.NoError(t, err)
	require.Equal(t, respID, seenHeader)
	require.Equal(t, respID, seenCtx)
}

func TestRequestID_UseExisting(t *testing.T) {
	const given = "abc123-existing-id"
	var seenCtx string

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenCtx = RequestIDFrom(r.Context())
	})

	rr := httptest.NewRecorder()
	req := makeReq("/rid2")
	req.Header.Set("X-Request-Id", given)
	Chain(h, RequestID()).ServeHTTP(rr, req)

	require.Equal(t, given, rr.Header().Get("X-Request-Id"))
	require.Equal(t, given, seenCtx)
}

func TestAuthBearer_ValidTokenPopulatesClaims(t *testing.T) {
	sid := uuid.New()
	auth := &fakeAuth{claims: models.AccessClaims{UserID: 7, SessionID: sid}}
	capture := &capHandler{}

	var got models.AccessClaims
	var ok bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = ClaimsFrom(r.Context())
		log.From(r.Context()).Info("inner")
	})

	req := makeReq("/me")
	req.Header.Set("Authorization", "Bearer test-token-123")
	req = req.WithContext(log.Into(req.Context(), slog.New(capture)))
	rr := httptest.NewRecorder()
	Chain(h, AuthBearer(auth)).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "test-token-123", auth.got)
	require.True(t, ok)
	require.Equal(t, int64(7), got.UserID)
	require.Equal(t, sid, got.SessionID)
	require.EqualValues(t, 7, capture.attrs["user_id"])
	require.Equal(t, sid.String(), capture.attrs["session_id"])
}

func TestAuthBearer_RejectsMissingAndInvalid(t *testing.T) {
	called := false
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	for _, header := range []string{"", "Basic aaa", "Bearer ", "Bearer bad"} {
		auth := &fakeAuth{err: errors.Join(service.ErrUnauthenticated, errors.New("malformed"))}
		req := makeReq("/me")
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		Chain(h, AuthBearer(auth)).ServeHTTP(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code, header)

		var env errEnvelope
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
		require.Equal(t, "unauthenticated", env.Error.Code)
	}

	require.False(t, called)
}

func TestTimeout_SetsDeadline_WhenAbsent(t *testing.T) {
	var hasDeadline bool

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	})

	Chain(h, Timeout(50*time.Millisecond)).ServeHTTP(httptest.NewRecorder(), makeReq("/timeout"))
	require.True(t, hasDeadline)
}

func TestTimeout_DoesNotOverrideExistingDeadline(t *testing.T) {
	var childDL time.Time

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		childDL, _ = r.Context().Deadline()
	})

	parent, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	Chain(h, Timeout(time.Second)).ServeHTTP(httptest.NewRecorder(), makeReq("/timeout2").WithContext(parent))

	parentDL, _ := parent.Deadline()
	require.WithinDuration(t, parentDL, childDL, time.Millisecond)
}

func TestTimeout_SilentHandlerGets503AfterDeadline(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	rr := httptest.NewRecorder()
	Chain(h, Timeout(10*time.Millisecond)).ServeHTTP(rr, makeReq("/slow"))

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	require.Equal(t, "1", rr.Header().Get("Retry-After"))

	var env errEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, "unavailable", env.Error.Code)
}

func TestTimeout_KeepsResponseAlreadyWritten(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		apierrors.WriteError(w, r, service.ErrUnavailable)
	})

	rr := httptest.NewRecorder()
	Chain(h, Timeout(10*time.Millisecond)).ServeHTTP(rr, makeReq("/slow2"))

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	var env errEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), "exactly one envelope in body")
}

func TestRecover_ConvertsPanicTo500(t *testing.T) {
	panicHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rr := httptest.NewRecorder()
	Chain(panicHandler, Recover()).ServeHTTP(rr, makeReq("/panic"))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var env errEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, "internal", env.Error.Code)
	require.NotContains(t, rr.Body.String(), "boom")
}

func TestLogging_WritesRecordAndObservesRoute(t *testing.T) {
	capture := &capHandler{}
	obs := &fakeObserver{}

	r := chi.NewRouter()
	r.Use(RequestID(), Logging(slog.New(capture), obs))
	r.Get("/boards/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("0123456789"))
	})

	req := makeReq("/boards/42")
	req.Header.Set("X-Request-Id", "rid-456")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 1, capture.count)
	require.Equal(t, "http", capture.lastMsg)
	require.Equal(t, "/boards/42", capture.attrs["path"])
	require.EqualValues(t, http.StatusOK, capture.attrs["status"])
	require.EqualValues(t, 10, capture.attrs["bytes"])
	require.Equal(t, "rid-456", capture.attrs["request_id"])

	require.Equal(t, 1, obs.calls)
	require.Equal(t, "/boards/{id}", obs.route)
	require.Equal(t, "200", obs.code)
}

func TestRateLimit_PerIP(t *testing.T) {
	l := NewIPLimiter(0.001, 2)
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), RateLimit(l))

	codes := func(ip string, n int) []int {
		out := make([]int, 0, n)
		for i := 0; i < n; i++ {
			req := makeReq("/auth/login")
			req.RemoteAddr = ip + ":5555"
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			out = append(out, rr.Code)
		}
		return out
	}

	require.Equal(t, []int{200, 200, 429}, codes("10.0.0.1", 3))
	require.Equal(t, []int{200}, codes("10.0.0.2", 1))
}

func TestRateLimit_ForgetsIdleVisitors(t *testing.T) {
	l := NewIPLimiter(1, 1)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	l.now = func() time.Time { return now }

	require.True(t, l.Allow("1.1.1.1"))
	require.Len(t, l.visitors, 1)

	now = base.Add(idleTTL + 2*time.Minute)
	require.True(t, l.Allow("2.2.2.2"))
	require.Len(t, l.visitors, 1)
}

func TestStatusWriter_CountsBytes_AndDefaultStatus200(t *testing.T) {
	sw := newStatusWriter(httptest.NewRecorder())
	_, _ = sw.Write([]byte("abcd"))

	require.Equal(t, http.StatusOK, sw.status)
	require.Equal(t, 4, sw.count)
}
