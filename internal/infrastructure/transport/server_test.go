package transport_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remotedeck/remotedeck/internal/application/dto"
	apperrors "github.com/remotedeck/remotedeck/internal/application/errors"
	"github.com/remotedeck/remotedeck/internal/application/services"
	"github.com/remotedeck/remotedeck/internal/domain/entities"
	"github.com/remotedeck/remotedeck/internal/domain/values"
	"github.com/remotedeck/remotedeck/internal/infrastructure/transport"
)

type fakeState struct {
	mu      sync.Mutex
	view    dto.StateView
	err     error
	lastReq dto.SetActiveRequest
}

func (f *fakeState) State() dto.StateView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view
}

func (f *fakeState) SetActive(req dto.SetActiveRequest) (dto.StateView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastReq = req
	if f.err != nil {
		return dto.StateView{}, f.err
	}
	f.view.ActiveProfileID = req.ProfileID
	f.view.ActivePageID = req.PageID
	return f.view, nil
}

type pressRecorder struct {
	mu       sync.Mutex
	payloads []string
	got      chan struct{}
}

func newPressRecorder() *pressRecorder {
	return &pressRecorder{got: make(chan struct{}, 16)}
}

func (p *pressRecorder) HandleControlPress(_ context.Context, payload []byte) error {
	p.mu.Lock()
	p.payloads = append(p.payloads, string(payload))
	p.mu.Unlock()
	p.got <- struct{}{}
	return services.ErrPressIgnored
}

// gatedPresses blocks every press until release is closed.
type gatedPresses struct {
	started chan string
	release chan struct{}
}

func newGatedPresses() *gatedPresses {
	return &gatedPresses{started: make(chan string, 16), release: make(chan struct{})}
}

func (g *gatedPresses) HandleControlPress(ctx context.Context, payload []byte) error {
	g.started <- string(payload)
	select {
	case <-g.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func newTestServer(t *testing.T, state *fakeState, presses transport.PressHandler, opts transport.Options) (*httptest.Server, *transport.Hub) {
	t.Helper()
	hub := transport.NewHub(presses, nil)
	srv := httptest.NewServer(transport.NewServer(state, hub, opts, nil).Handler())
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return srv, hub
}

func TestServer_State(t *testing.T) {
	state := &fakeState{view: dto.StateView{ActiveProfileID: "profile1", ActivePageID: "page1"}}
	srv, _ := newTestServer(t, state, nil, transport.Options{})

	resp, err := http.Get(srv.URL + "/api/state")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var view dto.StateView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, "profile1", view.ActiveProfileID)
	assert.Equal(t, "page1", view.ActivePageID)
}

func TestServer_SetActive(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "ok", body: `{"profileId":"profile2","pageId":"page3"}`, wantStatus: http.StatusOK},
		{name: "empty body", body: ``, wantStatus: http.StatusBadRequest, wantError: "request body is empty"},
		{name: "not json", body: `profile2`, wantStatus: http.StatusBadRequest, wantError: "invalid set-active request payload"},
		{
			name:       "validation",
			body:       `{"profileId":""}`,
			err:        apperrors.NewValidationError("profileId", "profileId is required"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not found",
			body:       `{"profileId":"profile9"}`,
			err:        entities.NewNotFound(values.KindProfile, "profile9"),
			wantStatus: http.StatusNotFound,
			wantError:  "profile not found: profile9",
		},
		{
			name:       "internal",
			body:       `{"profileId":"profile1"}`,
			err:        errors.New("disk on fire"),
			wantStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := &fakeState{err: tt.err}
			srv, _ := newTestServer(t, state, nil, transport.Options{})

			resp, err := http.Post(srv.URL+"/api/active", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "profile2", body["activeProfileId"])
				assert.Equal(t, dto.SetActiveRequest{ProfileID: "profile2", PageID: "page3"}, state.lastReq)
				return
			}
			require.Contains(t, body, "error")
			if tt.wantError != "" {
				assert.Contains(t, body["error"], tt.wantError)
			}
		})
	}
}

func TestServer_Routes(t *testing.T) {
	assetsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(assetsDir, "mute.png"), []byte("png"), 0o600))

	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("remotedeck_up 1\n"))
	})
	srv, _ := newTestServer(t, &fakeState{}, nil, transport.Options{
		Metrics:      metrics,
		AssetsPrefix: "/assets/icons",
		AssetsDir:    assetsDir,
	})

	get := func(path string) (int, string) {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	status, body := get("/healthz")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","clients":0}`, body)

	status, body = get("/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "remotedeck_up 1\n", body)

	status, body = get("/assets/icons/mute.png")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "png", body)

	status, _ = get("/nope")
	assert.Equal(t, http.StatusNotFound, status)

	resp, err := http.Post(srv.URL+"/api/state", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *transport.Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastsToEveryClient(t *testing.T) {
	srv, hub := newTestServer(t, &fakeState{}, nil, transport.Options{})

	a := dial(t, srv)
	b := dial(t, srv)
	waitForClients(t, hub, 2)

	hub.Publish(dto.StateUpdated("profile1", "page2"))

	for _, conn := range []*websocket.Conn{a, b} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var ev dto.Event
		require.NoError(t, conn.ReadJSON(&ev))
		assert.Equal(t, dto.StateUpdated("profile1", "page2"), ev)
	}
}

func TestHub_ForwardsPresses(t *testing.T) {
	presses := newPressRecorder()
	srv, hub := newTestServer(t, &fakeState{}, presses, transport.Options{})

	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"buttonPress","controlId":"button1"}`)))
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0x01}))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`garbage`)))

	for range 2 {
		select {
		case <-presses.got:
		case <-time.After(2 * time.Second):
			t.Fatal("press not delivered")
		}
	}
	presses.mu.Lock()
	defer presses.mu.Unlock()
	assert.Equal(t, []string{`{"type":"buttonPress","controlId":"button1"}`, `garbage`}, presses.payloads)
}

func TestHub_DisconnectAndClose(t *testing.T) {
	srv, hub := newTestServer(t, &fakeState{}, nil, transport.Options{})

	a := dial(t, srv)
	b := dial(t, srv)
	waitForClients(t, hub, 2)

	require.NoError(t, a.Close())
	waitForClients(t, hub, 1)

	hub.Close()
	assert.Equal(t, 0, hub.ClientCount())

	require.NoError(t, b.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := b.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		defer conn.Close()
		resp.Body.Close()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, _, err = conn.ReadMessage()
		assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
	}
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_PressesFromOneClientRunConcurrently(t *testing.T) {
	presses := newGatedPresses()
	srv, hub := newTestServer(t, &fakeState{}, presses, transport.Options{})
	defer close(presses.release)

	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`first`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`second`)))

	var got []string
	for range 2 {
		select {
		case p := <-presses.started:
			got = append(got, p)
		case <-time.After(2 * time.Second):
			t.Fatalf("second press blocked behind the first, got %v", got)
		}
	}
	assert.ElementsMatch(t, []string{"first", "second"}, got)
}

func TestHub_DrainWaitsForRunningPresses(t *testing.T) {
	presses := newGatedPresses()
	srv, hub := newTestServer(t, &fakeState{}, presses, transport.Options{})

	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`slow`)))
	select {
	case <-presses.started:
	case <-time.After(2 * time.Second):
		t.Fatal("press not delivered")
	}

	hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, hub.Drain(ctx), context.DeadlineExceeded)

	close(presses.release)
	drainCtx, drainCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer drainCancel()
	assert.NoError(t, hub.Drain(drainCtx))
}
