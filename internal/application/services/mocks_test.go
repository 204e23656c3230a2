package services

import (
	"context"
	"sync"
	"time"

	"github.com/remotedeck/remotedeck/internal/application/dto"
	"github.com/remotedeck/remotedeck/internal/domain/actions"
	"github.com/remotedeck/remotedeck/internal/domain/entities"
	"github.com/stretchr/testify/mock"
)

type MockKeys struct{ mock.Mock }

func (m *MockKeys) SendCombo(ctx context.Context, combo actions.KeyCombo) error {
	return m.Called(ctx, combo.String()).Error(0)
}

type MockText struct{ mock.Mock }

func (m *MockText) TypeText(ctx context.Context, text string, enterAfter bool) error {
	return m.Called(ctx, "type", text, enterAfter).Error(0)
}

func (m *MockText) PasteText(ctx context.Context, text string, enterAfter bool) error {
	return m.Called(ctx, "paste", text, enterAfter).Error(0)
}

type MockURLs struct{ mock.Mock }

func (m *MockURLs) OpenURL(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

type MockApps struct{ mock.Mock }

func (m *MockApps) Launch(ctx context.Context, target string, args []string) error {
	return m.Called(ctx, target, args).Error(0)
}

type MockMIDI struct{ mock.Mock }

func (m *MockMIDI) Send(ctx context.Context, msg []byte) error {
	return m.Called(ctx, msg).Error(0)
}

// instantSleeper records requested sleeps without waiting.
type instantSleeper struct {
	mu    sync.Mutex
	slept []time.Duration
}

func (s *instantSleeper) Sleep(_ context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slept = append(s.slept, d)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []dto.Event
}

func (p *recordingPublisher) Publish(ev dto.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type countingSaver struct {
	mu       sync.Mutex
	calls    int
	snapshot func() *entities.Workspace
}

func (s *countingSaver) ScheduleSave(snapshot func() *entities.Workspace) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.snapshot = snapshot
}

type recordingMetrics struct {
	mu        sync.Mutex
	steps     map[string]int
	mutations map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{steps: map[string]int{}, mutations: map[string]int{}}
}

func (r *recordingMetrics) DispatchStep(action actions.Type, result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps[string(action)+"/"+result]++
}

func (r *recordingMetrics) StoreMutation(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.mutations[op+"/"+result]++
}
