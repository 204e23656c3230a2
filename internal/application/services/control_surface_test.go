package services

import (
	"context"
	"errors"
	"testing"

	"github.com/remotedeck/remotedeck/internal/application/dto"
	apperrors "github.com/remotedeck/remotedeck/internal/application/errors"
	"github.com/remotedeck/remotedeck/internal/application/ports"
	"github.com/remotedeck/remotedeck/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type staticIcons struct{}

func (staticIcons) IconURL(a entities.IconAsset) string {
	return "/icons/" + a.File
}

type surfaceFixture struct {
	store     *WorkspaceStore
	surface   *ControlSurface
	publisher *recordingPublisher
	midi      *MockMIDI
}

func newSurfaceFixture(t *testing.T) *surfaceFixture {
	t.Helper()
	store, _ := newTestStore(t)
	midi := new(MockMIDI)
	pub := &recordingPublisher{}
	d := NewDispatcher(store, ports.Drivers{MIDI: midi, Sleep: &instantSleeper{}}, nil, nil, nil)
	return &surfaceFixture{
		store:     store,
		surface:   NewControlSurface(store, d, pub, staticIcons{}, nil),
		publisher: pub,
		midi:      midi,
	}
}

func (f *surfaceFixture) bind(t *testing.T, pageID string, binding map[string]any) string {
	t.Helper()
	c, err := f.store.AddButton("profile1", pageID, "")
	require.NoError(t, err)
	b, err := f.store.SetActionBinding(c.ID, binding)
	require.NoError(t, err)
	require.NotNil(t, b)
	return c.ID
}

func press(id string) []byte {
	return []byte(`{"type":"buttonPress","controlId":"` + id + `"}`)
}

func TestControlSurface_PressScenario(t *testing.T) {
	f := newSurfaceFixture(t)
	page2, err := f.store.AddPage("profile1", "")
	require.NoError(t, err)
	switcher := f.bind(t, "page1", map[string]any{
		"kind":   "single",
		"action": map[string]any{"type": "switchPage", "pageId": page2.ID},
	})
	require.Equal(t, "button1", switcher)
	midiButton := f.bind(t, page2.ID, map[string]any{
		"kind":   "single",
		"action": map[string]any{"type": "midiCc", "channel": 1, "cc": 7},
	})
	f.midi.On("Send", mock.Anything, []byte{0xB0, 7, 127}).Return(nil).Once()
	ctx := context.Background()

	require.NoError(t, f.surface.HandleControlPress(ctx, press(switcher)))

	assert.Equal(t, "page2", f.surface.State().ActivePageID)
	assert.Equal(t, []string{dto.EventStateUpdated, dto.EventActionExecuted}, f.publisher.Types())
	assert.Equal(t, dto.StateUpdated("profile1", "page2"), f.publisher.events[0])
	assert.Equal(t, dto.ActionExecuted(switcher), f.publisher.events[1])

	require.NoError(t, f.surface.HandleControlPress(ctx, press(midiButton)))

	assert.Equal(t, []string{dto.EventStateUpdated, dto.EventActionExecuted, dto.EventActionExecuted}, f.publisher.Types())
	f.midi.AssertExpectations(t)
}

func TestControlSurface_MacroNotTriggeredByPress(t *testing.T) {
	f := newSurfaceFixture(t)
	id := f.bind(t, "page1", map[string]any{
		"kind":  "macro",
		"steps": []any{map[string]any{"type": "midiCc", "cc": 1}},
	})

	err := f.surface.HandleControlPress(context.Background(), press(id))

	assert.ErrorIs(t, err, ErrPressIgnored)
	assert.Empty(t, f.publisher.Types())
	f.midi.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestControlSurface_FailedPressIsNotConfirmed(t *testing.T) {
	f := newSurfaceFixture(t)
	midiButton := f.bind(t, "page1", map[string]any{
		"kind":   "single",
		"action": map[string]any{"type": "midiCc", "channel": 1, "cc": 7},
	})
	stalePage := f.bind(t, "page1", map[string]any{
		"kind":   "single",
		"action": map[string]any{"type": "switchPage", "pageId": "page99"},
	})
	f.midi.On("Send", mock.Anything, mock.Anything).Return(errors.New("port closed")).Once()
	ctx := context.Background()

	require.NoError(t, f.surface.HandleControlPress(ctx, press(midiButton)))
	require.NoError(t, f.surface.HandleControlPress(ctx, press(stalePage)))

	assert.Empty(t, f.publisher.Types())
	assert.Equal(t, "page1", f.store.Selection().PageID)
	f.midi.AssertExpectations(t)
}

func TestControlSurface_IgnoredPresses(t *testing.T) {
	f := newSurfaceFixture(t)
	page2, _ := f.store.AddPage("profile1", "")
	offPage := f.bind(t, page2.ID, map[string]any{
		"kind":   "single",
		"action": map[string]any{"type": "back"},
	})
	unbound, _ := f.store.AddButton("profile1", "page1", "")

	tests := []struct {
		name    string
		payload []byte
	}{
		{"not json", []byte("{")},
		{"wrong type", []byte(`{"type":"faderMove","controlId":"button1"}`)},
		{"blank id", []byte(`{"type":"buttonPress","controlId":"  "}`)},
		{"unknown control", press("button99")},
		{"control on another page", press(offPage)},
		{"no binding", press(unbound.ID)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.surface.HandleControlPress(context.Background(), tt.payload)
			assert.ErrorIs(t, err, ErrPressIgnored)
		})
	}
	assert.Empty(t, f.publisher.Types())
	assert.Equal(t, "page1", f.store.Selection().PageID)
}

func TestControlSurface_SetActive(t *testing.T) {
	f := newSurfaceFixture(t)
	page2, _ := f.store.AddPage("profile1", "")

	_, err := f.surface.SetActive(dto.SetActiveRequest{ProfileID: " "})
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "profileId", ve.Field)

	_, err = f.surface.SetActive(dto.SetActiveRequest{ProfileID: "profile9"})
	assert.True(t, entities.IsNotFound(err))
	assert.True(t, apperrors.IsClientError(err))

	_, err = f.surface.SetActive(dto.SetActiveRequest{ProfileID: "profile1", PageID: "page9"})
	assert.True(t, entities.IsValidation(err))

	view, err := f.surface.SetActive(dto.SetActiveRequest{ProfileID: "profile1", PageID: page2.ID})
	require.NoError(t, err)
	assert.Equal(t, page2.ID, view.ActivePageID)
	assert.Equal(t, page2.ID, view.Page.ID)
	assert.Empty(t, f.publisher.Types(), "set-active replies directly and does not broadcast")
}

func TestControlSurface_StateView(t *testing.T) {
	f := newSurfaceFixture(t)
	icon, err := f.store.AddIconAsset("", "mute.png", "image/png")
	require.NoError(t, err)
	folder, _ := f.store.AddFolder("profile1", "page1")
	button := f.bind(t, "page1", map[string]any{
		"kind":   "single",
		"action": map[string]any{"type": "mediaKey", "key": "volMute"},
	})
	require.NoError(t, f.store.MoveElement(button, "profile1", "page1", folder.ID))
	fader, _ := f.store.AddFader("profile1", "page1", "")
	require.NoError(t, f.store.SetFaderIcon(fader.ID, 1, icon.ID))
	_, err = f.store.AddPlacement(fader.ID, 1, 3, 0, 0)
	require.NoError(t, err)
	require.NoError(t, f.store.SetPageStyle("page1", "fader", entities.ControlStyle{Foreground: "#ffffff"}))

	view := f.surface.State()

	assert.Equal(t, "profile1", view.ActiveProfileID)
	assert.Equal(t, dto.ProfileSummary{ID: "profile1", Name: "Default"}, view.ActiveProfile)
	assert.Equal(t, dto.PageSummary{ID: "page1", Name: "Page 1"}, view.ActivePage)
	require.Len(t, view.Profiles, 1)
	assert.Len(t, view.Profiles[0].Pages, 1)

	assert.Equal(t, entities.Grid{Rows: 4, Cols: 3}, view.Page.Grid)
	assert.Equal(t, []dto.FolderView{{ID: folder.ID, Name: "Folder 1"}}, view.Page.Folders)
	require.Len(t, view.Page.Controls, 2)
	btn := view.Page.Controls[0]
	assert.Equal(t, folder.ID, btn.FolderID)
	require.NotNil(t, btn.ActionBinding)
	assert.Nil(t, btn.Style)
	fv := view.Page.Controls[1]
	assert.Equal(t, []string{"", icon.ID, "", ""}, fv.FaderIconAssetIDs)
	require.NotNil(t, fv.Style)
	assert.Equal(t, "#ffffff", fv.Style.Foreground)
	assert.Equal(t, []dto.PlacementView{{ElementID: fader.ID, Row: 1, Col: 3, RowSpan: 4, ColSpan: 1}}, view.Page.Placements)

	assert.Equal(t, dto.IconView{ID: icon.ID, URL: "/icons/mute.png", Mime: "image/png"}, view.Assets.Icons[icon.ID])

	fv.FaderIconAssetIDs[0] = "mutated"
	fv.Style.Foreground = "mutated"
	again := f.surface.State()
	assert.Equal(t, "", again.Page.Controls[1].FaderIconAssetIDs[0])
	assert.Equal(t, "#ffffff", again.Page.Controls[1].Style.Foreground)
}
