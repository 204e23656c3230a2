package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/remotedeck/remotedeck/internal/application/dto"
	apperrors "github.com/remotedeck/remotedeck/internal/application/errors"
	"github.com/remotedeck/remotedeck/internal/application/ports"
	"github.com/remotedeck/remotedeck/internal/domain/actions"
	"github.com/remotedeck/remotedeck/internal/domain/entities"
)

// ErrPressIgnored is returned by HandleControlPress when a press is
// dropped. Callers log it; remote clients never see it.
var ErrPressIgnored = errors.New("control press ignored")

// ControlSurface is the synchronization surface remote clients talk to:
// state queries, set-active commands and control presses.
type ControlSurface struct {
	store      *WorkspaceStore
	dispatcher *Dispatcher
	publisher  ports.EventPublisher
	icons      ports.IconResolver
	logger     *slog.Logger
}

// NewControlSurface creates the surface. publisher and icons may be nil.
func NewControlSurface(
	store *WorkspaceStore,
	dispatcher *Dispatcher,
	publisher ports.EventPublisher,
	icons ports.IconResolver,
	logger *slog.Logger,
) *ControlSurface {
	if logger == nil {
		logger = slog.Default()
	}
	return &ControlSurface{
		store:      store,
		dispatcher: dispatcher,
		publisher:  publisher,
		icons:      icons,
		logger:     logger,
	}
}

// State answers a state query.
func (c *ControlSurface) State() dto.StateView {
	var view dto.StateView
	c.store.View(func(ws *entities.Workspace) {
		view = c.buildState(ws)
	})
	return view
}

// SetActive applies a set-active command and returns the new state.
func (c *ControlSurface) SetActive(req dto.SetActiveRequest) (dto.StateView, error) {
	profileID := strings.TrimSpace(req.ProfileID)
	if profileID == "" {
		return dto.StateView{}, apperrors.NewValidationError("profileId", "profileId is required")
	}
	if err := c.store.SetActive(profileID, strings.TrimSpace(req.PageID)); err != nil {
		return dto.StateView{}, fmt.Errorf("set active: %w", err)
	}
	return c.State(), nil
}

// HandleControlPress handles a buttonPress payload. Only controls on the
// active page with a single-action binding are dispatched; macros are not
// triggered by a press. stateUpdated is published when the dispatch moved
// the active selection, actionExecuted only when no step failed or was
// denied.
func (c *ControlSurface) HandleControlPress(ctx context.Context, payload []byte) error {
	ev, err := dto.ParseControlPress(payload)
	if err != nil {
		return c.ignore("unparseable payload", "", err)
	}
	ctrl, ok := c.store.ResolveActiveControl(ev.ControlID)
	if !ok {
		return c.ignore("control not on active page", ev.ControlID, nil)
	}
	b := ctrl.ActionBinding
	if b == nil {
		return c.ignore("control has no binding", ev.ControlID, nil)
	}
	if b.Kind != actions.KindSingle {
		return c.ignore("binding is not a single action", ev.ControlID, nil)
	}

	res := c.dispatcher.Dispatch(ctx, ev.ControlID, b)
	if res.SelectionChanged {
		c.publish(dto.StateUpdated(res.After.ProfileID, res.After.PageID))
	}
	if res.Failed > 0 {
		c.logger.Debug("control press not confirmed", "control_id", ev.ControlID, "failed_steps", res.Failed)
		return nil
	}
	c.publish(dto.ActionExecuted(ev.ControlID))
	return nil
}

func (c *ControlSurface) ignore(reason, controlID string, cause error) error {
	c.logger.Debug("control press ignored", "reason", reason, "control_id", controlID, "error", cause)
	if cause != nil {
		return fmt.Errorf("%w: %s: %v", ErrPressIgnored, reason, cause)
	}
	return fmt.Errorf("%w: %s", ErrPressIgnored, reason)
}

func (c *ControlSurface) publish(ev dto.Event) {
	if c.publisher != nil {
		c.publisher.Publish(ev)
	}
}

func (c *ControlSurface) buildState(ws *entities.Workspace) dto.StateView {
	view := dto.StateView{
		ActiveProfileID: ws.ActiveProfileID,
		ActivePageID:    ws.ActivePageID,
		ActiveFolderID:  ws.Navigation.ActiveFolderID,
		Profiles:        make([]dto.ProfileIndex, 0, len(ws.Profiles)),
		Assets:          dto.AssetsView{Icons: make(map[string]dto.IconView, len(ws.Assets.Icons))},
	}

	for _, p := range ws.Profiles {
		idx := dto.ProfileIndex{ID: p.ID, Name: p.Name, IconAssetID: p.IconAssetID, Pages: make([]dto.PageSummary, 0, len(p.Pages))}
		for _, pg := range p.Pages {
			idx.Pages = append(idx.Pages, dto.PageSummary{ID: pg.ID, Name: pg.Name, IconAssetID: pg.IconAssetID})
		}
		view.Profiles = append(view.Profiles, idx)
	}

	if p, pg, ok := ws.ActivePage(); ok {
		view.ActiveProfile = dto.ProfileSummary{ID: p.ID, Name: p.Name, IconAssetID: p.IconAssetID}
		view.ActivePage = dto.PageSummary{ID: pg.ID, Name: pg.Name, IconAssetID: pg.IconAssetID}
		view.Page = pageView(pg)
	}

	for id, asset := range ws.Assets.Icons {
		url := ""
		if c.icons != nil {
			url = c.icons.IconURL(asset)
		}
		view.Assets.Icons[id] = dto.IconView{ID: id, URL: url, Mime: asset.Mime}
	}
	return view
}

func pageView(pg *entities.Page) dto.PageView {
	v := dto.PageView{
		ID:          pg.ID,
		Name:        pg.Name,
		IconAssetID: pg.IconAssetID,
		Grid:        pg.Grid,
		ShowGrid:    pg.ShowGrid,
		Background:  pg.Background,
		Folders:     make([]dto.FolderView, 0, len(pg.Folders)),
		Controls:    make([]dto.ControlView, 0, len(pg.Controls)),
		Placements:  make([]dto.PlacementView, 0, len(pg.Placements)),
	}
	for _, f := range pg.Folders {
		v.Folders = append(v.Folders, dto.FolderView{ID: f.ID, Name: f.Name, IconAssetID: f.IconAssetID})
	}
	for _, ctrl := range pg.Controls {
		cv := dto.ControlView{
			ID:            ctrl.ID,
			Type:          ctrl.Type,
			Name:          ctrl.Name,
			IconAssetID:   ctrl.IconAssetID,
			FolderID:      ctrl.FolderID,
			ActionBinding: ctrl.ActionBinding.Clone(),
		}
		if st := ctrl.EffectiveStyle(pg); !st.IsZero() {
			st = entities.ControlStyle{}.Merge(&st)
			cv.Style = &st
		}
		if ctrl.FaderIconAssetIDs != nil {
			cv.FaderIconAssetIDs = append([]string(nil), ctrl.FaderIconAssetIDs[:]...)
		}
		v.Controls = append(v.Controls, cv)
	}
	for _, pl := range pg.Placements {
		v.Placements = append(v.Placements, dto.PlacementView{
			ElementID: pl.ElementID,
			Row:       pl.Row,
			Col:       pl.Col,
			RowSpan:   pl.RowSpan,
			ColSpan:   pl.ColSpan,
		})
	}
	return v
}
