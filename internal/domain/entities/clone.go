package entities

// Clone returns a deep copy of the workspace. Snapshots handed to the
// persistence layer and to readers are clones, so the live aggregate can
// keep mutating.
func (w *Workspace) Clone() *Workspace {
	if w == nil {
		return nil
	}
	out := *w
	out.Profiles = make([]*Profile, len(w.Profiles))
	for i, p := range w.Profiles {
		out.Profiles[i] = p.Clone()
	}
	out.Assets.Icons = make(map[string]IconAsset, len(w.Assets.Icons))
	for id, icon := range w.Assets.Icons {
		out.Assets.Icons[id] = icon
	}
	out.Navigation.History = append([]Selection(nil), w.Navigation.History...)
	return &out
}

// Clone returns a deep copy of the profile with identical IDs.
func (p *Profile) Clone() *Profile {
	out := *p
	out.Pages = make([]*Page, len(p.Pages))
	for i, pg := range p.Pages {
		out.Pages[i] = pg.Clone()
	}
	return &out
}

// Clone returns a deep copy of the page with identical IDs.
func (pg *Page) Clone() *Page {
	out := *pg
	out.Style.Button.ShowLabel = cloneBool(pg.Style.Button.ShowLabel)
	out.Style.Fader.ShowLabel = cloneBool(pg.Style.Fader.ShowLabel)
	out.Controls = make([]*Control, len(pg.Controls))
	for i, c := range pg.Controls {
		out.Controls[i] = c.Clone()
	}
	out.Folders = make([]*Folder, len(pg.Folders))
	for i, f := range pg.Folders {
		cp := *f
		out.Folders[i] = &cp
	}
	out.Placements = make([]*Placement, len(pg.Placements))
	for i, pl := range pg.Placements {
		cp := *pl
		out.Placements[i] = &cp
	}
	return &out
}

// Clone returns a deep copy of the control with an identical ID.
func (c *Control) Clone() *Control {
	out := *c
	if c.StyleOverride != nil {
		st := *c.StyleOverride
		st.ShowLabel = cloneBool(c.StyleOverride.ShowLabel)
		out.StyleOverride = &st
	}
	out.ActionBinding = c.ActionBinding.Clone()
	if c.FaderIconAssetIDs != nil {
		slots := *c.FaderIconAssetIDs
		out.FaderIconAssetIDs = &slots
	}
	return &out
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
