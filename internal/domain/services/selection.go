package services

import "github.com/remotedeck/remotedeck/internal/domain/entities"

// HealSelection re-establishes the active-selection invariant: the active
// profile exists, and the active page belongs to it. Missing profiles or
// pages are created so there is always something to select. It reports
// whether the selection changed.
func HealSelection(ws *entities.Workspace) bool {
	before := ws.Selection()

	if len(ws.Profiles) == 0 {
		used := UsedIDs(ws)
		profileID := NextFreeID(used, PrefixProfile)
		ws.Profiles = append(ws.Profiles, NewProfile(profileID, "", NextFreeID(used, PrefixPage)))
	}
	for _, p := range ws.Profiles {
		if len(p.Pages) == 0 {
			p.Pages = append(p.Pages, NewPage(NextID(ws, PrefixPage), ""))
		}
	}

	profile, ok := ws.Profile(ws.ActiveProfileID)
	if !ok {
		profile = ws.Profiles[0]
		ws.ActiveProfileID = profile.ID
	}
	page, ok := profile.Page(ws.ActivePageID)
	if !ok {
		page = profile.Pages[0]
		ws.ActivePageID = page.ID
	}
	if ws.Navigation.ActiveFolderID != "" {
		if _, ok := page.Folder(ws.Navigation.ActiveFolderID); !ok {
			ws.Navigation.ActiveFolderID = ""
		}
	}
	ws.LastSession = ws.Selection()
	return ws.Selection() != before
}
