package services

import "github.com/remotedeck/remotedeck/internal/domain/entities"

// CopySuffix is appended to the name of a duplicated page.
const CopySuffix = " (copy)"

// DuplicatePage deep-copies a page, giving every folder, control and
// placement a fresh ID from used. Folder memberships and placements are
// remapped onto the copies, so the duplicate renders exactly like the
// source.
func DuplicatePage(src *entities.Page, used IDSet) *entities.Page {
	dup := src.Clone()
	dup.ID = NextFreeID(used, PrefixPage)
	dup.Name = src.Name + CopySuffix

	folders := make(map[string]string, len(dup.Folders))
	for _, f := range dup.Folders {
		old := f.ID
		f.ID = NextFreeID(used, PrefixFolder)
		folders[old] = f.ID
	}
	controls := make(map[string]string, len(dup.Controls))
	for _, c := range dup.Controls {
		old := c.ID
		c.ID = NextFreeID(used, c.Type.IDPrefix())
		controls[old] = c.ID
		if c.FolderID != "" {
			c.FolderID = folders[c.FolderID]
		}
	}
	for _, pl := range dup.Placements {
		pl.ID = NextFreeID(used, PrefixPlacement)
		pl.ElementID = controls[pl.ElementID]
	}
	return dup
}

// DuplicateFolder copies a folder and every control that belongs to it.
// The copies stay on the source page, so they start unplaced: the
// originals still own their cells.
func DuplicateFolder(page *entities.Page, folder *entities.Folder, used IDSet) (*entities.Folder, []*entities.Control) {
	dup := *folder
	dup.ID = NextFreeID(used, PrefixFolder)

	members := page.FolderMembers(folder.ID)
	copies := make([]*entities.Control, 0, len(members))
	for _, c := range members {
		cp := DuplicateControl(c, used)
		cp.FolderID = dup.ID
		copies = append(copies, cp)
	}
	return &dup, copies
}

// DuplicateControl copies a control with a fresh ID. The copy keeps the
// folder membership and binding of the source but has no placement.
func DuplicateControl(c *entities.Control, used IDSet) *entities.Control {
	dup := c.Clone()
	dup.ID = NextFreeID(used, c.Type.IDPrefix())
	return dup
}
