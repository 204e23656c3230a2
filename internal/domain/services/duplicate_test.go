package services

import (
	"testing"

	"github.com/remotedeck/remotedeck/internal/domain/actions"
	"github.com/remotedeck/remotedeck/internal/domain/entities"
	"github.com/remotedeck/remotedeck/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sourcePage() *entities.Workspace {
	ws := NewWorkspace()
	_, page, _ := ws.ActivePage()
	page.Folders = append(page.Folders, &entities.Folder{ID: "folder1", Name: "Mixer"})
	b := NewControl("button1", values.ControlButton, "folder1")
	b.ActionBinding = actions.NewSingle(actions.Hotkey{Keys: "ctrl+a"})
	page.Controls = append(page.Controls, b, NewControl("fader1", values.ControlFader, ""))
	page.Placements = append(page.Placements,
		&entities.Placement{ID: "placement1", ElementID: "button1", Row: 1, Col: 1, RowSpan: 1, ColSpan: 1},
		&entities.Placement{ID: "placement2", ElementID: "fader1", Row: 1, Col: 2, RowSpan: 4, ColSpan: 1},
	)
	return ws
}

func TestDuplicatePage_RemapsReferences(t *testing.T) {
	ws := sourcePage()
	_, src, _ := ws.ActivePage()

	dup := DuplicatePage(src, UsedIDs(ws))

	assert.Equal(t, "page2", dup.ID)
	assert.Equal(t, "Page 1 (copy)", dup.Name)
	require.Len(t, dup.Folders, 1)
	assert.Equal(t, "folder2", dup.Folders[0].ID)

	b, ok := dup.Control("button2")
	require.True(t, ok)
	assert.Equal(t, "folder2", b.FolderID)
	assert.Equal(t, src.Controls[0].ActionBinding, b.ActionBinding)
	assert.NotSame(t, src.Controls[0].ActionBinding, b.ActionBinding)

	pl, ok := dup.PlacementFor("fader2")
	require.True(t, ok)
	assert.Equal(t, "placement4", pl.ID)
	assert.Equal(t, 2, pl.Col)

	// Source is untouched.
	assert.Equal(t, "button1", src.Placements[0].ElementID)
	assert.Equal(t, "folder1", src.Controls[0].FolderID)
}

func TestDuplicateFolder_CopiesMembersUnplaced(t *testing.T) {
	ws := sourcePage()
	_, page, _ := ws.ActivePage()
	folder, _ := page.Folder("folder1")

	dup, members := DuplicateFolder(page, folder, UsedIDs(ws))

	assert.Equal(t, "folder2", dup.ID)
	assert.Equal(t, "Mixer", dup.Name)
	require.Len(t, members, 1)
	assert.Equal(t, "button2", members[0].ID)
	assert.Equal(t, "folder2", members[0].FolderID)
	_, placed := page.PlacementFor("button2")
	assert.False(t, placed)
}

func TestDuplicateControl(t *testing.T) {
	ws := sourcePage()
	_, page, _ := ws.ActivePage()
	fader, _ := page.Control("fader1")

	dup := DuplicateControl(fader, UsedIDs(ws))

	assert.Equal(t, "fader2", dup.ID)
	assert.Equal(t, fader.Type, dup.Type)
	assert.NotSame(t, fader.FaderIconAssetIDs, dup.FaderIconAssetIDs)
}
