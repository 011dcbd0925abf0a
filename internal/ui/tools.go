package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/geometry"
	"SketchBoard/internal/state"
)

// tool is one mode button of the toolbar.
type tool struct {
	label string
	icon  func() fyne.Resource
	mode  state.Mode
}

var tools = []tool{
	{"Move", theme.ViewRestoreIcon, state.ModeMove},
	{"Select", theme.ConfirmIcon, state.ModeNormal},
	{"Rectangle", theme.CheckButtonIcon, state.AddMode(geometry.Rectangle)},
	{"Ellipse", theme.RadioButtonIcon, state.AddMode(geometry.Ellipse)},
	{"Text", theme.DocumentCreateIcon, state.AddMode(geometry.Text)},
	{"Line", theme.ContentRemoveIcon, state.AddMode(geometry.Line)},
	{"Arrow", theme.NavigateNextIcon, state.AddMode(geometry.Arrow)},
}

// Toolbar holds the mode buttons and keeps the active one highlighted.
type Toolbar struct {
	board   *BoardWidget
	buttons []*widget.Button
	content fyne.CanvasObject
}

// NewToolbar builds the mode, clear and export controls for board.
func NewToolbar(board *BoardWidget, win fyne.Window) *Toolbar {
	t := &Toolbar{board: board}

	items := []fyne.CanvasObject{}
	for _, tl := range tools {
		mode := tl.mode
		btn := widget.NewButtonWithIcon(tl.label, tl.icon(), func() {
			board.SetMode(mode)
		})
		t.buttons = append(t.buttons, btn)
		items = append(items, btn)
	}

	clearButton := widget.NewButtonWithIcon("Clear Shapes", theme.DeleteIcon(), func() {
		confirmClear(board, win)
	})
	clearButton.Importance = widget.DangerImportance

	exports := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { ShowExport(board, win, FormatPDF) }),
		widget.NewToolbarAction(theme.FileImageIcon(), func() { ShowExport(board, win, FormatPNG) }),
		widget.NewToolbarAction(theme.FileIcon(), func() { ShowExport(board, win, FormatSVG) }),
	)

	items = append(items, widget.NewSeparator(), clearButton, layout.NewSpacer(), widget.NewLabel("Export:"), exports)
	t.content = container.NewHBox(items...)

	previous := board.OnChange
	board.OnChange = func(s state.Surface) {
		t.sync()
		if previous != nil {
			previous(s)
		}
	}
	t.sync()
	return t
}

// Content returns the toolbar's canvas object.
func (t *Toolbar) Content() fyne.CanvasObject { return t.content }

// sync highlights the button of the current mode.
func (t *Toolbar) sync() {
	mode := t.board.Session().Mode()
	for i, tl := range tools {
		want := widget.MediumImportance
		if tl.mode == mode {
			want = widget.HighImportance
		}
		if t.buttons[i].Importance != want {
			t.buttons[i].Importance = want
			t.buttons[i].Refresh()
		}
	}
}

func confirmClear(board *BoardWidget, win fyne.Window) {
	dialog.ShowConfirm("You sure you want to delete all shapes?", "This will clear the whole canvas.", func(ok bool) {
		if ok {
			board.ConfirmClear()
		}
	}, win)
}

func statusText(s state.Surface, shareLink string) string {
	text := fmt.Sprintf("%s  ·  zoom %.0f%%  ·  %d shapes", s.Mode, s.View.Zoom*100, len(s.Shapes))
	if shareLink != "" {
		text += "  ·  viewers: " + shareLink
	}
	return text
}
