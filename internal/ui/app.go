package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"SketchBoard/internal/state"
)

// Options configures the editor window.
type Options struct {
	ShareLink string
	ShowGrid  bool
	// OnChange receives every surface after the board has painted it.
	OnChange func(state.Surface)
}

// RunApp opens the editor for session and blocks until it is closed.
func RunApp(session *state.Session, opts Options) {
	myApp := app.New()
	myWindow, _ := NewWindow(myApp, session, opts)
	myWindow.ShowAndRun()
}

// NewWindow lays out the toolbar, board and status bar in a new window.
func NewWindow(a fyne.App, session *state.Session, opts Options) (fyne.Window, *BoardWidget) {
	myWindow := a.NewWindow("SketchBoard")
	myWindow.Resize(fyne.NewSize(1024, 768))

	board := NewBoardWidget(session)
	board.watchModifiers(myWindow.Canvas())
	board.SetShowGrid(opts.ShowGrid)
	board.SetShareLink(opts.ShareLink)
	board.OnChange = opts.OnChange
	toolbar := NewToolbar(board, myWindow)

	content := container.NewBorder(toolbar.Content(), board.StatusBar(), nil, nil, board)
	myWindow.SetContent(content)
	return myWindow, board
}
