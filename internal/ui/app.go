package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/pdfscout/internal/core"
	"github.com/lumipallolabs/pdfscout/internal/enumerator"
	"github.com/lumipallolabs/pdfscout/internal/logging"
	"github.com/lumipallolabs/pdfscout/internal/model"
)

// Message types for Bubble Tea
type (
	scanStartMsg         struct{}
	scanEventMsg         struct{ event core.Event }
	scanCompleteDelayMsg struct{ result *enumerator.Result }
)

// completeDisplayDelay is how long "Complete" shows before the results
const completeDisplayDelay = 300 * time.Millisecond

// maxRootErrorLines caps the invalid-root lines shown above the panels
const maxRootErrorLines = 3

// App is the main TUI application model
type App struct {
	// Core controller (business logic)
	ctrl *core.Controller

	// UI Components
	header  Header
	list    ResultList
	overlay HelpOverlay
	help    help.Model
	spinner spinner.Model
	keys    KeyMap

	// UI state
	err      error
	rootErrs []*enumerator.RootError

	// Event channel, listened to again after each event
	scanEventCh <-chan core.Event

	// Dimensions
	width  int
	height int
}

// NewApp creates a new application instance
func NewApp(ctrl *core.Controller, version string) App {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)

	app := App{
		ctrl:    ctrl,
		header:  NewHeader(ctrl.Roots(), version),
		list:    NewResultList(),
		overlay: NewHelpOverlay(version),
		help:    help.New(),
		spinner: s,
		keys:    DefaultKeyMap(),
	}
	app.header.SetScanning(true, "")
	app.header.SetSort(app.list.Sort().String())
	return app
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	return func() tea.Msg {
		return scanStartMsg{}
	}
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case scanStartMsg:
		return a.startScan()

	case scanEventMsg:
		return a.handleScanEvent(msg.event)

	case scanCompleteDelayMsg:
		return a.finalizeScan(msg.result)

	case spinner.TickMsg:
		if !a.ctrl.ScanState().IsScanning() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

// handleScanEvent processes scan events and continues listening
func (a App) handleScanEvent(event core.Event) (tea.Model, tea.Cmd) {
	switch e := event.(type) {
	case core.ScanProgressEvent:
		a.header.SetScanning(true, fmt.Sprintf("%d dirs, %d files, %d PDFs",
			e.DirsScanned, e.FilesScanned, e.Matches))
		return a, a.listenForScanEvents()

	case core.RootFailedEvent:
		a.rootErrs = append(a.rootErrs, e.Err)
		return a, a.listenForScanEvents()

	case core.ScanPhaseChangedEvent:
		logging.UI.WithField("phase", e.Phase.String()).Debug("phase changed")
		return a, a.listenForScanEvents()

	case core.ScanCompletedEvent:
		if e.Result == nil {
			a.err = e.Err
			a.header.SetScanning(false, "")
			return a, nil
		}
		// Show "Complete" briefly before showing data
		return a, tea.Tick(completeDisplayDelay, func(time.Time) tea.Msg {
			return scanCompleteDelayMsg{result: e.Result}
		})

	default:
		// ScanStartedEvent - just continue listening
		return a, a.listenForScanEvents()
	}
}

// startScan begins the scanning process
func (a App) startScan() (tea.Model, tea.Cmd) {
	eventCh, err := a.ctrl.StartScan(context.Background())
	if err != nil {
		if !errors.Is(err, core.ErrScanInProgress) {
			a.err = err
			a.header.SetScanning(false, "")
		}
		return a, nil
	}

	a.scanEventCh = eventCh
	a.err = nil
	a.rootErrs = nil
	a.header.SetScanning(true, "")

	return a, tea.Batch(a.listenForScanEvents(), a.spinner.Tick)
}

// listenForScanEvents creates a command that listens for scan events
func (a App) listenForScanEvents() tea.Cmd {
	if a.scanEventCh == nil {
		return nil
	}
	eventCh := a.scanEventCh
	return func() tea.Msg {
		event, ok := <-eventCh
		if !ok {
			return nil // Channel closed
		}
		return scanEventMsg{event: event}
	}
}

// finalizeScan completes the scan and shows data
func (a App) finalizeScan(res *enumerator.Result) (tea.Model, tea.Cmd) {
	a.ctrl.FinalizeScan()
	a.list.SetEntries(res.Entries)
	a.header.SetTotals(len(res.Entries), model.TotalSize(res.Entries))
	a.header.SetScanning(false, "")
	a.updateLayout()
	return a, nil
}

// handleKey handles keyboard input
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay - any key closes it
	if a.overlay.IsVisible() {
		a.overlay.SetVisible(false)
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.ctrl.Cancel()
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.overlay.Toggle()
		return a, nil

	case key.Matches(msg, a.keys.Up):
		a.list.MoveUp()
	case key.Matches(msg, a.keys.Down):
		a.list.MoveDown()
	case key.Matches(msg, a.keys.PageUp):
		a.list.PageUp()
	case key.Matches(msg, a.keys.PageDown):
		a.list.PageDown()
	case key.Matches(msg, a.keys.Top):
		a.list.GoToTop()
	case key.Matches(msg, a.keys.Bottom):
		a.list.GoToBottom()

	case key.Matches(msg, a.keys.CycleSort):
		a.list.CycleSort()
		a.header.SetSort(a.list.Sort().String())

	case key.Matches(msg, a.keys.Open):
		a.withSelected("open", openDocument)

	case key.Matches(msg, a.keys.Reveal):
		a.withSelected("reveal", revealInFileManager)

	case key.Matches(msg, a.keys.Rescan):
		if a.ctrl.ScanState().IsScanning() {
			return a, nil
		}
		a.list.SetEntries(nil)
		return a.startScan()
	}

	return a, nil
}

// withSelected runs action on the selected PDF, logging failures
func (a App) withSelected(name string, action func(string) error) {
	e, ok := a.list.Selected()
	if !ok {
		return
	}
	log := logging.UI.WithField("path", e.Path)
	log.Debugf("%s requested", name)
	if err := action(e.Path); err != nil {
		log.WithError(err).Warnf("%s failed", name)
	}
}

// updateLayout calculates component sizes
func (a *App) updateLayout() {
	headerHeight := 2
	helpBarHeight := 1
	errHeight := min(len(a.rootErrs), maxRootErrorLines)

	panelHeight := max(a.height-headerHeight-helpBarHeight-errHeight, 3)

	listWidth := max(a.width*3/5, 20)

	a.header.SetWidth(a.width)
	a.list.SetSize(listWidth, panelHeight)
	a.overlay.SetSize(a.width, a.height)
	a.help.Width = a.width
}

// View implements tea.Model
func (a App) View() string {
	state := a.ctrl.ScanState()

	if a.width == 0 || a.height == 0 {
		if state.IsScanning() {
			return "Scanning roots..."
		}
		return "Loading..."
	}

	if a.overlay.IsVisible() {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.overlay.View())
	}

	sections := []string{a.header.View()}

	if a.err != nil {
		sections = append(sections, ErrorStyle.Render(fmt.Sprintf("Error: %v", a.err)))
	}
	for i, re := range a.rootErrs {
		if i == maxRootErrorLines {
			break
		}
		sections = append(sections, ErrorStyle.Render(re.Error()))
	}

	if state.IsScanning() {
		sections = append(sections, a.renderScanningPanel(state))
	} else {
		sections = append(sections, a.renderMainPanels())
	}

	sections = append(sections, a.help.View(a.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderScanningPanel renders the scanning progress box
func (a App) renderScanningPanel(state core.ScanState) string {
	doneStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	activeStyle := lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
	dirStyle := lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
	fileStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	timeStyle := lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)

	var phaseLine string
	if state.Phase == core.PhaseComplete {
		phaseLine = doneStyle.Render("✓ Complete")
	} else {
		phaseLine = a.spinner.View() + " " + activeStyle.Render(state.Phase.String())
	}

	lines := []string{
		phaseLine,
		"",
		fmt.Sprintf("%s  %s", LabelStyle.Render("DIRS "), dirStyle.Render(fmt.Sprint(state.DirsScanned))),
		fmt.Sprintf("%s  %s", LabelStyle.Render("FILES"), fileStyle.Render(fmt.Sprint(state.FilesScanned))),
		fmt.Sprintf("%s  %s", LabelStyle.Render("PDFS "), doneStyle.Render(fmt.Sprint(state.Matches))),
		fmt.Sprintf("%s  %s", LabelStyle.Render("TIME "), timeStyle.Render(state.Elapsed().String())),
	}

	box := ScanBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	height := max(a.height-4, 1)
	return lipgloss.Place(a.width, height, lipgloss.Center, lipgloss.Center, box)
}

// renderMainPanels renders the result list and the details panel
func (a App) renderMainPanels() string {
	listView := a.list.View()
	selected, ok := a.list.Selected()
	detailsWidth := a.width - lipgloss.Width(listView)
	details := renderDetails(selected, ok, detailsWidth, lipgloss.Height(listView))
	return lipgloss.JoinHorizontal(lipgloss.Top, listView, details)
}
