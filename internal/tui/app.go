// Package tui provides the interactive Bubble Tea dashboard for dayspend.
package tui

import (
	"fmt"
	"strings"
	"time"

	"dayspend/internal/budget"
	"dayspend/internal/cli"
	"dayspend/internal/config"
	"dayspend/internal/model"
	"dayspend/internal/tui/components"
	"dayspend/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// App is the root Bubble Tea model.
type App struct {
	eng  *budget.Engine
	cfg  config.Config
	lang string

	// Recomputed after every mutation and on each tick
	snap    model.Snapshot
	summary budget.Summary

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	flash     string // one-line feedback after an action

	// Per-tab state
	txState  txState
	expState expState
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool
}

const (
	minTerminalWidth = 70
	maxContentWidth  = 140
	minContentHeight = 5

	tabOverview     = 0
	tabTransactions = 1
	tabExpenses     = 2
	tabSettings     = 3
)

// NewApp creates a new TUI app model. The engine must already be hydrated.
func NewApp(eng *budget.Engine, cfg config.Config) App {
	a := App{
		eng:       eng,
		cfg:       cfg,
		lang:      cfg.General.Language,
		needSetup: !eng.IsSetupComplete(),
	}
	if a.needSetup {
		a.setupForm = newSetupForm(&a.setupVals)
	}
	a.recompute()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		tickCmd(),
	}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

func (a *App) recompute() {
	a.snap = a.eng.Snapshot()
	a.summary = budget.Summarize(time.Now(), a.snap)

	// Clamp cursors to the new list bounds
	if a.txState.cursor >= len(a.snap.Transactions) {
		a.txState.cursor = len(a.snap.Transactions) - 1
	}
	if a.txState.cursor < 0 {
		a.txState.cursor = 0
	}
	if a.expState.cursor >= len(a.snap.FixedExpenses) {
		a.expState.cursor = len(a.snap.FixedExpenses) - 1
	}
	if a.expState.cursor < 0 {
		a.expState.cursor = 0
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || (a.needSetup && a.setupForm != nil) || a.formActive() {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			switch a.activeTab {
			case tabTransactions:
				if a.txState.cursor > 0 {
					a.txState.cursor--
				}
			case tabExpenses:
				if a.expState.cursor > 0 {
					a.expState.cursor--
				}
			}
			return a, nil

		case tea.MouseButtonWheelDown:
			switch a.activeTab {
			case tabTransactions:
				if a.txState.cursor < len(a.snap.Transactions)-1 {
					a.txState.cursor++
				}
			case tabExpenses:
				if a.expState.cursor < len(a.snap.FixedExpenses)-1 {
					a.expState.cursor++
				}
			}
			return a, nil

		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 && tab < len(components.Tabs) {
					a.activeTab = tab
					a.flash = ""
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Inline add forms intercept all keys
		if a.txState.form != nil {
			return a.updateTxForm(msg)
		}
		if a.expState.form != nil {
			return a.updateExpForm(msg)
		}

		// Settings tab editing has its own keybindings (text input)
		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// Delete confirmations
		if a.txState.confirming {
			return a.confirmTxDelete(key)
		}
		if a.expState.confirming {
			return a.confirmExpDelete(key)
		}

		// Tab-specific keybindings
		switch a.activeTab {
		case tabTransactions:
			if m, cmd, handled := a.updateTransactionsKeys(key); handled {
				return m, cmd
			}
		case tabExpenses:
			if m, cmd, handled := a.updateExpensesKeys(key); handled {
				return m, cmd
			}
		case tabSettings:
			switch key {
			case "j", "down":
				if a.settings.cursor < settingsFieldCount-1 {
					a.settings.cursor++
				}
				return a, nil
			case "k", "up":
				if a.settings.cursor > 0 {
					a.settings.cursor--
				}
				return a, nil
			case "enter":
				return a.settingsStartEdit()
			}
		}

		if key == "q" {
			return a, tea.Quit
		}

		// Tab navigation
		switch key {
		case "o":
			a.activeTab = tabOverview
		case "t":
			a.activeTab = tabTransactions
		case "e":
			a.activeTab = tabExpenses
		case "x":
			a.activeTab = tabSettings
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		}
		a.flash = ""
		return a, nil

	case tickMsg:
		// Salary can become due while the dashboard is open.
		if a.eng.CheckAndProcessSalary() {
			a.flash = "Salary credited"
		}
		a.recompute()
		return a, tickCmd()
	}

	// Forward unhandled messages to active forms (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.txState.form != nil {
		return a.updateTxForm(msg)
	}
	if a.expState.form != nil {
		return a.updateExpForm(msg)
	}

	return a, nil
}

// formActive reports whether an inline add form is capturing input.
func (a App) formActive() bool {
	return a.txState.form != nil || a.expState.form != nil
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	// First-run setup wizard
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  dayspend needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"o t e x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate lists"},
		{"g G", "First / Last entry"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"a", "Add transaction / expense"},
		{"d", "Delete selected entry"},
		{"Enter", "Edit / Confirm"},
		{"Esc", "Back / Cancel"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + context row (flash message or payday countdown)
	contextStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	context := ""
	switch {
	case a.flash != "":
		context = accentStyle.Render(" " + a.flash)
	case a.snap.SalaryInfo != nil:
		context = contextStyle.Render(" Next payday ") +
			accentStyle.Render(cli.FormatDate(a.snap.SalaryInfo.NextDate)) +
			contextStyle.Render(" · "+cli.FormatDays(a.summary.DaysRemaining))
	}

	header := components.RenderTabBar(a.activeTab, w) + context

	// 2. Status bar
	right := ""
	if a.eng.LastSaveError() != nil {
		right = lipgloss.NewStyle().Foreground(t.Red).Render("save failed")
	}
	statusBar := components.RenderStatusBar(w, right)

	// 3. Content zone height
	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabTransactions:
		content = a.renderTransactionsTab(cw, contentH)
	case tabExpenses:
		content = a.renderExpensesTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Center when the terminal is wider than the content cap
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// ─── Helpers ────────────────────────────────────────────────────

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(30*time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Two-column separator between tabs.
		if i < len(components.Tabs)-1 {
			pos += 2
		}
	}
	return -1
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
