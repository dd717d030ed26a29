package tui

import (
	"fmt"
	"strings"

	"dayspend/internal/cli"
	"dayspend/internal/config"
	"dayspend/internal/model"
	"dayspend/internal/tui/components"
	"dayspend/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldLanguage = iota
	settingsFieldTheme
	settingsFieldBalance
	settingsFieldTarget
	settingsFieldSalary
	settingsFieldSecond
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldLanguage:
		ti.Placeholder = "en or no"
		ti.SetValue(a.cfg.General.Language)
	case settingsFieldTheme:
		ti.Placeholder = "flexoki-dark, catppuccin-mocha, tokyo-night, terminal"
		ti.SetValue(a.cfg.Appearance.Theme)
	case settingsFieldBalance:
		ti.SetValue(fmt.Sprintf("%.2f", a.snap.CurrentBalance))
	case settingsFieldTarget:
		ti.SetValue(fmt.Sprintf("%.2f", a.snap.TargetBalance))
	case settingsFieldSalary:
		if si := a.snap.SalaryInfo; si != nil {
			ti.SetValue(fmt.Sprintf("%.2f", si.Amount))
		}
	case settingsFieldSecond:
		ti.Placeholder = "leave empty to keep unchanged"
		if si := a.snap.SalaryInfo; si != nil && si.SecondAmount != nil {
			ti.SetValue(fmt.Sprintf("%.2f", *si.SecondAmount))
		}
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave() {
	a.settings.saveErr = nil
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldLanguage:
		if val != "en" && val != "no" {
			return
		}
		a.cfg.General.Language = val
		a.lang = val
		a.settings.saveErr = config.Save(a.cfg)

	case settingsFieldTheme:
		found := false
		for _, t := range theme.All {
			if t.Name == val {
				found = true
				break
			}
		}
		if !found {
			return
		}
		a.cfg.Appearance.Theme = val
		theme.SetActive(val)
		a.settings.saveErr = config.Save(a.cfg)

	case settingsFieldBalance:
		if v, err := parseAmountStr(val); err == nil {
			a.eng.UpdateBalance(v)
		}

	case settingsFieldTarget:
		if v, err := parseAmountStr(val); err == nil {
			a.eng.UpdateTargetBalance(v)
		}

	case settingsFieldSalary:
		si := a.snap.SalaryInfo
		if si == nil {
			return
		}
		if v, err := parseAmountStr(val); err == nil && v >= 0 {
			a.eng.UpdateSalaryAmount(v, nil)
		}

	case settingsFieldSecond:
		si := a.snap.SalaryInfo
		if si == nil || si.Frequency != model.FrequencyBiweekly {
			return
		}
		if val == "" {
			return
		}
		if v, err := parseAmountStr(val); err == nil && v >= 0 {
			a.eng.UpdateSalaryAmount(si.Amount, &v)
		}
	}

	a.recompute()
	if err := a.eng.LastSaveError(); err != nil && a.settings.saveErr == nil {
		a.settings.saveErr = err
	}
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	lang := a.lang

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright)

	type field struct {
		label string
		value string
	}

	salaryDisplay := "(not set up)"
	secondDisplay := "(single payment)"
	if si := a.snap.SalaryInfo; si != nil {
		salaryDisplay = cli.FormatCurrency(si.Amount, lang)
		if si.Frequency == model.FrequencyBiweekly {
			secondDisplay = "(not set)"
			if si.SecondAmount != nil {
				secondDisplay = cli.FormatCurrency(*si.SecondAmount, lang)
			}
		}
	}

	fields := []field{
		{"Language", a.cfg.General.Language},
		{"Theme", a.cfg.Appearance.Theme},
		{"Current Balance", cli.FormatCurrency(a.snap.CurrentBalance, lang)},
		{"Target Reserve", cli.FormatCurrency(a.snap.TargetBalance, lang)},
		{"Salary Amount", salaryDisplay},
		{"Second Payment", secondDisplay},
	}

	var formBody strings.Builder
	for i, f := range fields {
		// Show text input if currently editing this field
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-16s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(selectedLabelStyle.Render(fmt.Sprintf("%-16s ", f.label+":")))
			formBody.WriteString(selectedStyle.Render(f.value))
		} else {
			formBody.WriteString("  ")
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-16s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	// Schedule info card
	var infoBody strings.Builder
	if si := a.snap.SalaryInfo; si != nil {
		infoBody.WriteString(labelStyle.Render("Frequency:    ") + valueStyle.Render(string(si.Frequency)) + "\n")
		infoBody.WriteString(labelStyle.Render("Next payday:  ") + valueStyle.Render(cli.FormatDate(si.NextDate)) + "\n")
		if si.HasSecondSalary() && si.SecondDate != nil {
			infoBody.WriteString(labelStyle.Render("Second date:  ") + valueStyle.Render(cli.FormatDate(*si.SecondDate)) + "\n")
		}
		if a.snap.LastSalaryProcessed != nil {
			infoBody.WriteString(labelStyle.Render("Last credit:  ") + valueStyle.Render(cli.FormatDate(*a.snap.LastSalaryProcessed)) + "\n")
		}
	}
	infoBody.WriteString(labelStyle.Render("Data dir:     ") + valueStyle.Render(config.DataDir(a.cfg)) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:  ") + valueStyle.Render(config.ConfigPath()))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Salary Schedule", infoBody.String(), cw))

	return b.String()
}
