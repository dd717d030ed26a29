package tui

import (
	"fmt"
	"strings"
	"time"

	"dayspend/internal/cli"
	"dayspend/internal/tui/components"
	"dayspend/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// expState tracks the fixed expenses tab state.
type expState struct {
	cursor     int
	confirming bool
	form       *huh.Form
	vals       expFormVals
}

type expFormVals struct {
	name   string
	amount string
	due    string
}

func (a App) updateExpensesKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.expState.cursor < len(a.snap.FixedExpenses)-1 {
			a.expState.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.expState.cursor > 0 {
			a.expState.cursor--
		}
		return a, nil, true
	case "a":
		a.expState.vals = expFormVals{}
		f := newExpForm(&a.expState.vals)
		if a.width > 0 {
			f = f.WithWidth(a.contentWidth() - 4)
		}
		a.expState.form = f
		return a, f.Init(), true
	case "d":
		if len(a.snap.FixedExpenses) > 0 {
			a.expState.confirming = true
		}
		return a, nil, true
	}
	return a, nil, false
}

func (a App) confirmExpDelete(key string) (tea.Model, tea.Cmd) {
	a.expState.confirming = false
	if key == "y" {
		exps := a.snap.FixedExpenses
		if a.expState.cursor < len(exps) {
			exp := exps[a.expState.cursor]
			a.eng.DeleteFixedExpense(exp.ID)
			a.recompute()
			a.flash = "Removed " + exp.Name
		}
	}
	return a, nil
}

func newExpForm(vals *expFormVals) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}).
				Value(&vals.name),

			huh.NewInput().
				Title("Amount").
				Validate(validateAmount).
				Value(&vals.amount),

			huh.NewInput().
				Title("Due date").
				Description("YYYY-MM-DD, leave blank if it is due every cycle").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					return validateDate(s)
				}).
				Value(&vals.due),
		),
	)
}

func (a App) updateExpForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.expState.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.expState.form = f
	}

	if a.expState.form.State == huh.StateCompleted {
		v := a.expState.vals
		amount, err := parseAmountStr(v.amount)
		if err == nil && amount > 0 {
			exp := a.eng.AddFixedExpense(strings.TrimSpace(v.name), amount, parseOptionalDue(v.due))
			a.recompute()
			a.flash = "Added " + exp.Name
		}
		a.expState.form = nil
		return a, nil
	}

	if a.expState.form.State == huh.StateAborted {
		a.expState.form = nil
		return a, nil
	}

	return a, cmd
}

func parseOptionalDue(s string) *time.Time {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	d, err := parseDateStr(s)
	if err != nil {
		return nil
	}
	return &d
}

func (a App) renderExpensesTab(cw int) string {
	t := theme.Active
	lang := a.lang

	if a.expState.form != nil {
		return components.ContentCard("New Fixed Expense", a.expState.form.View(), cw)
	}

	exps := a.snap.FixedExpenses
	if len(exps) == 0 {
		hint := lipgloss.NewStyle().Foreground(t.TextMuted).
			Render("No fixed expenses yet. Press [a] to add rent, subscriptions, and other bills.")
		return components.ContentCard("Fixed Expenses", hint, cw)
	}

	innerW := components.CardInnerWidth(cw)

	headerStyle := lipgloss.NewStyle().Foreground(t.TextDim).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright)
	greenStyle := lipgloss.NewStyle().Foreground(t.Green)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	amountW := 12
	dueW := 12
	inBudgetW := 9
	nameW := innerW - amountW - dueW - inBudgetW - 8
	if nameW < 10 {
		nameW = 10
	}

	var next *time.Time
	if si := a.snap.SalaryInfo; si != nil {
		d := si.NextDate
		next = &d
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-*s  %*s  %-*s  %s",
		nameW, "Name", amountW, "Amount", dueW, "Due", "In budget")))
	b.WriteString("\n")

	total := 0.0
	dueTotal := 0.0
	for i, exp := range exps {
		due := "every cycle"
		if exp.DueDate != nil {
			due = cli.FormatShortDate(*exp.DueDate)
		}

		counted := next == nil || exp.DueDate == nil || exp.DueDate.Before(*next)
		inBudget := "—"
		if counted {
			inBudget = "yes"
			dueTotal += exp.Amount
		}
		total += exp.Amount

		line := fmt.Sprintf("%-*s  %*s  %-*s  ",
			nameW, truncStr(exp.Name, nameW),
			amountW, cli.FormatCurrency(exp.Amount, lang),
			dueW, due)
		if i == a.expState.cursor {
			b.WriteString(markerStyle.Render("▸ "))
			b.WriteString(selStyle.Render(line + inBudget))
		} else {
			b.WriteString("  ")
			b.WriteString(rowStyle.Render(line))
			if counted {
				b.WriteString(greenStyle.Render(inBudget))
			} else {
				b.WriteString(dimStyle.Render(inBudget))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if a.expState.confirming && a.expState.cursor < len(exps) {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Bold(true)
		b.WriteString(warnStyle.Render(fmt.Sprintf("Delete %q? [y/N]", exps[a.expState.cursor].Name)))
	} else {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Total %s · counted before payday %s  ·  [a]dd  [d]elete",
			cli.FormatCurrency(total, lang), cli.FormatCurrency(dueTotal, lang))))
	}

	return components.ContentCard("Fixed Expenses", b.String(), cw)
}
