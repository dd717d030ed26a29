package tui

import (
	"fmt"
	"strings"
	"time"

	"dayspend/internal/cli"
	"dayspend/internal/model"
	"dayspend/internal/tui/components"
	"dayspend/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// txState tracks the transactions tab state.
type txState struct {
	cursor     int
	offset     int // first visible row
	confirming bool
	form       *huh.Form
	vals       txFormVals
}

type txFormVals struct {
	amount      string
	description string
	category    string
}

func (a App) updateTransactionsKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.txState.cursor < len(a.snap.Transactions)-1 {
			a.txState.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.txState.cursor > 0 {
			a.txState.cursor--
		}
		return a, nil, true
	case "g":
		a.txState.cursor = 0
		a.txState.offset = 0
		return a, nil, true
	case "G":
		a.txState.cursor = len(a.snap.Transactions) - 1
		if a.txState.cursor < 0 {
			a.txState.cursor = 0
		}
		return a, nil, true
	case "a":
		a.txState.vals = txFormVals{category: "other"}
		f := newTxForm(&a.txState.vals, a.lang)
		if a.width > 0 {
			f = f.WithWidth(a.contentWidth() - 4)
		}
		a.txState.form = f
		return a, f.Init(), true
	case "d":
		if len(a.snap.Transactions) > 0 {
			a.txState.confirming = true
		}
		return a, nil, true
	}
	return a, nil, false
}

func (a App) confirmTxDelete(key string) (tea.Model, tea.Cmd) {
	a.txState.confirming = false
	if key == "y" {
		txs := a.snap.Transactions
		if a.txState.cursor < len(txs) {
			tx := txs[a.txState.cursor]
			a.eng.DeleteTransaction(tx.ID)
			a.recompute()
			a.flash = "Deleted " + tx.Description
		}
	}
	return a, nil
}

func newTxForm(vals *txFormVals, lang string) *huh.Form {
	opts := make([]huh.Option[string], 0, len(model.Categories))
	for _, cat := range model.Categories {
		opts = append(opts, huh.NewOption(cat.Icon+" "+cat.DisplayName(lang), cat.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount").
				Validate(validateAmount).
				Value(&vals.amount),

			huh.NewInput().
				Title("Description").
				Value(&vals.description),

			huh.NewSelect[string]().
				Title("Category").
				Options(opts...).
				Value(&vals.category),
		),
	)
}

func (a App) updateTxForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.txState.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.txState.form = f
	}

	if a.txState.form.State == huh.StateCompleted {
		v := a.txState.vals
		amount, err := parseAmountStr(v.amount)
		if err == nil && amount > 0 {
			a.eng.AddTransaction(amount, strings.TrimSpace(v.description), v.category, time.Time{})
			a.recompute()
			a.txState.cursor = 0
			a.txState.offset = 0
			a.flash = "Recorded " + cli.FormatCurrency(amount, a.lang)
		}
		a.txState.form = nil
		return a, nil
	}

	if a.txState.form.State == huh.StateAborted {
		a.txState.form = nil
		return a, nil
	}

	return a, cmd
}

func (a App) renderTransactionsTab(cw, contentH int) string {
	t := theme.Active
	lang := a.lang

	if a.txState.form != nil {
		return components.ContentCard("New Transaction", a.txState.form.View(), cw)
	}

	txs := a.snap.Transactions
	if len(txs) == 0 {
		hint := lipgloss.NewStyle().Foreground(t.TextMuted).
			Render("No transactions yet. Press [a] to record one.")
		return components.ContentCard("Transactions", hint, cw)
	}

	innerW := components.CardInnerWidth(cw)

	headerStyle := lipgloss.NewStyle().Foreground(t.TextDim).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright)

	amountW := 12
	dateW := 7
	catW := 14
	descW := innerW - dateW - catW - amountW - 8
	if descW < 10 {
		descW = 10
	}

	// Visible window: card chrome takes ~5 lines (border, title, header, footer)
	visible := contentH - 6
	if visible < 3 {
		visible = 3
	}
	st := a.txState
	offset := st.offset
	if st.cursor < offset {
		offset = st.cursor
	}
	if st.cursor >= offset+visible {
		offset = st.cursor - visible + 1
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-*s  %-*s  %-*s  %*s",
		dateW, "Date", descW, "Description", catW, "Category", amountW, "Amount")))
	b.WriteString("\n")

	end := offset + visible
	if end > len(txs) {
		end = len(txs)
	}
	for i := offset; i < end; i++ {
		tx := txs[i]
		cat := model.CategoryByID(tx.CategoryID)
		line := fmt.Sprintf("%-*s  %-*s  %-*s  %*s",
			dateW, cli.FormatShortDate(tx.Date),
			descW, truncStr(tx.Description, descW),
			catW, truncStr(cat.DisplayName(lang), catW),
			amountW, cli.FormatCurrency(tx.Amount, lang))
		if i == st.cursor {
			b.WriteString(markerStyle.Render("▸ "))
			b.WriteString(selStyle.Render(line))
		} else {
			b.WriteString("  ")
			if i%2 == 0 {
				b.WriteString(rowStyle.Render(line))
			} else {
				b.WriteString(mutedStyle.Render(line))
			}
		}
		b.WriteString("\n")
	}

	if a.txState.confirming && st.cursor < len(txs) {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Bold(true)
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(fmt.Sprintf("Delete %q and restore %s? [y/N]",
			txs[st.cursor].Description,
			cli.FormatCurrency(txs[st.cursor].Amount, lang))))
	} else {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d of %d  ·  [a]dd  [d]elete  [j/k] navigate",
			st.cursor+1, len(txs))))
	}

	title := fmt.Sprintf("Transactions · spent today %s", cli.FormatCurrency(a.summary.TodaySpending, lang))
	return components.ContentCard(title, b.String(), cw)
}
