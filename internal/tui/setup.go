package tui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"dayspend/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// setupValues holds the raw first-run form inputs before parsing.
type setupValues struct {
	frequency string
	lastPaid  string
	amount    string
	second    string
	balance   string
	target    string
}

func newSetupForm(vals *setupValues) *huh.Form {
	vals.lastPaid = time.Now().Format("2006-01-02")
	vals.frequency = string(model.FrequencyMonthly)
	vals.target = "0"

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Salary frequency").
				Options(
					huh.NewOption("Monthly", string(model.FrequencyMonthly)),
					huh.NewOption("Every two weeks", string(model.FrequencyBiweekly)),
				).
				Value(&vals.frequency),

			huh.NewInput().
				Title("Last salary date").
				Description("YYYY-MM-DD").
				Validate(validateDate).
				Value(&vals.lastPaid),

			huh.NewInput().
				Title("Salary amount").
				Validate(validateAmount).
				Value(&vals.amount),

			huh.NewInput().
				Title("Second monthly payment").
				Description("Leave blank if you are paid once per cycle").
				Validate(validateOptionalAmount).
				Value(&vals.second),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Current account balance").
				Validate(validateNumber).
				Value(&vals.balance),

			huh.NewInput().
				Title("Target reserve").
				Description("Amount to keep untouched at the end of each cycle").
				Validate(validateNumber).
				Value(&vals.target),
		),
	)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.applySetup()
		a.needSetup = false
		a.setupForm = nil
		a.flash = "Welcome to dayspend"
		return a, nil
	}

	// Nothing to show without a configured budget.
	if a.setupForm.State == huh.StateAborted {
		return a, tea.Quit
	}

	return a, cmd
}

func (a *App) applySetup() {
	v := a.setupVals

	freq, err := model.ParseFrequency(v.frequency)
	if err != nil {
		freq = model.FrequencyMonthly
	}
	lastPaid, err := parseDateStr(v.lastPaid)
	if err != nil {
		lastPaid = time.Now()
	}
	amount, _ := parseAmountStr(v.amount)
	balance, _ := parseAmountStr(v.balance)
	target, _ := parseAmountStr(v.target)

	var second *float64
	if freq == model.FrequencyBiweekly && strings.TrimSpace(v.second) != "" {
		if s, err := parseAmountStr(v.second); err == nil {
			second = &s
		}
	}

	a.eng.CompleteSetup(freq, lastPaid, balance, target, amount, second)
	a.recompute()
}

func validateDate(s string) error {
	if _, err := parseDateStr(s); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func validateAmount(s string) error {
	v, err := parseAmountStr(s)
	if err != nil {
		return errors.New("enter a number")
	}
	if v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func validateOptionalAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validateAmount(s)
}

// validateNumber accepts any numeric value, including negatives.
// Balances and targets may legitimately dip below zero.
func validateNumber(s string) error {
	if _, err := parseAmountStr(s); err != nil {
		return errors.New("enter a number")
	}
	return nil
}

func parseDateStr(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}

func parseAmountStr(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	return strconv.ParseFloat(s, 64)
}
