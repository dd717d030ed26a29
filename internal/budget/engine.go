package budget

import (
	"time"

	"github.com/google/uuid"

	"dayspend/internal/dates"
	"dayspend/internal/model"
)

// Store is the persistence adapter consumed by the engine. Load returns
// (nil, nil) when no snapshot exists yet. A Load error means the stored
// payload could not be read; the engine falls back to the empty state.
type Store interface {
	Load(name string) (*model.Snapshot, error)
	Save(name string, snap model.Snapshot) error
}

// Engine owns the canonical financial state and is the only writer to it.
// All operations are synchronous and complete before the next is accepted;
// the engine never schedules anything itself. Consumers read state through
// Snapshot copies and route every change through the operations below.
type Engine struct {
	store Store
	name  string

	now func() time.Time

	state       model.Snapshot
	hydrated    bool
	lastSaveErr error
}

// New returns an engine persisting under the given snapshot name.
func New(store Store, name string) *Engine {
	return &Engine{
		store: store,
		name:  name,
		now:   time.Now,
	}
}

// Hydrate loads the persisted snapshot. A missing snapshot (fresh install)
// and an unreadable one both leave the engine in the empty Uninitialized
// state; in the unreadable case the error is returned for reporting, but
// the engine still counts as hydrated so the host never hangs on it.
func (e *Engine) Hydrate() error {
	snap, err := e.store.Load(e.name)
	e.hydrated = true
	if err != nil {
		e.state = model.Snapshot{}
		return err
	}
	if snap != nil {
		e.state = *snap
	}
	return nil
}

// Hydrated reports whether Hydrate has run. Consumers must not read state
// before this is true.
func (e *Engine) Hydrated() bool {
	return e.hydrated
}

// LastSaveError returns the error from the most recent persistence attempt,
// or nil. Saves never roll back in-memory mutations; this is how a host
// learns about durability problems.
func (e *Engine) LastSaveError() error {
	return e.lastSaveErr
}

// Snapshot returns a copy of the current state. Mutating the copy has no
// effect on the engine.
func (e *Engine) Snapshot() model.Snapshot {
	return copySnapshot(e.state)
}

// IsSetupComplete reports whether initial setup has run.
func (e *Engine) IsSetupComplete() bool {
	return e.state.IsSetupComplete
}

// CompleteSetup records the salary schedule and starting balances and marks
// setup complete. The entered balance is taken as already accurate, so the
// salary amount is not folded into it, and the watermark is set to
// initialDate so a salary predating setup is never re-credited. Calling it
// again overwrites the prior setup state.
func (e *Engine) CompleteSetup(freq model.Frequency, initialDate time.Time, currentBalance, targetBalance, salaryAmount float64, secondSalaryAmount *float64) {
	nextDate := dates.NextSalaryDate(initialDate, freq)

	salary := &model.SalaryInfo{
		Frequency:   freq,
		InitialDate: initialDate,
		NextDate:    nextDate,
		Amount:      salaryAmount,
	}
	if freq == model.FrequencyBiweekly && secondSalaryAmount != nil {
		amount := *secondSalaryAmount
		second := dates.SecondSalaryDate(nextDate)
		salary.SecondAmount = &amount
		salary.SecondDate = &second
	}

	processed := initialDate
	e.state.IsSetupComplete = true
	e.state.CurrentBalance = currentBalance
	e.state.TargetBalance = targetBalance
	e.state.SalaryInfo = salary
	e.state.LastSalaryProcessed = &processed
	e.persist()
}

// UpdateBalance overwrites the current balance.
func (e *Engine) UpdateBalance(value float64) {
	e.state.CurrentBalance = value
	e.persist()
}

// UpdateTargetBalance overwrites the reserve target. Negative values are
// allowed and mean a willingness to run a deficit.
func (e *Engine) UpdateTargetBalance(value float64) {
	e.state.TargetBalance = value
	e.persist()
}

// UpdateSalaryAmount overwrites the salary amount. The second amount is
// touched only on a biweekly schedule and only when explicitly supplied;
// passing nil preserves the existing second amount rather than clearing it.
func (e *Engine) UpdateSalaryAmount(amount float64, secondAmount *float64) {
	si := e.state.SalaryInfo
	if si == nil {
		return
	}
	si.Amount = amount
	if si.Frequency == model.FrequencyBiweekly && secondAmount != nil {
		v := *secondAmount
		si.SecondAmount = &v
		if si.SecondDate == nil {
			second := dates.SecondSalaryDate(si.NextDate)
			si.SecondDate = &second
		}
	}
	e.persist()
}

// AddFixedExpense creates a fixed expense with an engine-assigned id and
// returns it.
func (e *Engine) AddFixedExpense(name string, amount float64, dueDate *time.Time) model.FixedExpense {
	exp := model.FixedExpense{
		ID:     newID(),
		Name:   name,
		Amount: amount,
	}
	if dueDate != nil {
		d := *dueDate
		exp.DueDate = &d
	}
	e.state.FixedExpenses = append(e.state.FixedExpenses, exp)
	e.persist()
	return exp
}

// UpdateFixedExpense replaces the expense with the same id. Unknown ids are
// a silent no-op.
func (e *Engine) UpdateFixedExpense(exp model.FixedExpense) {
	for i, existing := range e.state.FixedExpenses {
		if existing.ID == exp.ID {
			e.state.FixedExpenses[i] = exp
			e.persist()
			return
		}
	}
}

// DeleteFixedExpense removes the expense with the given id. Unknown ids are
// a silent no-op.
func (e *Engine) DeleteFixedExpense(id string) {
	for i, exp := range e.state.FixedExpenses {
		if exp.ID == id {
			e.state.FixedExpenses = append(e.state.FixedExpenses[:i], e.state.FixedExpenses[i+1:]...)
			e.persist()
			return
		}
	}
}

// AddTransaction records a spend, deducts it from the balance and returns
// the stored transaction. The list stays most-recent-first. A zero date
// defaults to now.
func (e *Engine) AddTransaction(amount float64, description, categoryID string, date time.Time) model.Transaction {
	if date.IsZero() {
		date = e.now()
	}
	tx := model.Transaction{
		ID:          newID(),
		Amount:      amount,
		Description: description,
		CategoryID:  categoryID,
		Date:        date,
	}
	e.state.Transactions = append([]model.Transaction{tx}, e.state.Transactions...)
	e.state.CurrentBalance -= amount
	e.persist()
	return tx
}

// DeleteTransaction removes a transaction and restores its amount to the
// balance, the exact inverse of AddTransaction. Unknown ids are a silent
// no-op with no balance change.
func (e *Engine) DeleteTransaction(id string) {
	for i, tx := range e.state.Transactions {
		if tx.ID == id {
			e.state.Transactions = append(e.state.Transactions[:i], e.state.Transactions[i+1:]...)
			e.state.CurrentBalance += tx.Amount
			e.persist()
			return
		}
	}
}

// CheckAndProcessSalary credits at most one due salary occurrence and
// returns whether it did. The watermark guards against re-crediting the
// same occurrence; calling again on the same day after a credit is a no-op
// until the next occurrence date arrives. Comparisons are date-only.
func (e *Engine) CheckAndProcessSalary() bool {
	si := e.state.SalaryInfo
	if si == nil {
		return false
	}

	today := dates.StartOfDay(e.now())
	next := dates.StartOfDay(si.NextDate)

	if !today.Before(next) && e.watermarkBefore(next) {
		e.state.CurrentBalance += si.Amount
		occurred := si.NextDate
		si.NextDate = dates.NextSalaryDate(occurred, si.Frequency)
		if si.Frequency == model.FrequencyBiweekly && si.SecondAmount != nil {
			// The new cycle supersedes the old second date entirely.
			second := dates.SecondSalaryDate(si.NextDate)
			si.SecondDate = &second
		}
		// The watermark records the occurrence just serviced, not today.
		e.state.LastSalaryProcessed = &occurred
		e.persist()
		return true
	}

	if si.Frequency == model.FrequencyBiweekly && si.HasSecondSalary() {
		second := dates.StartOfDay(*si.SecondDate)
		if !today.Before(second) && e.watermarkBefore(second) {
			e.state.CurrentBalance += *si.SecondAmount
			occurred := *si.SecondDate
			e.state.LastSalaryProcessed = &occurred
			e.persist()
			return true
		}
	}

	return false
}

// watermarkBefore reports whether the occurrence at the given (midnight)
// date has not been processed yet.
func (e *Engine) watermarkBefore(occurrence time.Time) bool {
	wm := e.state.LastSalaryProcessed
	return wm == nil || dates.StartOfDay(*wm).Before(occurrence)
}

// Reset wipes all financial data and returns to the Uninitialized state.
func (e *Engine) Reset() {
	e.state = model.Snapshot{}
	e.persist()
}

// persist saves the snapshot after a mutation. Failures never roll back the
// in-memory state; they are recorded for the host to surface.
func (e *Engine) persist() {
	e.lastSaveErr = e.store.Save(e.name, copySnapshot(e.state))
}

func newID() string {
	return uuid.NewString()
}

// copySnapshot returns a deep copy so consumers never hold a mutable alias
// into engine-owned state.
func copySnapshot(s model.Snapshot) model.Snapshot {
	out := s

	if s.SalaryInfo != nil {
		si := *s.SalaryInfo
		if s.SalaryInfo.SecondAmount != nil {
			v := *s.SalaryInfo.SecondAmount
			si.SecondAmount = &v
		}
		if s.SalaryInfo.SecondDate != nil {
			d := *s.SalaryInfo.SecondDate
			si.SecondDate = &d
		}
		out.SalaryInfo = &si
	}

	if s.FixedExpenses != nil {
		out.FixedExpenses = make([]model.FixedExpense, len(s.FixedExpenses))
		for i, exp := range s.FixedExpenses {
			out.FixedExpenses[i] = exp
			if exp.DueDate != nil {
				d := *exp.DueDate
				out.FixedExpenses[i].DueDate = &d
			}
		}
	}

	if s.Transactions != nil {
		out.Transactions = make([]model.Transaction, len(s.Transactions))
		copy(out.Transactions, s.Transactions)
	}

	if s.LastSalaryProcessed != nil {
		d := *s.LastSalaryProcessed
		out.LastSalaryProcessed = &d
	}

	return out
}
