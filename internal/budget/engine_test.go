package budget

import (
	"errors"
	"testing"
	"time"

	"dayspend/internal/model"
)

// memStore is an in-memory Store for engine tests.
type memStore struct {
	snaps   map[string]model.Snapshot
	saves   int
	loadErr error
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{snaps: make(map[string]model.Snapshot)}
}

func (m *memStore) Load(name string) (*model.Snapshot, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	snap, ok := m.snaps[name]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

func (m *memStore) Save(name string, snap model.Snapshot) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snaps[name] = snap
	return nil
}

// newTestEngine returns a hydrated engine pinned to the given date.
func newTestEngine(t *testing.T, today string) (*Engine, *memStore) {
	t.Helper()
	store := newMemStore()
	e := New(store, "budget")
	if err := e.Hydrate(); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	e.now = func() time.Time { return mustDate(t, today).Add(10 * time.Hour) }
	return e, store
}

func TestCompleteSetup_Monthly(t *testing.T) {
	e, _ := newTestEngine(t, "2024-01-20")

	e.CompleteSetup(model.FrequencyMonthly, mustDate(t, "2024-01-15"), 1200, 300, 2500, nil)

	s := e.Snapshot()
	if !s.IsSetupComplete {
		t.Fatal("IsSetupComplete = false after setup")
	}
	// The entered balance is taken verbatim; the salary is not folded in.
	if s.CurrentBalance != 1200 {
		t.Fatalf("CurrentBalance = %.2f, want 1200", s.CurrentBalance)
	}
	if s.TargetBalance != 300 {
		t.Fatalf("TargetBalance = %.2f, want 300", s.TargetBalance)
	}
	si := s.SalaryInfo
	if si == nil {
		t.Fatal("SalaryInfo = nil")
	}
	if !si.NextDate.Equal(mustDate(t, "2024-02-15")) {
		t.Fatalf("NextDate = %s, want 2024-02-15", si.NextDate.Format("2006-01-02"))
	}
	if si.SecondAmount != nil || si.SecondDate != nil {
		t.Fatal("monthly setup should not configure a second salary")
	}
	if s.LastSalaryProcessed == nil || !s.LastSalaryProcessed.Equal(mustDate(t, "2024-01-15")) {
		t.Fatalf("LastSalaryProcessed = %v, want initial date", s.LastSalaryProcessed)
	}
}

func TestCompleteSetup_BiweeklySecondSalary(t *testing.T) {
	e, _ := newTestEngine(t, "2024-01-16")

	e.CompleteSetup(model.FrequencyBiweekly, mustDate(t, "2024-01-15"), 500, 0, 1000, floatPtr(800))

	si := e.Snapshot().SalaryInfo
	if !si.NextDate.Equal(mustDate(t, "2024-01-29")) {
		t.Fatalf("NextDate = %s, want 2024-01-29", si.NextDate.Format("2006-01-02"))
	}
	if si.SecondAmount == nil || *si.SecondAmount != 800 {
		t.Fatalf("SecondAmount = %v, want 800", si.SecondAmount)
	}
	if si.SecondDate == nil || !si.SecondDate.Equal(mustDate(t, "2024-02-12")) {
		t.Fatalf("SecondDate = %v, want 2024-02-12 (next + 14d)", si.SecondDate)
	}
}

func TestCompleteSetup_RepeatOverwrites(t *testing.T) {
	e, _ := newTestEngine(t, "2024-01-16")

	e.CompleteSetup(model.FrequencyBiweekly, mustDate(t, "2024-01-15"), 500, 0, 1000, floatPtr(800))
	e.CompleteSetup(model.FrequencyMonthly, mustDate(t, "2024-02-01"), 2000, 100, 3000, nil)

	s := e.Snapshot()
	if s.CurrentBalance != 2000 || s.TargetBalance != 100 {
		t.Fatalf("balances not overwritten: %+v", s)
	}
	si := s.SalaryInfo
	if si.Frequency != model.FrequencyMonthly || si.SecondAmount != nil {
		t.Fatalf("salary config not overwritten: %+v", si)
	}
}

func TestTransactions_AddDeleteInverse(t *testing.T) {
	e, _ := newTestEngine(t, "2024-01-20")
	e.UpdateBalance(1000)

	tx1 := e.AddTransaction(120, "groceries run", "groceries", time.Time{})
	tx2 := e.AddTransaction(35.50, "lunch", "dining", time.Time{})
	e.AddTransaction(14.50, "bus pass", "transportation", time.Time{})

	if got := e.Snapshot().CurrentBalance; !almostEqual(got, 830) {
		t.Fatalf("balance after adds = %.2f, want 830", got)
	}

	e.DeleteTransaction(tx2.ID)
	if got := e.Snapshot().CurrentBalance; !almostEqual(got, 865.50) {
		t.Fatalf("balance after delete = %.2f, want 865.50", got)
	}

	// Net change equals the negative sum of the remaining transactions.
	var remaining float64
	for _, tx := range e.Snapshot().Transactions {
		remaining += tx.Amount
	}
	if !almostEqual(1000-remaining, e.Snapshot().CurrentBalance) {
		t.Fatalf("balance %.2f does not match 1000 - remaining %.2f", e.Snapshot().CurrentBalance, remaining)
	}

	// Deleting a transaction that was never added must not touch the balance.
	e.DeleteTransaction("no-such-id")
	e.DeleteTransaction(tx2.ID) // already gone
	if got := e.Snapshot().CurrentBalance; !almostEqual(got, 865.50) {
		t.Fatalf("balance after no-op deletes = %.2f, want 865.50", got)
	}
	_ = tx1
}

func TestTransactions_MostRecentFirst(t *testing.T) {
	e, _ := newTestEngine(t, "2024-01-20")

	first := e.AddTransaction(10, "first", "other", time.Time{})
	second := e.AddTransaction(20, "second", "other", time.Time{})

	txs := e.Snapshot().Transactions
	if len(txs) != 2 || txs[0].ID != second.ID || txs[1].ID != first.ID {
		t.Fatalf("transactions not most-recent-first: %+v", txs)
	}
	if first.ID == second.ID {
		t.Fatal("engine assigned duplicate ids")
	}
	if txs[0].Date.IsZero() {
		t.Fatal("zero transaction date was not defaulted to now")
	}
}

func TestFixedExpenses_CRUD(t *testing.T) {
	e, _ := newTestEngine(t, "2024-01-20")

	due := mustDate(t, "2024-02-01")
	exp := e.AddFixedExpense("Rent", 900, &due)
	if exp.ID == "" {
		t.Fatal("AddFixedExpense did not assign an id")
	}

	exp.Name = "Rent + utilities"
	exp.Amount = 1000
	exp.DueDate = nil
	e.UpdateFixedExpense(exp)

	got := e.Snapshot().FixedExpenses
	if len(got) != 1 || got[0].Name != "Rent + utilities" || got[0].Amount != 1000 || got[0].DueDate != nil {
		t.Fatalf("update did not replace the record: %+v", got)
	}

	// Unknown ids are silent no-ops for both update and delete.
	e.UpdateFixedExpense(model.FixedExpense{ID: "ghost", Name: "x", Amount: 1})
	e.DeleteFixedExpense("ghost")
	if len(e.Snapshot().FixedExpenses) != 1 {
		t.Fatal("no-op update/delete changed the list")
	}

	e.DeleteFixedExpense(exp.ID)
	if len(e.Snapshot().FixedExpenses) != 0 {
		t.Fatal("delete did not remove the expense")
	}
}

func TestCheckAndProcessSalary_NoSalaryInfo(t *testing.T) {
	e, _ := newTestEngine(t, "2024-01-20")
	if e.CheckAndProcessSalary() {
		t.Fatal("salary processed without salary info")
	}
}

func TestCheckAndProcessSalary_Monthly(t *testing.T) {
	e, _ := newTestEngine(t, "2024-01-20")
	e.CompleteSetup(model.FrequencyMonthly, mustDate(t, "2023-12-15"), 100, 0, 2500, nil)
	// nextDate is 2024-01-15, today is 2024-01-20: the occurrence is due.

	if !e.CheckAndProcessSalary() {
		t.Fatal("first check should credit the due occurrence")
	}

	s := e.Snapshot()
	if !almostEqual(s.CurrentBalance, 2600) {
		t.Fatalf("balance = %.2f, want 2600", s.CurrentBalance)
	}
	if s.LastSalaryProcessed == nil || !s.LastSalaryProcessed.Equal(mustDate(t, "2024-01-15")) {
		t.Fatalf("watermark = %v, want the serviced occurrence date 2024-01-15", s.LastSalaryProcessed)
	}
	if !s.SalaryInfo.NextDate.Equal(mustDate(t, "2024-02-15")) {
		t.Fatalf("NextDate = %s, want 2024-02-15", s.SalaryInfo.NextDate.Format("2006-01-02"))
	}

	// Second call the same day is a no-op.
	if e.CheckAndProcessSalary() {
		t.Fatal("second check on the same day must not credit again")
	}
	if got := e.Snapshot().CurrentBalance; !almostEqual(got, 2600) {
		t.Fatalf("balance changed on no-op check: %.2f", got)
	}
}

func TestCheckAndProcessSalary_SecondDateSuperseded(t *testing.T) {
	e, _ := newTestEngine(t, "2024-01-29")
	e.CompleteSetup(model.FrequencyBiweekly, mustDate(t, "2024-01-15"), 0, 0, 1000, floatPtr(800))
	// nextDate = 2024-01-29 (D), secondDate = 2024-02-12 (D+14).

	if !e.CheckAndProcessSalary() {
		t.Fatal("primary occurrence should fire")
	}

	si := e.Snapshot().SalaryInfo
	if !si.NextDate.Equal(mustDate(t, "2024-02-12")) {
		t.Fatalf("NextDate = %s, want 2024-02-12", si.NextDate.Format("2006-01-02"))
	}
	// The prior second-date cycle is fully superseded: new next + 14, i.e.
	// D+28, not left at D+14.
	if !si.SecondDate.Equal(mustDate(t, "2024-02-26")) {
		t.Fatalf("SecondDate = %s, want 2024-02-26", si.SecondDate.Format("2006-01-02"))
	}
}

func TestCheckAndProcessSalary_SecondOccurrence(t *testing.T) {
	e, _ := newTestEngine(t, "2024-02-05")
	e.CompleteSetup(model.FrequencyBiweekly, mustDate(t, "2024-01-15"), 0, 0, 1000, floatPtr(800))
	// next 2024-01-29, second 2024-02-12.

	// Process the primary first (due since 2024-01-29).
	if !e.CheckAndProcessSalary() {
		t.Fatal("primary should fire")
	}
	// After the primary: next 2024-02-12, second 2024-02-26. Move to a day
	// where only the re-advanced primary is due, then past the second.
	e.now = func() time.Time { return mustDate(t, "2024-02-12") }
	if !e.CheckAndProcessSalary() {
		t.Fatal("primary should fire on its new date")
	}
	s := e.Snapshot()
	if !almostEqual(s.CurrentBalance, 2000) {
		t.Fatalf("balance = %.2f, want 2000 after two primaries", s.CurrentBalance)
	}
	if !s.SalaryInfo.NextDate.Equal(mustDate(t, "2024-02-26")) {
		t.Fatalf("NextDate = %s, want 2024-02-26", s.SalaryInfo.NextDate.Format("2006-01-02"))
	}

	// A day where the primary is not yet due but the second is. The second
	// trails the primary by 14 days, so set the schedule mid-cycle.
	second := mustDate(t, "2024-02-20")
	amount := 800.0
	wm := mustDate(t, "2024-02-12")
	e.state.SalaryInfo.NextDate = mustDate(t, "2024-03-05")
	e.state.SalaryInfo.SecondDate = &second
	e.state.SalaryInfo.SecondAmount = &amount
	e.state.LastSalaryProcessed = &wm
	e.now = func() time.Time { return mustDate(t, "2024-02-21") }

	if !e.CheckAndProcessSalary() {
		t.Fatal("second occurrence should fire")
	}
	s = e.Snapshot()
	if !almostEqual(s.CurrentBalance, 2800) {
		t.Fatalf("balance = %.2f, want 2800 after second occurrence", s.CurrentBalance)
	}
	if !s.LastSalaryProcessed.Equal(second) {
		t.Fatalf("watermark = %v, want the second occurrence date", s.LastSalaryProcessed)
	}
	// The second occurrence does not advance the schedule itself.
	if !s.SalaryInfo.NextDate.Equal(mustDate(t, "2024-03-05")) {
		t.Fatalf("NextDate moved on second occurrence: %s", s.SalaryInfo.NextDate.Format("2006-01-02"))
	}
	if !s.SalaryInfo.SecondDate.Equal(second) {
		t.Fatalf("SecondDate moved on second occurrence: %v", s.SalaryInfo.SecondDate)
	}

	// And it must not re-fire.
	if e.CheckAndProcessSalary() {
		t.Fatal("second occurrence re-credited")
	}
}

func TestCheckAndProcessSalary_NotYetDue(t *testing.T) {
	e, _ := newTestEngine(t, "2024-01-20")
	e.CompleteSetup(model.FrequencyMonthly, mustDate(t, "2024-01-15"), 100, 0, 2500, nil)
	// nextDate is 2024-02-15, in the future.

	if e.CheckAndProcessSalary() {
		t.Fatal("future occurrence credited early")
	}
	if got := e.Snapshot().CurrentBalance; !almostEqual(got, 100) {
		t.Fatalf("balance = %.2f, want 100", got)
	}
}

func TestUpdateSalaryAmount(t *testing.T) {
	e, _ := newTestEngine(t, "2024-01-16")
	e.CompleteSetup(model.FrequencyBiweekly, mustDate(t, "2024-01-15"), 0, 0, 1000, floatPtr(800))

	// nil second amount preserves the existing one.
	e.UpdateSalaryAmount(1200, nil)
	si := e.Snapshot().SalaryInfo
	if si.Amount != 1200 {
		t.Fatalf("Amount = %.2f, want 1200", si.Amount)
	}
	if si.SecondAmount == nil || *si.SecondAmount != 800 {
		t.Fatalf("nil second amount cleared the existing value: %v", si.SecondAmount)
	}

	// Explicit value overwrites, including zero.
	e.UpdateSalaryAmount(1200, floatPtr(0))
	si = e.Snapshot().SalaryInfo
	if si.SecondAmount == nil || *si.SecondAmount != 0 {
		t.Fatalf("explicit zero second amount not stored: %v", si.SecondAmount)
	}
}

func TestUpdateSalaryAmount_MonthlyIgnoresSecond(t *testing.T) {
	e, _ := newTestEngine(t, "2024-01-16")
	e.CompleteSetup(model.FrequencyMonthly, mustDate(t, "2024-01-15"), 0, 0, 2500, nil)

	e.UpdateSalaryAmount(2600, floatPtr(500))
	si := e.Snapshot().SalaryInfo
	if si.Amount != 2600 {
		t.Fatalf("Amount = %.2f, want 2600", si.Amount)
	}
	if si.SecondAmount != nil {
		t.Fatal("second amount set on a monthly schedule")
	}
}

func TestReset(t *testing.T) {
	e, _ := newTestEngine(t, "2024-01-20")
	e.CompleteSetup(model.FrequencyMonthly, mustDate(t, "2024-01-15"), 1200, 300, 2500, nil)
	due := mustDate(t, "2024-02-01")
	e.AddFixedExpense("Rent", 900, &due)
	e.AddTransaction(50, "coffee", "dining", time.Time{})

	e.Reset()

	s := e.Snapshot()
	if s.IsSetupComplete {
		t.Fatal("IsSetupComplete = true after reset")
	}
	if s.CurrentBalance != 0 || s.TargetBalance != 0 {
		t.Fatalf("balances not zeroed: %+v", s)
	}
	if s.SalaryInfo != nil || s.LastSalaryProcessed != nil {
		t.Fatal("salary state not cleared")
	}
	if len(s.FixedExpenses) != 0 || len(s.Transactions) != 0 {
		t.Fatal("lists not cleared")
	}
}

func TestHydrate(t *testing.T) {
	store := newMemStore()
	wm := mustDate(t, "2024-01-15")
	store.snaps["budget"] = model.Snapshot{
		IsSetupComplete:     true,
		CurrentBalance:      750,
		LastSalaryProcessed: &wm,
	}

	e := New(store, "budget")
	if e.Hydrated() {
		t.Fatal("Hydrated before Hydrate")
	}
	if err := e.Hydrate(); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	if !e.Hydrated() {
		t.Fatal("Hydrated = false after Hydrate")
	}
	if got := e.Snapshot().CurrentBalance; got != 750 {
		t.Fatalf("balance = %.2f, want 750", got)
	}
}

func TestHydrate_CorruptSnapshotFallsBack(t *testing.T) {
	store := newMemStore()
	store.loadErr = errors.New("payload is not valid JSON")

	e := New(store, "budget")
	err := e.Hydrate()
	if err == nil {
		t.Fatal("expected the load error surfaced")
	}
	// Fallback is the safe empty state, and hydration still completes.
	if !e.Hydrated() {
		t.Fatal("corrupt snapshot must still signal hydration-complete")
	}
	if e.IsSetupComplete() {
		t.Fatal("corrupt snapshot must fall back to Uninitialized")
	}
}

func TestPersistFailureDoesNotRollBack(t *testing.T) {
	e, store := newTestEngine(t, "2024-01-20")
	store.saveErr = errors.New("disk full")

	e.UpdateBalance(999)

	if got := e.Snapshot().CurrentBalance; got != 999 {
		t.Fatalf("in-memory mutation rolled back: %.2f", got)
	}
	if e.LastSaveError() == nil {
		t.Fatal("save failure not recorded")
	}

	store.saveErr = nil
	e.UpdateBalance(1000)
	if e.LastSaveError() != nil {
		t.Fatal("stale save error after successful save")
	}
}

func TestEngine_PersistsAfterEveryMutation(t *testing.T) {
	e, store := newTestEngine(t, "2024-01-20")

	e.CompleteSetup(model.FrequencyMonthly, mustDate(t, "2024-01-15"), 100, 0, 2500, nil)
	e.UpdateBalance(200)
	e.UpdateTargetBalance(50)
	tx := e.AddTransaction(10, "x", "other", time.Time{})
	e.DeleteTransaction(tx.ID)
	e.Reset()

	if store.saves != 6 {
		t.Fatalf("saves = %d, want 6", store.saves)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	e, _ := newTestEngine(t, "2024-01-16")
	e.CompleteSetup(model.FrequencyBiweekly, mustDate(t, "2024-01-15"), 100, 0, 1000, floatPtr(800))
	due := mustDate(t, "2024-02-01")
	e.AddFixedExpense("Rent", 900, &due)

	snap := e.Snapshot()
	snap.CurrentBalance = -1
	snap.SalaryInfo.Amount = -1
	*snap.SalaryInfo.SecondAmount = -1
	snap.FixedExpenses[0].Amount = -1
	*snap.FixedExpenses[0].DueDate = time.Time{}
	*snap.LastSalaryProcessed = time.Time{}

	fresh := e.Snapshot()
	if fresh.CurrentBalance == -1 || fresh.SalaryInfo.Amount == -1 ||
		*fresh.SalaryInfo.SecondAmount == -1 || fresh.FixedExpenses[0].Amount == -1 {
		t.Fatal("snapshot shares state with the engine")
	}
	if fresh.FixedExpenses[0].DueDate.IsZero() || fresh.LastSalaryProcessed.IsZero() {
		t.Fatal("snapshot shares date pointers with the engine")
	}
}
