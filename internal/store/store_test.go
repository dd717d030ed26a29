package store

import (
	"path/filepath"
	"testing"
	"time"

	"dayspend/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "dayspend.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoad_MissingSnapshot(t *testing.T) {
	s := openTestStore(t)

	snap, err := s.Load("budget")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap != nil {
		t.Fatal("fresh store returned a snapshot")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	wm := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	second := time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC)
	secondAmount := 800.0
	due := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	in := model.Snapshot{
		IsSetupComplete: true,
		CurrentBalance:  1234.56,
		TargetBalance:   -50, // negative targets are legal
		SalaryInfo: &model.SalaryInfo{
			Frequency:    model.FrequencyBiweekly,
			InitialDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			NextDate:     time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC),
			Amount:       1000,
			SecondAmount: &secondAmount,
			SecondDate:   &second,
		},
		FixedExpenses: []model.FixedExpense{
			{ID: "e1", Name: "Rent", Amount: 900, DueDate: &due},
			{ID: "e2", Name: "Streaming", Amount: 120},
		},
		Transactions: []model.Transaction{
			{ID: "t1", Amount: 25.50, Description: "lunch", CategoryID: "dining",
				Date: time.Date(2024, 1, 20, 12, 30, 0, 0, time.UTC)},
		},
		LastSalaryProcessed: &wm,
	}

	if err := s.Save("budget", in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.Load("budget")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out == nil {
		t.Fatal("saved snapshot not found")
	}

	if out.IsSetupComplete != in.IsSetupComplete ||
		out.CurrentBalance != in.CurrentBalance ||
		out.TargetBalance != in.TargetBalance {
		t.Fatalf("scalar fields did not round-trip: %+v", out)
	}
	if out.SalaryInfo == nil || out.SalaryInfo.Frequency != model.FrequencyBiweekly {
		t.Fatalf("salary info did not round-trip: %+v", out.SalaryInfo)
	}
	if !out.SalaryInfo.NextDate.Equal(in.SalaryInfo.NextDate) ||
		!out.SalaryInfo.SecondDate.Equal(second) ||
		*out.SalaryInfo.SecondAmount != secondAmount {
		t.Fatalf("salary dates/amounts did not round-trip: %+v", out.SalaryInfo)
	}
	if len(out.FixedExpenses) != 2 || !out.FixedExpenses[0].DueDate.Equal(due) || out.FixedExpenses[1].DueDate != nil {
		t.Fatalf("fixed expenses did not round-trip: %+v", out.FixedExpenses)
	}
	if len(out.Transactions) != 1 || !out.Transactions[0].Date.Equal(in.Transactions[0].Date) {
		t.Fatalf("transactions did not round-trip: %+v", out.Transactions)
	}
	if out.LastSalaryProcessed == nil || !out.LastSalaryProcessed.Equal(wm) {
		t.Fatalf("watermark did not round-trip: %v", out.LastSalaryProcessed)
	}
}

func TestSave_Overwrites(t *testing.T) {
	s := openTestStore(t)

	if err := s.Save("budget", model.Snapshot{CurrentBalance: 1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save("budget", model.Snapshot{CurrentBalance: 2}); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.Load("budget")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.CurrentBalance != 2 {
		t.Fatalf("balance = %.2f, want 2 (latest save wins)", out.CurrentBalance)
	}
}

func TestLoad_CorruptPayload(t *testing.T) {
	s := openTestStore(t)

	_, err := s.db.Exec(`INSERT INTO snapshots (name, payload, saved_at)
		VALUES ('budget', '{not json', '2024-01-01T00:00:00Z')`)
	if err != nil {
		t.Fatalf("inject corrupt payload: %v", err)
	}

	if _, err := s.Load("budget"); err == nil {
		t.Fatal("corrupt payload should surface an error")
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	if err := s.Save("budget", model.Snapshot{CurrentBalance: 1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Delete("budget"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	out, err := s.Load("budget")
	if err != nil || out != nil {
		t.Fatalf("snapshot still present after delete: %+v, %v", out, err)
	}

	// Deleting what is already gone is fine.
	if err := s.Delete("budget"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}
