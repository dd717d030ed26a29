// Package model defines the plain data types for the budget engine.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Frequency is how often the salary arrives.
type Frequency string

const (
	FrequencyMonthly  Frequency = "monthly"
	FrequencyBiweekly Frequency = "biweekly"
)

// ParseFrequency converts user input into a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly", "month", "m":
		return FrequencyMonthly, nil
	case "biweekly", "bi-weekly", "b":
		return FrequencyBiweekly, nil
	}
	return "", fmt.Errorf("unknown frequency %q (expected monthly or biweekly)", s)
}

// SalaryInfo describes the recurring income schedule.
// SecondAmount and SecondDate are both set or both nil; they exist only for
// biweekly schedules with a second, differently-dated payment per period.
type SalaryInfo struct {
	Frequency    Frequency  `json:"frequency"`
	InitialDate  time.Time  `json:"initialDate"`
	NextDate     time.Time  `json:"nextDate"`
	Amount       float64    `json:"amount"`
	SecondAmount *float64   `json:"secondAmount,omitempty"`
	SecondDate   *time.Time `json:"secondDate,omitempty"`
}

// HasSecondSalary reports whether a second salary occurrence is configured.
func (s SalaryInfo) HasSecondSalary() bool {
	return s.SecondAmount != nil && s.SecondDate != nil
}

// FixedExpense is a recurring bill or subscription. Amounts are stored as
// positive magnitudes. A nil DueDate means the expense is always treated as
// due before the next salary.
type FixedExpense struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Amount  float64    `json:"amount"`
	DueDate *time.Time `json:"dueDate,omitempty"`
}

// Transaction is a single spending event. Amount is a positive magnitude
// deducted from the balance at creation time.
type Transaction struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	CategoryID  string    `json:"categoryId"`
	Date        time.Time `json:"date"`
}

// CategorySpend is a per-category spending total.
type CategorySpend struct {
	CategoryID string
	Total      float64
}

// Snapshot is the full serializable financial state. It is what the engine
// persists after every mutation and what the store hydrates on startup.
// All dates round-trip as RFC 3339 strings through JSON.
type Snapshot struct {
	IsSetupComplete     bool           `json:"isSetupComplete"`
	CurrentBalance      float64        `json:"currentBalance"`
	TargetBalance       float64        `json:"targetBalance"`
	SalaryInfo          *SalaryInfo    `json:"salaryInfo"`
	FixedExpenses       []FixedExpense `json:"fixedExpenses"`
	Transactions        []Transaction  `json:"transactions"`
	LastSalaryProcessed *time.Time     `json:"lastSalaryProcessed"`
}
