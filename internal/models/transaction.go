// Package models holds the record types shared between the generator and
// the output/import layers.
package models

import (
	"fmt"
	"time"
)

// User archetypes carried through from the profile dataset. They act as
// soft modifiers on transaction-count choices, never as hard constraints.
const (
	ArchetypeConservativeSaver     = "conservative_saver"
	ArchetypeBalancedPlanner       = "balanced_planner"
	ArchetypeAggressiveInvestor    = "aggressive_investor"
	ArchetypeImpulsiveSpender      = "impulsive_spender"
	ArchetypeGoalOrientedOptimizer = "goal_oriented_optimizer"
	ArchetypeMeticulousTracker     = "meticulous_tracker"
)

// UserProfile carries the soft behavioral modifiers attached to an input
// row. All fields are optional; empty values mean no bias.
type UserProfile struct {
	Archetype     string
	RiskTolerance string
	IsMetro       string
}

// Transaction is a single synthesized spending event. Instances are built
// once by the synthesizer and never mutated afterwards.
type Transaction struct {
	ID            string // "TXN-" + 8-digit zero-padded sequence
	UserID        string
	Date          time.Time
	MonthIndex    int
	Category      string // display name, _expense suffix stripped
	Merchant      string
	Amount        int64 // whole currency units, always positive
	PaymentMethod string
	IsOnline      bool
	Description   string
}

// TransactionHeaders returns the output CSV header row. Downstream feature
// aggregation depends on these exact column names.
func TransactionHeaders() []string {
	return []string{
		"transaction_id", "user_id", "date", "month_index", "category",
		"merchant", "amount", "payment_method", "is_online", "description",
	}
}

// CSVRow formats the transaction as an output row matching
// TransactionHeaders.
func (t Transaction) CSVRow() []string {
	online := "0"
	if t.IsOnline {
		online = "1"
	}
	return []string{
		t.ID,
		t.UserID,
		t.Date.Format("2006-01-02 15:04:05"),
		fmt.Sprintf("%d", t.MonthIndex),
		t.Category,
		t.Merchant,
		fmt.Sprintf("%d", t.Amount),
		t.PaymentMethod,
		online,
		t.Description,
	}
}

// FormatTransactionID renders the globally unique transaction identifier
// for a sequence number.
func FormatTransactionID(seq int64) string {
	return fmt.Sprintf("TXN-%08d", seq)
}
