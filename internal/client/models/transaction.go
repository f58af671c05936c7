package models

import (
	"fmt"
	"time"
)

// Transaction is a read-only purchase record. Amount is in minor currency
// units exactly as the backend stores it.
type Transaction struct {
	TransactionDate time.Time `json:"transactionDate"`
	PlanID          string    `json:"planId"`
	Amount          int64     `json:"amount"`
	CreditsAdded    int       `json:"creditsAdded"`
	PaymentID       string    `json:"paymentId"`
}

// AmountMajor renders the amount in major units with two decimals,
// e.g. 50000 -> "500.00".
func (t Transaction) AmountMajor() string {
	return fmt.Sprintf("%.2f", float64(t.Amount)/100)
}
