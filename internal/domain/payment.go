package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a rent payment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentOverdue PaymentStatus = "overdue"
	PaymentPartial PaymentStatus = "partial"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentOverdue, PaymentPartial:
		return true
	}
	return false
}

// RentPayment is a single rent installment for a tenant.
type RentPayment struct {
	ID         string          `json:"id"`
	TenantID   string          `json:"tenantId"`
	Property   *PropertyRef    `json:"property,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
	DueDate    time.Time       `json:"dueDate"`
	PaidDate   *time.Time      `json:"paidDate,omitempty"`
	Status     PaymentStatus   `json:"status"`
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Validate checks the required fields for create/update.
func (p RentPayment) Validate() error {
	if p.TenantID == "" {
		return ValidationError{Field: "tenantId", Reason: "must not be empty"}
	}
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if p.Status != "" && !p.Status.Valid() {
		return ValidationError{Field: "status", Reason: "must be pending, paid, overdue or partial"}
	}
	return nil
}

// EffectiveStatus derives overdue from the due date: a pending payment past
// due reads as overdue without a stored state change.
func (p RentPayment) EffectiveStatus(now time.Time) PaymentStatus {
	if p.Status == PaymentPending && p.DueDate.Before(now) {
		return PaymentOverdue
	}
	return p.Status
}
