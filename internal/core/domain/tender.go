package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TenderKind splits payment methods into physically counted instruments
// (cash, checks) and electronically settled ones (cards, e-transfers).
type TenderKind string

const (
	TenderPhysical   TenderKind = "PHYSICAL"
	TenderElectronic TenderKind = "ELECTRONIC"
)

// PaymentMethod is one entry of the external payment-method catalog.
type PaymentMethod struct {
	PaymentMethodID string     `json:"paymentMethodID"`
	Name            string     `json:"name"`
	Kind            TenderKind `json:"kind"`
	IsCash          bool       `json:"isCash"`
}

// TenderBalancePhase marks whether a tender snapshot was taken at open
// (verifying leftover tender) or at close (reconciliation).
type TenderBalancePhase string

const (
	TenderAtOpen  TenderBalancePhase = "OPEN"
	TenderAtClose TenderBalancePhase = "CLOSE"
)

// TenderBalance is a per-session, per-payment-method snapshot of counted
// versus expected quantity and amount.
type TenderBalance struct {
	SessionID       string             `json:"sessionID"`
	PaymentMethodID string             `json:"paymentMethodID"`
	Kind            TenderKind         `json:"kind"`
	Phase           TenderBalancePhase `json:"phase"`
	CountedQty      int64              `json:"countedQty"`
	CountedAmount   decimal.Decimal    `json:"countedAmount"`
	ExpectedQty     int64              `json:"expectedQty"`
	ExpectedAmount  decimal.Decimal    `json:"expectedAmount"`
}

// TenderExpectation is the per-method expected total derived from ledger
// postings, used to reconcile counted tender at close.
type TenderExpectation struct {
	Method         PaymentMethod   `json:"method"`
	ExpectedQty    int64           `json:"expectedQty"`
	ExpectedAmount decimal.Decimal `json:"expectedAmount"`
}

// LedgerPosting is one cash/tender posting supplied by the external
// transaction ledger for a session.
type LedgerPosting struct {
	SessionID       string          `json:"sessionID"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethodID string          `json:"paymentMethodID"`
	CreatedAt       time.Time       `json:"createdAt"`
}
