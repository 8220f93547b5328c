// Package transaction holds the ledger entry model shared by the bank-sync
// and voice pipelines.
package transaction

import "time"

// Type classifies a ledger entry. Amounts are always stored positive;
// the type carries the direction.
type Type string

const (
	TypeIncome  Type = "RECEITA"
	TypeExpense Type = "DESPESA"
	TypeReserve Type = "RESERVA"
)

// IsValid reports whether t is one of the accepted transaction types.
func (t Type) IsValid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeReserve:
		return true
	}
	return false
}

const (
	// CategoryGeneral is the categorizer fallback for bank-synced rows.
	CategoryGeneral = "Geral"
	// CategoryOther is the default for voice-created rows with no category.
	CategoryOther = "Outros"

	// PaymentMethodBank marks rows ingested from the banking aggregator.
	PaymentMethodBank = "Banco"
)

// Transaction is a single ledger entry.
type Transaction struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Item           string     `json:"item"`
	Valor          float64    `json:"valor"`
	Tipo           Type       `json:"tipo"`
	Categoria      string     `json:"categoria"`
	FormaPagamento *string    `json:"forma_pagamento,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}
