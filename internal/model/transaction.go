package model

import "time"

// TransactionType classifies portfolio transactions.
type TransactionType string

const (
	TransactionBuy         TransactionType = "BUY"
	TransactionSell        TransactionType = "SELL"
	TransactionDividend    TransactionType = "DIVIDEND"
	TransactionInterest    TransactionType = "INTEREST"
	TransactionTransferIn  TransactionType = "TRANSFER_IN"
	TransactionTransferOut TransactionType = "TRANSFER_OUT"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionBuy, TransactionSell, TransactionDividend,
		TransactionInterest, TransactionTransferIn, TransactionTransferOut:
		return true
	}
	return false
}

// Transaction records a movement of quantity against an asset at a price.
type Transaction struct {
	ID           string          `json:"id"`
	AssetID      string          `json:"assetId"`
	Type         TransactionType `json:"type"`
	Quantity     float64         `json:"quantity"`
	PricePerUnit float64         `json:"pricePerUnit"`
	TotalAmount  float64         `json:"totalAmount"`
	Date         time.Time       `json:"date"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}
