package models

import "time"

type TransactionKind string

const (
	KindBuy  TransactionKind = "buy"
	KindSell TransactionKind = "sell"
)

func (k TransactionKind) IsValid() bool {
	return k == KindBuy || k == KindSell
}

// Transaction is an immutable record of one buy or sell execution.
type Transaction struct {
	ID          string          `json:"id"`
	Kind        TransactionKind `json:"kind"`
	FiatAmount  float64         `json:"fiat_amount"`
	AssetAmount float64         `json:"asset_amount"`
	Price       float64         `json:"price"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// PortfolioState is the full ledger state. Transactions are newest first.
type PortfolioState struct {
	CashBalance   float64       `json:"cash_balance"`
	AssetHoldings float64       `json:"asset_holdings"`
	Transactions  []Transaction `json:"transactions"`
}

func NewPortfolioState(initialBalance float64) PortfolioState {
	return PortfolioState{
		CashBalance:  initialBalance,
		Transactions: []Transaction{},
	}
}

// Clone returns a copy that shares no memory with s.
func (s PortfolioState) Clone() PortfolioState {
	txs := make([]Transaction, len(s.Transactions))
	copy(txs, s.Transactions)
	s.Transactions = txs
	return s
}

// Replay rebuilds cash and holdings from the transaction log, oldest first,
// starting from initialBalance.
func (s PortfolioState) Replay(initialBalance float64) (cash, holdings float64) {
	cash = initialBalance
	for i := len(s.Transactions) - 1; i >= 0; i-- {
		tx := s.Transactions[i]
		switch tx.Kind {
		case KindBuy:
			cash -= tx.FiatAmount
			holdings += tx.AssetAmount
		case KindSell:
			cash += tx.FiatAmount
			holdings -= tx.AssetAmount
		}
	}
	return cash, holdings
}

// Setting is a single key/value row. The ledger's durable slot is one of them.
type Setting struct {
	ID        int64     `json:"id"         gorm:"primaryKey"`
	Key       string    `json:"key"        gorm:"uniqueIndex"`
	Value     string    `json:"value"      gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}
