package ledger

import (
	"encoding/json"
	"time"

	"bitfolio/internal/models"

	"github.com/pkg/errors"
)

type slotTransaction struct {
	ID          string  `json:"id"`
	Kind        string  `json:"kind"`
	FiatAmount  float64 `json:"fiatAmount"`
	AssetAmount float64 `json:"assetAmount"`
	Price       float64 `json:"price"`
	OccurredAt  string  `json:"occurredAt"`
}

type slotState struct {
	CashBalance   float64           `json:"cashBalance"`
	AssetHoldings float64           `json:"assetHoldings"`
	Transactions  []slotTransaction `json:"transactions"`
}

// Encode serializes state into the durable slot format. Timestamps are
// written as RFC 3339 strings in UTC.
func Encode(state models.PortfolioState) ([]byte, error) {
	out := slotState{
		CashBalance:   state.CashBalance,
		AssetHoldings: state.AssetHoldings,
		Transactions:  make([]slotTransaction, len(state.Transactions)),
	}
	for i, tx := range state.Transactions {
		out.Transactions[i] = slotTransaction{
			ID:          tx.ID,
			Kind:        string(tx.Kind),
			FiatAmount:  tx.FiatAmount,
			AssetAmount: tx.AssetAmount,
			Price:       tx.Price,
			OccurredAt:  tx.OccurredAt.UTC().Format(time.RFC3339Nano),
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal portfolio")
	}
	return data, nil
}

// Decode is the inverse of Encode. Any malformed or inconsistent content is
// reported as ErrRestoreFailure.
func Decode(data []byte) (models.PortfolioState, error) {
	var in slotState
	if err := json.Unmarshal(data, &in); err != nil {
		return models.PortfolioState{}, errors.Wrapf(ErrRestoreFailure, "malformed slot: %v", err)
	}

	switch {
	case in.CashBalance < 0:
		return models.PortfolioState{}, errors.Wrap(ErrRestoreFailure, "negative cash balance")
	case in.AssetHoldings < 0:
		return models.PortfolioState{}, errors.Wrap(ErrRestoreFailure, "negative holdings")
	}

	state := models.PortfolioState{
		CashBalance:   in.CashBalance,
		AssetHoldings: in.AssetHoldings,
		Transactions:  make([]models.Transaction, len(in.Transactions)),
	}
	for i, tx := range in.Transactions {
		kind := models.TransactionKind(tx.Kind)
		switch {
		case tx.ID == "":
			return models.PortfolioState{}, errors.Wrapf(ErrRestoreFailure, "transaction %d has no id", i)
		case !kind.IsValid():
			return models.PortfolioState{}, errors.Wrapf(ErrRestoreFailure, "transaction %s has unknown kind %q", tx.ID, tx.Kind)
		case tx.FiatAmount <= 0 || tx.AssetAmount <= 0 || tx.Price <= 0:
			return models.PortfolioState{}, errors.Wrapf(ErrRestoreFailure, "transaction %s has non-positive amounts", tx.ID)
		}

		occurredAt, err := time.Parse(time.RFC3339Nano, tx.OccurredAt)
		if err != nil {
			return models.PortfolioState{}, errors.Wrapf(ErrRestoreFailure, "transaction %s: bad timestamp %q", tx.ID, tx.OccurredAt)
		}

		state.Transactions[i] = models.Transaction{
			ID:          tx.ID,
			Kind:        kind,
			FiatAmount:  tx.FiatAmount,
			AssetAmount: tx.AssetAmount,
			Price:       tx.Price,
			OccurredAt:  occurredAt,
		}
	}

	return state, nil
}
