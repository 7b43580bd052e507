package pricing

import (
	pkgerrors "github.com/danisworo/inventory-backoffice/pkg/errors"
)

// Quantity-ladder reconciliation. Incoming discount entries (global
// discounts, or the tiers of one variant discount) are matched against
// the stored rows of the same parent by id or by quantity:
//
//   - id present: it must resolve to a stored row; a changed quantity must
//     not collide with any other stored row's quantity.
//   - no id, quantity equals a stored row's quantity: in-place update of
//     that row.
//   - no id, unknown quantity: creation.
//
// The validator and the reconciliation engine both run this same function
// over the same inputs, so what the validator approves is exactly what the
// engine performs.

// LadderEntry is the id/quantity projection of one discount row or tier.
type LadderEntry struct {
	ID       string
	Quantity int64
}

// LadderAction says how one incoming entry maps onto stored state.
type LadderAction int

const (
	LadderCreate LadderAction = iota
	LadderUpdate
)

// LadderDecision pairs one incoming entry (by index) with its action.
type LadderDecision struct {
	Index      int
	Action     LadderAction
	ExistingID string // target row id when Action == LadderUpdate
}

// ReconcileQuantityLadder diffs incoming entries against existing rows.
// It returns a NotFound error when an entry references an unknown id and
// a Conflict error when quantities collide.
func ReconcileQuantityLadder(existing, incoming []LadderEntry) ([]LadderDecision, error) {
	byID := make(map[string]LadderEntry, len(existing))
	byQuantity := make(map[int64]LadderEntry, len(existing))
	for _, row := range existing {
		byID[row.ID] = row
		byQuantity[row.Quantity] = row
	}

	claimed := make(map[string]struct{}, len(incoming))
	finalQuantities := make(map[int64]struct{}, len(incoming))

	decisions := make([]LadderDecision, 0, len(incoming))
	for i, entry := range incoming {
		decision := LadderDecision{Index: i, Action: LadderCreate}

		switch {
		case entry.ID != "":
			row, ok := byID[entry.ID]
			if !ok {
				return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "volume discount %s not found", entry.ID)
			}
			if entry.Quantity != row.Quantity {
				if other, taken := byQuantity[entry.Quantity]; taken && other.ID != entry.ID {
					return nil, pkgerrors.Newf(pkgerrors.CodeConflict,
						"quantity %d already used by another volume discount", entry.Quantity)
				}
			}
			decision.Action = LadderUpdate
			decision.ExistingID = entry.ID

		default:
			if row, ok := byQuantity[entry.Quantity]; ok {
				decision.Action = LadderUpdate
				decision.ExistingID = row.ID
			}
		}

		if _, dup := finalQuantities[entry.Quantity]; dup {
			return nil, pkgerrors.Newf(pkgerrors.CodeConflict,
				"duplicate quantity %d in payload", entry.Quantity)
		}
		finalQuantities[entry.Quantity] = struct{}{}

		if decision.ExistingID != "" {
			if _, dup := claimed[decision.ExistingID]; dup {
				return nil, pkgerrors.Newf(pkgerrors.CodeConflict,
					"volume discount %s targeted twice", decision.ExistingID)
			}
			claimed[decision.ExistingID] = struct{}{}
		}

		decisions = append(decisions, decision)
	}

	return decisions, nil
}
