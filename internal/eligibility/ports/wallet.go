package ports

import (
	"context"

	vccontracts "eduraksha/contracts/vc"
)

// WalletPort defines the interface for credential claim lookups in the
// eligibility engine. The port returns the minimal claims contract rather
// than full wallet records, so the matcher never depends on wallet internals.
type WalletPort interface {
	// ActiveClaimSets returns the claim sets of the holder's active
	// credentials in wallet insertion order.
	// Returns nil, error only for infrastructure failures.
	ActiveClaimSets(ctx context.Context) ([]vccontracts.ClaimSet, error)
}
