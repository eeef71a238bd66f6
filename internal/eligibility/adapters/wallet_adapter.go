package adapters

import (
	"context"

	vccontracts "eduraksha/contracts/vc"
	"eduraksha/internal/eligibility/ports"
)

// WalletService defines the interface for wallet service operations used by
// the eligibility module. This allows the adapter to depend on an interface
// rather than a concrete service type.
type WalletService interface {
	ActiveClaimSets(ctx context.Context) ([]vccontracts.ClaimSet, error)
}

// WalletAdapter implements ports.WalletPort by calling the wallet service.
// Routes through the service layer rather than directly to the store,
// maintaining proper module boundaries.
type WalletAdapter struct {
	service WalletService
}

// NewWalletAdapter creates a new wallet adapter that routes through the
// wallet service.
func NewWalletAdapter(service WalletService) ports.WalletPort {
	return &WalletAdapter{service: service}
}

// ActiveClaimSets returns the claim sets of the holder's active credentials.
func (a *WalletAdapter) ActiveClaimSets(ctx context.Context) ([]vccontracts.ClaimSet, error) {
	return a.service.ActiveClaimSets(ctx)
}
