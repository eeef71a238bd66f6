package service

import (
	"context"

	"eduraksha/internal/wallet/models"
)

//go:generate mockgen -source=contracts.go -destination=mocks/mocks.go -package=mocks Store,Signer

// Store defines the persistence interface for credential records.
// Error Contract:
// - Get/Update/Remove return store.ErrNotFound when no record exists
// - Insert/ReplaceAll return store.ErrDuplicate on id collisions
// - Mutations return errors matching store.ErrPersist when the durable
//   snapshot write fails (the in-memory change is already rolled back)
type Store interface {
	Insert(ctx context.Context, cred *models.Credential) error
	Get(ctx context.Context, id string) (*models.Credential, error)
	Update(ctx context.Context, cred *models.Credential) error
	Remove(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Credential, error)
	ReplaceAll(ctx context.Context, creds []*models.Credential) error
	Count(ctx context.Context) (int, error)
}

// Signer is the external proof collaborator. It receives the canonical
// serialization of the unsigned credential fields and returns an opaque proof
// blob. The wallet never verifies proofs; verification belongs to a separate
// collaborator outside this module.
type Signer interface {
	Sign(ctx context.Context, payload []byte) (string, error)
}
