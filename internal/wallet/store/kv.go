package store

// KV is the durable persistence port for the wallet. The credential store
// serializes its full record set under a single fixed key on every mutation;
// anything that can hold one string per key can back a wallet.
type KV interface {
	// Set durably stores value under key.
	Set(key, value string) error
	// Get returns the value stored under key, with ok=false when absent.
	Get(key string) (value string, ok bool, err error)
}
