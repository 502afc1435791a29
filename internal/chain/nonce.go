package chain

import "sync"

// NonceCounter hands out sequential nonces for a single sender. It is
// seeded once from the chain at batch start and never re-synced mid-batch,
// so a concurrent external sender on the same account will collide; running
// two batches against one funding account is unsupported.
type NonceCounter struct {
	mu   sync.Mutex
	next uint64
}

// NewNonceCounter seeds the counter with the sender's current pending nonce.
func NewNonceCounter(start uint64) *NonceCounter {
	return &NonceCounter{next: start}
}

// Next returns the current nonce and advances the counter.
func (n *NonceCounter) Next() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	nonce := n.next
	n.next++
	return nonce
}

// Peek returns the nonce the next call to Next would hand out.
func (n *NonceCounter) Peek() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.next
}
