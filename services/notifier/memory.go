package notifier

import (
	"context"
	"sync"

	"seatwise/models"
)

// MemoryNotifier is an in-process ChangeNotifier for tests and single-node
// deployments. Same contract as the Redis implementation: best-effort,
// unordered, slow subscribers drop events.
type MemoryNotifier struct {
	mu          sync.Mutex
	nextID      int
	subscribers map[string]map[int]chan models.ChangeEvent
}

// NewMemoryNotifier constructs an empty MemoryNotifier.
func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{
		subscribers: make(map[string]map[int]chan models.ChangeEvent),
	}
}

// Publish delivers the event to every current subscriber of the provider.
func (n *MemoryNotifier) Publish(_ context.Context, providerID string, event models.ChangeEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subscribers[providerID] {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe registers a new subscriber channel for the provider.
func (n *MemoryNotifier) Subscribe(_ context.Context, providerID string) (<-chan models.ChangeEvent, func(), error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subscribers[providerID] == nil {
		n.subscribers[providerID] = make(map[int]chan models.ChangeEvent)
	}
	id := n.nextID
	n.nextID++
	ch := make(chan models.ChangeEvent, 16)
	n.subscribers[providerID][id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub, ok := n.subscribers[providerID][id]; ok {
			delete(n.subscribers[providerID], id)
			close(sub)
		}
	}
	return ch, cancel, nil
}
