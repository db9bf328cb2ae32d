// client/broadcaster.go
package client

import (
	"sync"

	"github.com/mihirzalavadiya/css-battle-showcase/models"
)

// broadcaster fans the authoritative battle list out to subscribed views.
// Subscribers always receive the full list, never incremental patches.
type broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func([]models.Battle)
}

// subscribe registers fn and returns its unsubscribe func. Unsubscribing
// twice, or during teardown while a broadcast is in flight, is safe.
func (b *broadcaster) subscribe(fn func([]models.Battle)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = make(map[int]func([]models.Battle))
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

func (b *broadcaster) notify(battles []models.Battle) {
	b.mu.Lock()
	fns := make([]func([]models.Battle), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(battles)
	}
}
