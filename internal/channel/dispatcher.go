package channel

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/flemzord/walletclaw/pkg/message"
)

// Sentinel errors for outbound dispatch.
var (
	// ErrNoChannel indicates the outbound message targets a channel that
	// is not registered.
	ErrNoChannel = errors.New("channel: unknown channel")

	// ErrDuplicateChannel indicates the name is already registered.
	ErrDuplicateChannel = errors.New("channel: duplicate channel name")
)

// Dispatcher routes outbound messages to the channel named in
// msg.Channel. Registration happens once during wiring; after that the
// router and the gateway only read, so lookups take the read lock.
type Dispatcher struct {
	mu     sync.RWMutex
	byName map[string]Channel
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{byName: make(map[string]Channel)}
}

// Register adds a channel under the given name, normally its full module
// ID so inbound msg.Channel values round-trip back to their source.
func (d *Dispatcher) Register(name string, ch Channel) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, taken := d.byName[name]; taken {
		return fmt.Errorf("%w: %s", ErrDuplicateChannel, name)
	}
	d.byName[name] = ch
	return nil
}

// Get returns the channel registered under name.
func (d *Dispatcher) Get(name string) (Channel, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ch, ok := d.byName[name]
	return ch, ok
}

// Send delivers an outbound message through its channel.
func (d *Dispatcher) Send(ctx context.Context, msg message.OutboundMessage) error {
	ch, ok := d.Get(msg.Channel)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoChannel, msg.Channel)
	}
	return ch.Send(ctx, msg)
}

// Channels returns the registered channel names in sorted order, so the
// gateway's /status output is stable across restarts.
func (d *Dispatcher) Channels() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.byName))
	for name := range d.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
