package relay

import (
	"context"
	"sync"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"

	"github.com/example/chat-relay-demo/events"
	"github.com/example/chat-relay-demo/modules/registry"
)

// Module is the room broadcast coordinator. It owns no state of its own
// beyond the mutex: every operation mutates or queries the injected registry
// store and publishes an event carrying the resolved recipients and payloads.
//
// The mutex makes each operation indivisible with respect to the registry:
// the membership change and the snapshot that gets broadcast always agree.
type Module struct {
	mu       sync.Mutex
	store    *registry.Store
	eventBus mono.EventBus
	logger   types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module              = (*Module)(nil)
	_ mono.EventBusAwareModule = (*Module)(nil)
	_ mono.EventEmitterModule  = (*Module)(nil)
)

// NewModule creates a new relay module on top of the given membership store.
func NewModule(store *registry.Store, logger types.Logger) *Module {
	return &Module{
		store:  store,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "relay"
}

// SetEventBus receives the EventBus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.UserJoinedV1.ToBase(),
		events.UserLeftV1.ToBase(),
		events.MessageSentV1.ToBase(),
		events.LocationSharedV1.ToBase(),
	}
}

// Start initializes the module.
func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Relay module started")
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Relay module stopped")
	return nil
}

// Publishing is fire-and-forget: delivery failures are logged, never
// propagated back into the operation outcome.

func (m *Module) publishJoined(event events.UserJoinedEvent) {
	if m.eventBus == nil {
		return
	}
	if err := events.UserJoinedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish UserJoined event", "error", err)
	}
}

func (m *Module) publishLeft(event events.UserLeftEvent) {
	if m.eventBus == nil {
		return
	}
	if err := events.UserLeftV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish UserLeft event", "error", err)
	}
}

func (m *Module) publishMessageSent(event events.MessageSentEvent) {
	if m.eventBus == nil {
		return
	}
	if err := events.MessageSentV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish MessageSent event", "error", err)
	}
}

func (m *Module) publishLocationShared(event events.LocationSharedEvent) {
	if m.eventBus == nil {
		return
	}
	if err := events.LocationSharedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish LocationShared event", "error", err)
	}
}
