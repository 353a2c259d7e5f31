package registry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Module exposes the membership registry as a mono module. The relay module
// holds a direct reference to the store for the hot path; the request-reply
// services below serve out-of-band queries (the REST surface).
type Module struct {
	store  *Store
	logger types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
)

// NewModule creates a new registry module.
func NewModule(logger types.Logger) *Module {
	return &Module{
		store:  NewStore(),
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "registry"
}

// Store returns the membership store for direct injection into the relay.
func (m *Module) Store() *Store {
	return m.store
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		ServiceGetUser,
		json.Unmarshal,
		json.Marshal,
		m.handleGetUser,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceGetUser, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		ServiceUsersInRoom,
		json.Unmarshal,
		json.Marshal,
		m.handleUsersInRoom,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceUsersInRoom, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		ServiceListRooms,
		json.Unmarshal,
		json.Marshal,
		m.handleListRooms,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceListRooms, err)
	}

	m.logger.Info("Registered registry services",
		"services", []string{ServiceGetUser, ServiceUsersInRoom, ServiceListRooms})
	return nil
}

// Start initializes the module.
func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Registry module started")
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Registry module stopped", "registeredUsers", m.store.UserCount())
	return nil
}
