package registry

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sync"
)

// namespace is one ordered backing map pair of the registry. Within a
// namespace both the name and the address are unique.
type namespace struct {
	addressesByName map[string][]byte
	namesByAddress  map[string]string
}

func newNamespace() *namespace {
	return &namespace{
		addressesByName: make(map[string][]byte),
		namesByAddress:  make(map[string]string),
	}
}

func (ns *namespace) register(name string, address []byte) error {
	existingAddress, found := ns.addressesByName[name]
	if found {
		if bytes.Equal(existingAddress, address) {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrDuplicateContractName, name)
	}

	existingName, found := ns.namesByAddress[string(address)]
	if found && existingName != name {
		return fmt.Errorf("%w: %s", ErrAddressAlreadyRegistered, hex.EncodeToString(address))
	}

	ns.addressesByName[name] = address
	ns.namesByAddress[string(address)] = name

	return nil
}

// addressRegistry maintains the two independent name<->address namespaces:
// user-deployed contracts and standard/library contracts. Lookups try the
// user namespace first, then the standard one.
type addressRegistry struct {
	mutNamespaces sync.RWMutex
	deployed      *namespace
	standard      *namespace
}

// NewAddressRegistry returns a new, empty address registry
func NewAddressRegistry() *addressRegistry {
	return &addressRegistry{
		deployed: newNamespace(),
		standard: newNamespace(),
	}
}

// RegisterDeployed binds a user-deployed contract name to its address
func (ar *addressRegistry) RegisterDeployed(name string, address []byte) error {
	return ar.register(ar.deployed, name, address)
}

// RegisterStandard binds a standard contract name to its address
func (ar *addressRegistry) RegisterStandard(name string, address []byte) error {
	return ar.register(ar.standard, name, address)
}

func (ar *addressRegistry) register(ns *namespace, name string, address []byte) error {
	if len(name) == 0 {
		return ErrEmptyContractName
	}
	if len(address) == 0 {
		return fmt.Errorf("%w for contract %s", ErrEmptyAddress, name)
	}

	ar.mutNamespaces.Lock()
	defer ar.mutNamespaces.Unlock()

	return ns.register(name, address)
}

// Lookup returns the address bound to the given name, searching the user
// namespace first and the standard one second
func (ar *addressRegistry) Lookup(name string) ([]byte, error) {
	ar.mutNamespaces.RLock()
	defer ar.mutNamespaces.RUnlock()

	for _, ns := range []*namespace{ar.deployed, ar.standard} {
		address, found := ns.addressesByName[name]
		if found {
			return address, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNameNotFound, name)
}

// LookupName returns the name bound to the given address, searching the user
// namespace first and the standard one second
func (ar *addressRegistry) LookupName(address []byte) (string, error) {
	ar.mutNamespaces.RLock()
	defer ar.mutNamespaces.RUnlock()

	for _, ns := range []*namespace{ar.deployed, ar.standard} {
		name, found := ns.namesByAddress[string(address)]
		if found {
			return name, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrAddressNotFound, hex.EncodeToString(address))
}

// DeployedContracts returns a snapshot of the user namespace as a
// name -> hex-encoded address view, used by the UI boundary
func (ar *addressRegistry) DeployedContracts() map[string]string {
	ar.mutNamespaces.RLock()
	defer ar.mutNamespaces.RUnlock()

	view := make(map[string]string, len(ar.deployed.addressesByName))
	for name, address := range ar.deployed.addressesByName {
		view[name] = hex.EncodeToString(address)
	}

	return view
}

// Reset clears both namespaces
func (ar *addressRegistry) Reset() {
	ar.mutNamespaces.Lock()
	ar.deployed = newNamespace()
	ar.standard = newNamespace()
	ar.mutNamespaces.Unlock()
}

// IsInterfaceNil returns true if there is no value under the interface
func (ar *addressRegistry) IsInterfaceNil() bool {
	return ar == nil
}
