package engine

import (
	"github.com/multiversx/mx-chain-core-go/hashing/blake2b"
	"github.com/multiversx/mx-chain-sandbox-go/simulation"
)

// ArgsEngineFactory holds the arguments required for creating a new engine factory
type ArgsEngineFactory struct {
	TraceCacheCapacity int
}

// engineFactory creates fresh, independent in-memory engines. The simulation
// controller requests a new one on every state reset.
type engineFactory struct {
	traceCacheCapacity int
}

// NewEngineFactory returns a new instance of engineFactory
func NewEngineFactory(args ArgsEngineFactory) (*engineFactory, error) {
	if args.TraceCacheCapacity < 1 {
		return nil, ErrInvalidTraceCacheCapacity
	}

	return &engineFactory{
		traceCacheCapacity: args.TraceCacheCapacity,
	}, nil
}

// CreateEngine returns a new in-memory engine with an empty ledger
func (factory *engineFactory) CreateEngine() (simulation.ExecutionEngine, error) {
	return NewInMemoryEngine(ArgsInMemoryEngine{
		Hasher:             blake2b.NewBlake2b(),
		TraceCacheCapacity: factory.traceCacheCapacity,
	})
}

// IsInterfaceNil returns true if there is no value under the interface
func (factory *engineFactory) IsInterfaceNil() bool {
	return factory == nil
}
