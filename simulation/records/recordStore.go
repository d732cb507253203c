package records

import (
	"fmt"
	"sync"
)

// recordStore is an append-only log of execution records. Indices are assigned
// at append time, strictly increasing within a run, and are never reused until
// the store is cleared alongside a state reset.
type recordStore struct {
	mutRecords sync.RWMutex
	records    []*ExecutionRecord
}

// NewRecordStore returns a new, empty record store
func NewRecordStore() *recordStore {
	return &recordStore{
		records: make([]*ExecutionRecord, 0),
	}
}

// Append assigns the next index to the given record, stores it and returns the
// assigned index. Existing entries are never overwritten.
func (store *recordStore) Append(record *ExecutionRecord) (uint64, error) {
	if record == nil {
		return 0, ErrNilRecord
	}

	store.mutRecords.Lock()
	defer store.mutRecords.Unlock()

	record.RecordIndex = uint64(len(store.records))
	store.records = append(store.records, record)

	return record.RecordIndex, nil
}

// RecordMarkingNewBlock appends a block-boundary marker record carrying no
// transaction payload and returns it
func (store *recordStore) RecordMarkingNewBlock(blockIndex uint64) *ExecutionRecord {
	record := &ExecutionRecord{
		PositionLabel: fmt.Sprintf("block %d", blockIndex),
		Type:          BlockRecord,
	}
	_, _ = store.Append(record)

	return record
}

// Get returns the record stored at the given index
func (store *recordStore) Get(index uint64) (*ExecutionRecord, error) {
	store.mutRecords.RLock()
	defer store.mutRecords.RUnlock()

	if index >= uint64(len(store.records)) {
		return nil, fmt.Errorf("%w: index %d", ErrRecordNotFound, index)
	}

	return store.records[index], nil
}

// Len returns the number of stored records
func (store *recordStore) Len() int {
	store.mutRecords.RLock()
	defer store.mutRecords.RUnlock()

	return len(store.records)
}

// Clear empties the store. It is paired 1:1 with a state reset.
func (store *recordStore) Clear() {
	store.mutRecords.Lock()
	store.records = make([]*ExecutionRecord, 0)
	store.mutRecords.Unlock()
}

// IsInterfaceNil returns true if there is no value under the interface
func (store *recordStore) IsInterfaceNil() bool {
	return store == nil
}
