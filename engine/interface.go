package engine

// traceCacher caches re-derived transaction traces, keyed by transaction hash
type traceCacher interface {
	Get(key []byte) (value interface{}, ok bool)
	Put(key []byte, value interface{}, sizeInBytes int) (evicted bool)
	Clear()
}
