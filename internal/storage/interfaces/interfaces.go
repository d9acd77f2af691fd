package interfaces

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}

type SchedulerInterface interface {
	Init()
	Stop()
	Restore() error
	Persist() error
}

// Persister is a store that keeps entries in memory and writes them out
// on demand.
type Persister interface {
	Restore() error
	Persist() error
	Dirty() bool
}
