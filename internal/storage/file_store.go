package storage

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	json "github.com/goccy/go-json"

	"kgsite/internal/storage/interfaces"
)

const snapshotVersion = 1

type snapshot struct {
	Version int               `json:"version"`
	Entries map[string]string `json:"entries"`
}

// FileStore serves reads and writes from memory and persists the whole
// key space as one zstd-compressed JSON snapshot.
type FileStore struct {
	mem        *MemoryStore
	path       string
	compressor interfaces.CompressorInterface
	dirty      atomic.Bool
	writeMu    sync.Mutex
}

func NewFileStore(path string, compressor interfaces.CompressorInterface) *FileStore {
	return &FileStore{
		mem:        NewMemoryStore(),
		path:       path,
		compressor: compressor,
	}
}

func (f *FileStore) Get(key string) (string, error) {
	return f.mem.Get(key)
}

func (f *FileStore) Set(key, value string) error {
	if err := f.mem.Set(key, value); err != nil {
		return err
	}
	f.dirty.Store(true)
	return nil
}

func (f *FileStore) Remove(key string) error {
	if err := f.mem.Remove(key); err != nil {
		return err
	}
	f.dirty.Store(true)
	return nil
}

func (f *FileStore) Len() int {
	return f.mem.Len()
}

func (f *FileStore) Dirty() bool {
	return f.dirty.Load()
}

func (f *FileStore) Path() string {
	return f.path
}

// Persist writes the snapshot atomically through a temp file.
func (f *FileStore) Persist() error {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()

	f.dirty.Store(false)
	jsonData, err := json.Marshal(snapshot{Version: snapshotVersion, Entries: f.mem.Snapshot()})
	if err != nil {
		f.dirty.Store(true)
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		f.dirty.Store(true)
		return err
	}
	if err := writeAtomic(f.path, data); err != nil {
		f.dirty.Store(true)
		return err
	}
	return nil
}

// Restore loads the snapshot. A missing file is an empty store.
func (f *FileStore) Restore() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	raw, err := f.compressor.Decompress(data)
	if err != nil {
		// snapshots written before compression was enabled
		raw = data
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err == nil && snap.Entries != nil {
		f.mem.Replace(snap.Entries)
		return nil
	}

	var bare map[string]string
	if err := json.Unmarshal(raw, &bare); err != nil {
		return fmt.Errorf("storage: unreadable snapshot %s: %w", f.path, err)
	}
	f.mem.Replace(bare)
	return nil
}

func (f *FileStore) Close() {
	f.compressor.Close()
}

func writeAtomic(fileName string, data []byte) error {
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}
