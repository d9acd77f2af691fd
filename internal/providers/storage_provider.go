package providers

import (
	"kgsite/internal/storage"
	"kgsite/internal/structures"
)

// NewStorageProvider opens the configured driver. The returned cleanup
// releases it; snapshot drivers are flushed by the scheduler, not here.
func NewStorageProvider(conf *structures.Config, logger Logger) (storage.Store, func(), error) {
	switch conf.Storage.Driver {
	case storage.DriverMemory, "":
		logger.Infof(TypeApp, "Storage: in-memory")
		return storage.NewMemoryStore(), func() {}, nil

	case storage.DriverFile:
		compressor, err := storage.NewZstdCompressor()
		if err != nil {
			return nil, nil, err
		}
		fs := storage.NewFileStore(conf.Storage.Path, compressor)
		logger.Infof(TypeApp, "Storage: snapshot file %s", conf.Storage.Path)
		return fs, fs.Close, nil

	case storage.DriverSQLite:
		db, err := storage.OpenSQLite(conf.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		logger.Infof(TypeApp, "Storage: sqlite %s", conf.Storage.Path)
		return db, func() {
			if err := db.Close(); err != nil {
				logger.Errorf(TypeApp, "Close sqlite: %s", err)
			}
		}, nil
	}
	return nil, nil, &storage.UnknownDriverError{Driver: conf.Storage.Driver}
}
