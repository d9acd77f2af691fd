package providers

import (
	"kgsite/internal/analytics"
	"kgsite/internal/storage"
	"kgsite/internal/structures"
)

func NewSeedStoreProvider(conf *structures.Config, store storage.Store) *analytics.SeedStore {
	return analytics.NewSeedStore(store, conf.Analytics.SeedKey)
}
