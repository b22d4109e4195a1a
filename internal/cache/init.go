package cache

import (
	"github.com/detailpos/detailpos/internal/config"
	"github.com/detailpos/detailpos/internal/logger"
)

// Initialize initializes the cache system
func Initialize(cfg *config.Configuration, log *logger.Logger) *InMemoryCache {
	log.Info("Initializing cache system")

	InitializeInMemoryCache(cfg)

	return GetInMemoryCache()
}
