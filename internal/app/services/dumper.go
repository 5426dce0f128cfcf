package services

import (
	"time"

	"go.uber.org/zap"

	"slugline/internal/app/logger"
	"slugline/internal/app/storage"
)

// StorageDumper periodically saves the inmemory storage to file
type StorageDumper struct {
	ms      *storage.MapStorage
	timeout time.Duration
}

// NewStorageDumper
func NewStorageDumper(ms *storage.MapStorage, timeout time.Duration) StorageDumper {
	return StorageDumper{
		ms:      ms,
		timeout: timeout,
	}
}

// Start
func (d StorageDumper) Start() {
	go func() {
		for {
			if err := d.ms.Dump(); err != nil {
				logger.Log.Info("failed to dump storage", zap.Error(err))
			}
			time.Sleep(d.timeout)
		}
	}()
}
