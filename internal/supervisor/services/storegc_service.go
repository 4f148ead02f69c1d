// Interlink - Content Directory Relevance and Entity Linking Engine
// Copyright 2026 C. Palmer (cpalmer418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cpalmer418/interlink

package services

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/cpalmer418/interlink/internal/logging"
)

// ValueLogGC matches the catalog store's garbage collection hook.
type ValueLogGC interface {
	RunValueLogGC() error
}

// StoreGCService periodically runs BadgerDB value-log garbage collection.
// Badger never reclaims value-log space on its own; without this loop a
// long-running catalog slowly eats the disk.
type StoreGCService struct {
	store    ValueLogGC
	interval time.Duration
}

// NewStoreGCService creates the GC loop service.
func NewStoreGCService(store ValueLogGC, interval time.Duration) *StoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StoreGCService{
		store:    store,
		interval: interval,
	}
}

// Serve implements suture.Service.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// One pass per tick; badger.ErrNoRewrite means there was
			// nothing to collect, which is the normal idle case.
			err := s.store.RunValueLogGC()
			switch {
			case err == nil:
				logging.Debug().Msg("Store value-log GC reclaimed space")
			case errors.Is(err, badger.ErrNoRewrite):
				// Nothing to do.
			case errors.Is(err, badger.ErrGCInMemoryMode):
				// In-memory stores have no value log; stop the loop.
				<-ctx.Done()
				return ctx.Err()
			default:
				logging.Warn().Err(err).Msg("Store value-log GC failed")
			}
		}
	}
}

func (s *StoreGCService) String() string {
	return "store-gc"
}
