// Package cache defines the secondary, swappable read cache for published
// market-data snapshots. It is a cache of derived, recomputable data, not a
// system of record, grounded on olyamironova-exchange-engine's
// internal/port.Cache / adapter/in_memory / adapter/cache split.
package cache

import (
	"context"

	"github.com/myronova/obx/internal/domain"
)

// SnapshotCache is the port the Market Data Service writes through and the
// Exchange facade may read from on a miss.
type SnapshotCache interface {
	SetSnapshot(ctx context.Context, symbol string, snap domain.Snapshot) error
	GetSnapshot(ctx context.Context, symbol string) (domain.Snapshot, error)
}
