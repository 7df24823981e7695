package domain

import "time"

// Snapshot is an immutable per-symbol market-data projection. Spread and
// mid are 0 when either side of the book is empty.
type Snapshot struct {
	Symbol        string
	BestBid       float64
	BestAsk       float64
	Spread        float64
	Mid           float64
	LastTradePrice float64
	VWAP          float64
	TotalVolume   int64
	BidDepth      int
	AskDepth      int
	CapturedAt    time.Time
}

// SnapshotBuilder constructs an immutable Snapshot piecewise.
type SnapshotBuilder struct {
	s Snapshot
}

func NewSnapshotBuilder(symbol string) *SnapshotBuilder {
	return &SnapshotBuilder{s: Snapshot{Symbol: symbol}}
}

func (b *SnapshotBuilder) BestBid(v float64) *SnapshotBuilder        { b.s.BestBid = v; return b }
func (b *SnapshotBuilder) BestAsk(v float64) *SnapshotBuilder        { b.s.BestAsk = v; return b }
func (b *SnapshotBuilder) Spread(v float64) *SnapshotBuilder         { b.s.Spread = v; return b }
func (b *SnapshotBuilder) Mid(v float64) *SnapshotBuilder            { b.s.Mid = v; return b }
func (b *SnapshotBuilder) LastTradePrice(v float64) *SnapshotBuilder { b.s.LastTradePrice = v; return b }
func (b *SnapshotBuilder) VWAP(v float64) *SnapshotBuilder           { b.s.VWAP = v; return b }
func (b *SnapshotBuilder) TotalVolume(v int64) *SnapshotBuilder      { b.s.TotalVolume = v; return b }
func (b *SnapshotBuilder) BidDepth(v int) *SnapshotBuilder           { b.s.BidDepth = v; return b }
func (b *SnapshotBuilder) AskDepth(v int) *SnapshotBuilder           { b.s.AskDepth = v; return b }

func (b *SnapshotBuilder) Build() Snapshot {
	b.s.CapturedAt = time.Now()
	return b.s
}
