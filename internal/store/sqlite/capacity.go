package sqlite

import (
	"context"
	"path/filepath"

	"github.com/giftjoy/giftjoy/internal/filex"
	"github.com/giftjoy/giftjoy/internal/store"
)

// EstimateCapacity reports the database's on-disk footprint against the free
// space of the containing filesystem. Best-effort: where the host exposes no
// usable quota information it returns ok=false and never an error.
func (s *Store) EstimateCapacity(ctx context.Context) (*store.CapacityEstimate, bool) {
	used := filex.FileSizeOrZero(s.path) +
		filex.FileSizeOrZero(s.path+"-wal") +
		filex.FileSizeOrZero(s.path+"-journal")

	available, ok := availableBytes(filepath.Dir(s.path))
	if !ok {
		return nil, false
	}

	quota := used + available
	est := &store.CapacityEstimate{
		UsedBytes:      used,
		QuotaBytes:     quota,
		AvailableBytes: available,
	}
	if quota > 0 {
		est.PercentUsed = float64(used) / float64(quota) * 100
	}
	return est, true
}
