package layout

import "sync"

// ============================================================================
// Scratch Pooling
// ============================================================================
//
// Flex and grid staging need per-call scratch buffers sized by the number of
// children or tracks. Staging recurses, so a single shared buffer does not work,
// but the buffers never outlive the call that acquired them. Pooling them keeps the
// hot path from allocating on every frame.
//
// Usage:
//   tracks := acquireTracks(rows + cols)
//   defer releaseTracks(tracks)

// trackPool pools []float32 buffers for grid track sizes and offsets.
var trackPool = sync.Pool{
	New: func() interface{} {
		return make([]float32, 0, 32)
	},
}

// acquireTracks returns a zeroed float32 slice of length n.
// Caller must call releaseTracks when done.
func acquireTracks(n int) []float32 {
	buf := trackPool.Get().([]float32)
	if cap(buf) < n {
		trackPool.Put(buf[:0])
		return make([]float32, n, n*2)
	}
	buf = buf[:n]
	clear(buf)
	return buf
}

// releaseTracks returns a track buffer to the pool.
func releaseTracks(buf []float32) {
	if buf == nil {
		return
	}
	// Only pool buffers up to a reasonable size to avoid memory bloat
	if cap(buf) <= 512 {
		trackPool.Put(buf[:0])
	}
}

// flexItemPool pools []flexItem buffers for flex staging.
var flexItemPool = sync.Pool{
	New: func() interface{} {
		return make([]flexItem, 0, 16)
	},
}

// acquireFlexItems returns a zeroed flexItem slice of length n.
// Caller must call releaseFlexItems when done.
func acquireFlexItems(n int) []flexItem {
	items := flexItemPool.Get().([]flexItem)
	if cap(items) < n {
		flexItemPool.Put(items[:0])
		return make([]flexItem, n, n*2)
	}
	items = items[:n]
	clear(items)
	return items
}

// releaseFlexItems returns a flex item buffer to the pool.
func releaseFlexItems(items []flexItem) {
	if items == nil {
		return
	}
	// Clear the slice to avoid holding node references (helps GC)
	clear(items)
	if cap(items) <= 256 {
		flexItemPool.Put(items[:0])
	}
}
