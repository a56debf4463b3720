package metric

// track the most requested cells, a cell is the hash cut to HotCellPrecision
// characters so that nearby requests share a counter.

import (
	"sort"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
	"github.com/spaolacci/murmur3"
	"github.com/youzan/ZanGeoHash/settings"
)

var (
	HotCellPrecision = clampSetting(settings.Soft.HotCellPrecision, 1, 12)

	defaultHotBucketSize = clampSetting(settings.Soft.HotCellBuckets, 1, 64)
	maxHotInBucket       = clampSetting(settings.Soft.HotCellsPerBucket, 1, 4096)
)

var HotCells = newDefaultHotCellStats()

func clampSetting(v uint64, min int, max int) int {
	if v < uint64(min) {
		return min
	}
	if v > uint64(max) {
		return max
	}
	return int(v)
}

func newDefaultHotCellStats() *HotCellStats {
	hs := NewHotCellStats(defaultHotBucketSize, maxHotInBucket)
	hs.Enable(!settings.Soft.DisableHotCells)
	return hs
}

type CellInfo struct {
	Cnt int32
}

func (ci *CellInfo) Inc() {
	atomic.AddInt32(&ci.Cnt, 1)
}

type hotBucket struct {
	cells *lru.ARCCache
}

func newHotBucket(size int) *hotBucket {
	l, err := lru.NewARC(size)
	if err != nil {
		panic(err)
	}
	return &hotBucket{cells: l}
}

func (b *hotBucket) hit(cell string) {
	item, ok := b.cells.Get(cell)
	if ok {
		item.(*CellInfo).Inc()
		return
	}
	// a concurrent add may lose one count, that is fine for stats
	b.cells.Add(cell, &CellInfo{Cnt: 1})
}

type HotCellStats struct {
	buckets []*hotBucket
	enabled int32
}

// NewHotCellStats keeps at most bucketNum*perBucket cells, the least
// useful ones are evicted first.
func NewHotCellStats(bucketNum int, perBucket int) *HotCellStats {
	hs := &HotCellStats{
		buckets: make([]*hotBucket, bucketNum),
		enabled: 1,
	}
	for i := 0; i < len(hs.buckets); i++ {
		hs.buckets[i] = newHotBucket(perBucket)
	}
	return hs
}

// Clear drops the history so that new hot cells can show up.
func (hs *HotCellStats) Clear() {
	for _, b := range hs.buckets {
		b.cells.Purge()
	}
}

func (hs *HotCellStats) isEnabled() bool {
	return atomic.LoadInt32(&hs.enabled) > 0
}

func (hs *HotCellStats) Enable(on bool) {
	if on {
		atomic.StoreInt32(&hs.enabled, 1)
	} else {
		atomic.StoreInt32(&hs.enabled, 0)
	}
}

// Hit counts a request for the cell containing hash.
func (hs *HotCellStats) Hit(hash string) {
	if !hs.isEnabled() || len(hash) == 0 {
		return
	}
	if len(hash) > HotCellPrecision {
		hash = hash[:HotCellPrecision]
	}
	bi := murmur3.Sum64([]byte(hash)) % uint64(len(hs.buckets))
	hs.buckets[bi].hit(hash)
}

type CellCount struct {
	Cell string `json:"cell"`
	Cnt  int32  `json:"cnt"`
}

type cellList []CellCount

func (t cellList) Len() int      { return len(t) }
func (t cellList) Swap(i, j int) { t[i], t[j] = t[j], t[i] }
func (t cellList) Less(i, j int) bool {
	if t[i].Cnt == t[j].Cnt {
		return t[i].Cell < t[j].Cell
	}
	return t[i].Cnt > t[j].Cnt
}

// TopN returns up to n cells, the most requested first.
func (hs *HotCellStats) TopN(n int) []CellCount {
	if !hs.isEnabled() {
		return nil
	}
	var l cellList
	for _, b := range hs.buckets {
		for _, k := range b.cells.Keys() {
			v, ok := b.cells.Peek(k)
			if !ok {
				continue
			}
			l = append(l, CellCount{Cell: k.(string), Cnt: atomic.LoadInt32(&v.(*CellInfo).Cnt)})
		}
	}
	sort.Sort(l)
	if n > 0 && len(l) > n {
		l = l[:n]
	}
	return l
}
