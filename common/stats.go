package common

import (
	"math"
	"sync"
	"sync/atomic"
)

// CmdStats counts the calls, the failures and the latency distribution of one command.
type CmdStats struct {
	Calls  int64 `json:"calls"`
	Errors int64 `json:"errors"`
	// <1us, 2us, 4us, 8us, 16us, 32us, 64us, 128us, 256us, 512us, 1ms, 2ms, 4ms, 8ms, 16ms, >=32ms
	LatencyStats [16]int64 `json:"latency_stats"`
}

func (self *CmdStats) UpdateLatencyStats(latencyNs int64) {
	bucket := 0
	if latencyNs >= 1000 {
		bucket = int(math.Log2(float64(latencyNs/1000))) + 1
	}
	if bucket >= len(self.LatencyStats) {
		bucket = len(self.LatencyStats) - 1
	}
	atomic.AddInt64(&self.LatencyStats[bucket], 1)
}

func (self *CmdStats) Update(latencyNs int64, failed bool) {
	atomic.AddInt64(&self.Calls, 1)
	if failed {
		atomic.AddInt64(&self.Errors, 1)
	}
	self.UpdateLatencyStats(latencyNs)
}

func (self *CmdStats) Copy() *CmdStats {
	var s CmdStats
	s.Calls = atomic.LoadInt64(&self.Calls)
	s.Errors = atomic.LoadInt64(&self.Errors)
	for i := 0; i < len(self.LatencyStats); i++ {
		s.LatencyStats[i] = atomic.LoadInt64(&self.LatencyStats[i])
	}
	return &s
}

type ServerStats struct {
	Version string               `json:"version"`
	Build   BuildInfo            `json:"build"`
	Cmds    map[string]*CmdStats `json:"cmds"`
}

// CodecStats keeps a CmdStats per command name, the entries are created on first use.
type CodecStats struct {
	cmds sync.Map
}

func (self *CodecStats) Get(name string) *CmdStats {
	if v, ok := self.cmds.Load(name); ok {
		return v.(*CmdStats)
	}
	v, _ := self.cmds.LoadOrStore(name, &CmdStats{})
	return v.(*CmdStats)
}

func (self *CodecStats) Copy() map[string]*CmdStats {
	m := make(map[string]*CmdStats)
	self.cmds.Range(func(k, v interface{}) bool {
		m[k.(string)] = v.(*CmdStats).Copy()
		return true
	})
	return m
}
