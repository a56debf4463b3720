package common

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

const (
	// precision used by commands that leave it out
	ConfDefaultPrecision = "default_precision"
	// max points in one batch encode request
	ConfMaxBatchSize = "max_batch_size"
	// commands slower than this are logged, 0 disables it
	ConfSlowCostUs = "slow_cost_us"
)

var intConfMap map[string]*int64
var strConfMap sync.Map
var changedHandler sync.Map

type KeyChangedHandler func(newV interface{})

func init() {
	intConfMap = make(map[string]*int64)
	defaultPrecision := int64(12)
	intConfMap[ConfDefaultPrecision] = &defaultPrecision
	maxBatch := int64(1000)
	intConfMap[ConfMaxBatchSize] = &maxBatch
	slowCost := int64(0)
	intConfMap[ConfSlowCostUs] = &slowCost
}

func RegisterConfChangedHandler(key string, h KeyChangedHandler) {
	changedHandler.Store(key, h)
}

func notifyChanged(k string, newV interface{}) {
	v, ok := changedHandler.Load(k)
	if !ok {
		return
	}
	if hd, ok := v.(KeyChangedHandler); ok {
		hd(newV)
	}
}

func DumpDynamicConf() []string {
	cfs := make([]string, 0, len(intConfMap)*2)
	for k, v := range intConfMap {
		iv := atomic.LoadInt64(v)
		cfs = append(cfs, k+":"+strconv.Itoa(int(iv)))
	}
	strConfMap.Range(func(k, v interface{}) bool {
		cfs = append(cfs, fmt.Sprintf("%v:%v", k, v))
		return true
	})
	sort.Strings(cfs)
	return cfs
}

// SetIntDynamicConf only changes the known int keys and reports whether k is one of them.
func SetIntDynamicConf(k string, newV int) bool {
	v, ok := intConfMap[k]
	if !ok {
		return false
	}
	atomic.StoreInt64(v, int64(newV))
	notifyChanged(k, newV)
	return true
}

func GetIntDynamicConf(k string) int {
	v, ok := intConfMap[k]
	if ok {
		return int(atomic.LoadInt64(v))
	}
	return 0
}

func SetStrDynamicConf(k string, newV string) {
	strConfMap.Store(k, newV)
	notifyChanged(k, newV)
}

func GetStrDynamicConf(k string) string {
	v, ok := strConfMap.Load(k)
	if !ok {
		return ""
	}
	return v.(string)
}

// SplitConfPair splits a key:value conf item, the value may hold more colons.
func SplitConfPair(s string) (string, string, bool) {
	i := strings.Index(s, ":")
	if i <= 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}
