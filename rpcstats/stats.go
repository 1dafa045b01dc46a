package rpcstats

import (
	"sync"
)

// RPCUsageStats tracks per-method gateway call counters for the process.
type RPCUsageStats struct {
	total                  uint
	counterPerMethod       *sync.Map
	counterPerMethodPerTag *sync.Map
}

var stats *RPCUsageStats
var mu sync.Mutex

func getInstance() *RPCUsageStats {
	mu.Lock()
	defer mu.Unlock()

	if stats == nil {
		stats = &RPCUsageStats{}
		stats.counterPerMethod = &sync.Map{}
		stats.counterPerMethodPerTag = &sync.Map{}
	}
	return stats
}

// GetStats returns the total number of calls and a per-method breakdown.
func GetStats() (uint, map[string]uint) {
	stats := getInstance()

	perMethod := make(map[string]uint)
	stats.counterPerMethod.Range(func(key, value interface{}) bool {
		perMethod[key.(string)] = value.(uint)
		return true
	})
	return stats.total, perMethod
}

// Reset clears all counters.
func Reset() {
	stats := getInstance()
	stats.total = 0
	stats.counterPerMethod = &sync.Map{}
	stats.counterPerMethodPerTag = &sync.Map{}
}

// CountCall increments the counter for method.
func CountCall(method string) {
	stats := getInstance()
	stats.total++
	value, _ := stats.counterPerMethod.LoadOrStore(method, uint(0))
	stats.counterPerMethod.Store(method, value.(uint)+1)
}

// CountCallWithTag increments the counter for method under the given
// attribution tag. An empty tag counts as a plain call.
func CountCallWithTag(method string, tag string) {
	if tag == "" {
		CountCall(method)
		return
	}

	stats := getInstance()
	value, _ := stats.counterPerMethodPerTag.LoadOrStore(tag, &sync.Map{})
	methodMap := value.(*sync.Map)
	value, _ = methodMap.LoadOrStore(method, uint(0))
	methodMap.Store(method, value.(uint)+1)
	stats.total++
}
