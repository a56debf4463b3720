package slow

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/youzan/ZanGeoHash/common"
)

// formatted slow logs for slow commands and large batch requests
// use slow-level to control output different slow logs
const (
	batchMinLenForLog = 128
	batchLargeLen     = 1000
	// used when no explicit threshold is configured
	cmdSlowDefault = time.Millisecond
)

var sl = common.NewLevelLogger(common.LOG_INFO, common.NewDefaultLogger("slow"))

func SetLogger(level int32, logger common.Logger) {
	sl.SetLevel(level)
	sl.Logger = logger
}

var slowLogLevel int32

func ChangeSlowLogLevel(lv int) {
	atomic.StoreInt32(&slowLogLevel, int32(lv))
}

func slowLogLv() int32 {
	return atomic.LoadInt32(&slowLogLevel)
}

type SlowLogInfo struct {
	Scope string
	Cmd   string
	Note  string
}

func NewSlowLogInfo(scope string, cmd string, note string) SlowLogInfo {
	return SlowLogInfo{
		Scope: scope,
		Cmd:   cmd,
		Note:  note,
	}
}

// LogSlowCommand logs a command slower than thres. A zero thres only
// logs at detail level and against cmdSlowDefault.
func LogSlowCommand(cost time.Duration, thres time.Duration, si SlowLogInfo) (string, bool) {
	if slowLogLv() < 0 {
		return "", false
	}
	if (thres > 0 && cost >= thres) ||
		(thres <= 0 && slowLogLv() >= common.LOG_DETAIL && cost > cmdSlowDefault) {
		str := fmt.Sprintf("[SLOW_LOGS] slow command in scope %v, cost: %v, command: %v, note: %v",
			si.Scope, cost, si.Cmd, si.Note)
		sl.Info(str)
		return str, true
	}
	return "", false
}

func LogLargeBatch(sz int, si SlowLogInfo) (string, bool) {
	if slowLogLv() < 0 {
		return "", false
	}
	if sz < batchMinLenForLog {
		return "", false
	}
	if sz >= batchLargeLen {
		str := fmt.Sprintf("[SLOW_LOGS] large batch in scope %v, size: %v, command: %v, note: %v",
			si.Scope, sz, si.Cmd, si.Note)
		sl.Info(str)
		return str, true
	}
	if slowLogLv() >= common.LOG_DETAIL ||
		(slowLogLv() >= common.LOG_INFO && sz > batchMinLenForLog*4) ||
		(slowLogLv() >= common.LOG_DEBUG && sz > batchMinLenForLog*2) {
		str := fmt.Sprintf("[SLOW_LOGS] maybe large batch in scope %v, size: %v, command: %v, note: %v",
			si.Scope, sz, si.Cmd, si.Note)
		sl.Info(str)
		return str, true
	}
	return "", false
}
