package common

import (
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/absolute8511/glog"
)

type Logger interface {
	Output(maxdepth int, s string) error
	OutputErr(maxdepth int, s string) error
	OutputWarning(maxdepth int, s string) error
}

type defaultLogger struct {
	logger *log.Logger
}

func header(lvl, msg string) string {
	return fmt.Sprintf("%s: %s", lvl, msg)
}

func NewDefaultLogger(module string) *defaultLogger {
	return &defaultLogger{
		logger: log.New(os.Stdout, module, log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
	}
}

func (self *defaultLogger) Output(maxdepth int, s string) error {
	return self.logger.Output(maxdepth+1, s)
}

func (self *defaultLogger) OutputErr(maxdepth int, s string) error {
	return self.logger.Output(maxdepth+1, header("ERR", s))
}

func (self *defaultLogger) OutputWarning(maxdepth int, s string) error {
	return self.logger.Output(maxdepth+1, header("WARN", s))
}

type GLogger struct {
}

func (self *GLogger) Output(maxdepth int, s string) error {
	glog.InfoDepth(maxdepth, s)
	return nil
}

func (self *GLogger) OutputErr(maxdepth int, s string) error {
	glog.ErrorDepth(maxdepth, s)
	return nil
}

func (self *GLogger) OutputWarning(maxdepth int, s string) error {
	glog.WarningDepth(maxdepth, s)
	return nil
}

// InitDefaultForGLogger starts the glog flush worker, logs go to dir when it is set.
func InitDefaultForGLogger(dir string) {
	if dir != "" {
		glog.SetGLogDir(dir)
	}
	glog.StartWorker(time.Second * 2)
}

const (
	LOG_ERR int32 = iota
	LOG_WARN
	LOG_INFO
	LOG_DEBUG
	LOG_DETAIL
)

type LevelLogger struct {
	Logger Logger
	level  int32
}

func NewLevelLogger(level int32, l Logger) *LevelLogger {
	return &LevelLogger{
		Logger: l,
		level:  level,
	}
}

func (self *LevelLogger) SetLevel(l int32) {
	atomic.StoreInt32(&self.level, l)
}

func (self *LevelLogger) Level() int32 {
	return atomic.LoadInt32(&self.level)
}

func (self *LevelLogger) output(lvl int32, depth int, s string) {
	if self.Logger == nil || self.Level() < lvl {
		return
	}
	switch lvl {
	case LOG_ERR:
		self.Logger.OutputErr(depth+1, s)
	case LOG_WARN:
		self.Logger.OutputWarning(depth+1, s)
	default:
		self.Logger.Output(depth+1, s)
	}
}

func (self *LevelLogger) Infof(f string, args ...interface{}) {
	self.output(LOG_INFO, 2, fmt.Sprintf(f, args...))
}

func (self *LevelLogger) Debugf(f string, args ...interface{}) {
	self.output(LOG_DEBUG, 2, fmt.Sprintf(f, args...))
}

func (self *LevelLogger) Detailf(f string, args ...interface{}) {
	self.output(LOG_DETAIL, 2, fmt.Sprintf(f, args...))
}

func (self *LevelLogger) Warningf(f string, args ...interface{}) {
	self.output(LOG_WARN, 2, fmt.Sprintf(f, args...))
}

func (self *LevelLogger) Errorf(f string, args ...interface{}) {
	self.output(LOG_ERR, 2, fmt.Sprintf(f, args...))
}

func (self *LevelLogger) Fatalf(f string, args ...interface{}) {
	self.output(LOG_ERR, 2, fmt.Sprintf(f, args...))
	os.Exit(1)
}

func (self *LevelLogger) Info(args ...interface{}) {
	self.output(LOG_INFO, 2, fmt.Sprint(args...))
}

func (self *LevelLogger) Warning(args ...interface{}) {
	self.output(LOG_WARN, 2, fmt.Sprint(args...))
}

func (self *LevelLogger) Error(args ...interface{}) {
	self.output(LOG_ERR, 2, fmt.Sprint(args...))
}

func (self *LevelLogger) Fatal(args ...interface{}) {
	self.output(LOG_ERR, 2, fmt.Sprint(args...))
	os.Exit(1)
}

var (
	defaultMergePeriod = time.Second
	outputInterval     = time.Second
)

type mergedLine struct {
	level int32
	str   string
}

type mergeStatus struct {
	start time.Time
	count int
}

// MergeLogger prints a line the first time it is seen and folds the
// repeats within defaultMergePeriod into a single summary line. Bad client
// input can arrive at a high rate, this keeps the log readable.
type MergeLogger struct {
	*LevelLogger

	mu      sync.Mutex
	statusm map[mergedLine]*mergeStatus
	stopC   chan struct{}
}

func NewMergeLogger(logger *LevelLogger) *MergeLogger {
	l := &MergeLogger{
		LevelLogger: logger,
		statusm:     make(map[mergedLine]*mergeStatus),
		stopC:       make(chan struct{}),
	}
	go l.outputLoop()
	return l
}

func (l *MergeLogger) Stop() {
	close(l.stopC)
}

func (l *MergeLogger) MergeInfof(format string, args ...interface{}) {
	l.merge(mergedLine{level: LOG_INFO, str: fmt.Sprintf(format, args...)})
}

func (l *MergeLogger) MergeWarningf(format string, args ...interface{}) {
	l.merge(mergedLine{level: LOG_WARN, str: fmt.Sprintf(format, args...)})
}

func (l *MergeLogger) MergeErrorf(format string, args ...interface{}) {
	l.merge(mergedLine{level: LOG_ERR, str: fmt.Sprintf(format, args...)})
}

func (l *MergeLogger) merge(ln mergedLine) {
	l.mu.Lock()
	if st, ok := l.statusm[ln]; ok {
		st.count++
		l.mu.Unlock()
		return
	}
	l.statusm[ln] = &mergeStatus{start: time.Now()}
	l.mu.Unlock()
	l.output(ln.level, 3, ln.str)
}

func (l *MergeLogger) flush(now time.Time) {
	var outputs []mergedLine
	l.mu.Lock()
	for ln, st := range l.statusm {
		if st.start.Add(defaultMergePeriod).After(now) {
			continue
		}
		if st.count == 0 {
			delete(l.statusm, ln)
			continue
		}
		took := now.Sub(st.start).Round(10 * time.Millisecond)
		outputs = append(outputs, mergedLine{
			level: ln.level,
			str:   fmt.Sprintf("%s [merged %d repeated lines in %s]", ln.str, st.count, took),
		})
		st.start = now
		st.count = 0
	}
	l.mu.Unlock()

	for _, o := range outputs {
		l.output(o.level, 3, o.str)
	}
}

func (l *MergeLogger) outputLoop() {
	ticker := time.NewTicker(outputInterval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			l.flush(now)
		case <-l.stopC:
			return
		}
	}
}
