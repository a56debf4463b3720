package server

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/absolute8511/redcon"
	"github.com/youzan/ZanGeoHash/common"
	"github.com/youzan/ZanGeoHash/metric"
	"github.com/youzan/ZanGeoHash/slow"
)

// trackConn remembers whether the handler answered with an error.
type trackConn struct {
	redcon.Conn
	failed bool
}

func (c *trackConn) WriteError(msg string) {
	c.failed = true
	c.Conn.WriteError(msg)
}

func (s *Server) serverRedis(conn redcon.Conn, cmd redcon.Command) {
	defer func() {
		if e := recover(); e != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			buf = buf[0:n]
			sLog.Infof("handle redis command %v panic: %s:%v", string(cmd.Args[0]), buf, e)
			conn.Close()
		}
	}()

	cmdName := strings.ToLower(string(cmd.Args[0]))
	switch cmdName {
	case "ping":
		conn.WriteString("PONG")
	case "quit":
		conn.WriteString("OK")
		conn.Close()
	case "command":
		names := s.cmdRouter.Names()
		conn.WriteArray(len(names))
		for _, n := range names {
			conn.WriteBulkString(n)
		}
	case "info":
		d, _ := json.MarshalIndent(s.GetStats(), "", " ")
		conn.WriteBulkString(string(d))
	default:
		h, ok := s.cmdRouter.GetCmdHandler(cmdName)
		if !ok {
			conn.WriteError(common.ErrInvalidCommand.Error() + " : ERR handle command " + string(cmd.Args[0]))
			return
		}
		start := time.Now()
		tc := &trackConn{Conn: conn}
		h(tc, cmd)
		cost := time.Since(start)

		s.stats.Get(cmdName).Update(cost.Nanoseconds(), tc.failed)
		metric.CodecOpCnt.WithLabelValues(cmdName, "redis").Inc()
		metric.CodecLatency.WithLabelValues(cmdName).Observe(float64(cost.Nanoseconds()) / 1000)
		thres := time.Duration(common.GetIntDynamicConf(common.ConfSlowCostUs)) * time.Microsecond
		slow.LogSlowCommand(cost, thres, slow.NewSlowLogInfo("redis", cmdString(cmd), ""))
	}
}

func cmdString(cmd redcon.Command) string {
	parts := make([]string, 0, len(cmd.Args))
	for _, arg := range cmd.Args {
		parts = append(parts, string(arg))
	}
	return strings.Join(parts, " ")
}

// startRedisAPI binds addr before returning so a taken port fails Start.
func (s *Server) startRedisAPI(addr string) error {
	redisS := redcon.NewServer(
		addr,
		s.serverRedis,
		func(conn redcon.Conn) bool {
			sLog.Debugf("accept: %s", conn.RemoteAddr())
			return true
		},
		func(conn redcon.Conn, err error) {
			if err != nil {
				sLog.Infof("closed: %s, err: %v", conn.RemoteAddr(), err)
			}
		},
	)
	signal := make(chan error, 1)
	serveDone := make(chan struct{})
	go func() {
		defer close(serveDone)
		err := redisS.ListenServeAndSignal(signal)
		if err != nil {
			sLog.Infof("redis server stopped: %v", err)
		}
	}()
	if err := <-signal; err != nil {
		<-serveDone
		return fmt.Errorf("failed to start the redis server: %v", err)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		<-s.stopC
		// the listener is published just after the bind signal
		for redisS.Close() != nil {
			select {
			case <-serveDone:
				return
			case <-time.After(time.Millisecond):
			}
		}
		<-serveDone
		sLog.Infof("redis api server exit")
	}()
	return nil
}
