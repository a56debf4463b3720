package server

import (
	"net"
	"net/http"
	"sync"

	"github.com/youzan/ZanGeoHash/common"
	"github.com/youzan/ZanGeoHash/common/geohash"
	"github.com/youzan/ZanGeoHash/metric"
)

var sLog = common.NewLevelLogger(common.LOG_INFO, common.NewDefaultLogger("server"))

func SetLogger(level int32, logger common.Logger) {
	sLog.SetLevel(level)
	sLog.Logger = logger
}

func SLogger() *common.LevelLogger {
	return sLog
}

type Server struct {
	conf      *ServerConfig
	stopC     chan struct{}
	wg        sync.WaitGroup
	router    http.Handler
	cmdRouter *common.CmdRouter
	stats     common.CodecStats
	rejectLog *common.MergeLogger

	mu       sync.Mutex
	httpAddr net.Addr
	httpSrv  *http.Server
	stopOnce sync.Once
}

func NewServer(conf *ServerConfig) (*Server, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	sLog.SetLevel(conf.LogLevel)
	common.SetIntDynamicConf(common.ConfDefaultPrecision, conf.DefaultPrecision)
	common.SetIntDynamicConf(common.ConfMaxBatchSize, conf.MaxBatchSize)
	common.SetIntDynamicConf(common.ConfSlowCostUs, conf.SlowCostUs)

	s := &Server{
		conf:      conf,
		stopC:     make(chan struct{}),
		cmdRouter: common.NewCmdRouter(),
		rejectLog: common.NewMergeLogger(sLog),
	}
	s.registerHandler()
	s.initHttpHandler()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.router.ServeHTTP(w, req)
}

// Start binds the configured listeners, an empty address disables that api.
func (s *Server) Start() error {
	if s.conf.HTTPAddress != "" {
		l, err := net.Listen("tcp", s.conf.HTTPAddress)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.httpAddr = l.Addr()
		s.httpSrv = &http.Server{Handler: s}
		srv := s.httpSrv
		s.mu.Unlock()
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			err := srv.Serve(l)
			sLog.Infof("http server stopped: %v", err)
		}()
	}
	if s.conf.RedisAddress != "" {
		if err := s.startRedisAPI(s.conf.RedisAddress); err != nil {
			s.Stop()
			return err
		}
	}
	sLog.Infof("geohash server started, http: %v, redis: %v", s.conf.HTTPAddress, s.conf.RedisAddress)
	metric.EventCnt.WithLabelValues("server_start").Inc()
	return nil
}

// HTTPAddr is the bound http address, nil before Start.
func (s *Server) HTTPAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.httpAddr
}

func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopC)
		s.mu.Lock()
		if s.httpSrv != nil {
			s.httpSrv.Close()
		}
		s.mu.Unlock()
		s.wg.Wait()
		s.rejectLog.Stop()
		sLog.Infof("server stopped")
	})
}

func (s *Server) GetStats() common.ServerStats {
	return common.ServerStats{
		Version: common.VerString(""),
		Build:   common.GetBuildInfo(),
		Cmds:    s.stats.Copy(),
	}
}

func defaultPrecision() int {
	p := common.GetIntDynamicConf(common.ConfDefaultPrecision)
	if p < geohash.MinPrecision || p > geohash.MaxPrecision {
		return geohash.MaxPrecision
	}
	return p
}

// onCodecError records a rejected request. The line carries only the
// command and the error kind so repeated rejects merge into one line.
func (s *Server) onCodecError(op string, err error) {
	kind := geohash.KindOf(err)
	kindName := "argument"
	if kind != 0 {
		kindName = kind.String()
	}
	metric.CodecErrorCnt.WithLabelValues(op, kindName).Inc()
	s.rejectLog.MergeWarningf("%s rejected: %s", op, kindName)
	sLog.Debugf("%s rejected: %v", op, err)
}
