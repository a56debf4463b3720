package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/absolute8511/glog"
	"github.com/judwhite/go-svc/svc"
	"github.com/mreiferson/go-options"
	"github.com/youzan/ZanGeoHash/common"
	"github.com/youzan/ZanGeoHash/server"
	"github.com/youzan/ZanGeoHash/slow"
)

var (
	flagSet = flag.NewFlagSet("geohashd", flag.ExitOnError)

	config      = flagSet.String("config", "", "path to config file")
	showVersion = flagSet.Bool("version", false, "print version string")

	httpAddress  = flagSet.String("http-address", "0.0.0.0:18101", "<addr>:<port> to listen on for HTTP clients, empty to disable")
	redisAddress = flagSet.String("redis-address", "0.0.0.0:18102", "<addr>:<port> to listen on for redis protocol clients, empty to disable")

	logLevel = flagSet.Int("log-level", int(common.LOG_INFO), "log verbose level")
	logDir   = flagSet.String("log-dir", "", "directory for log file")

	defaultPrecision = flagSet.Int("default-precision", 12, "geohash length used when a request leaves it out")
	maxBatchSize     = flagSet.Int("max-batch-size", 1000, "max points in one batch encode request")
	slowCostUs       = flagSet.Int("slow-cost-us", 0, "log commands slower than this, 0 to disable")

	dynamicConf = common.StringArray{}
)

func init() {
	flagSet.Var(&dynamicConf, "dynamic-conf", "key:value of a string dynamic conf, can be repeated")
}

type program struct {
	server *server.Server
}

func main() {
	defer glog.Flush()
	prg := &program{}
	if err := svc.Run(prg, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGINT); err != nil {
		log.Fatal(err)
	}
}

func (p *program) Init(env svc.Environment) error {
	if env.IsWindowsService() {
		dir := filepath.Dir(os.Args[0])
		return os.Chdir(dir)
	}
	return nil
}

func loadConfig(configFile string) (*server.ServerConfig, error) {
	var cfg map[string]interface{}
	if configFile != "" {
		_, err := toml.DecodeFile(configFile, &cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s - %s", configFile, err.Error())
		}
	}
	opts := server.NewServerConfig()
	options.Resolve(opts, flagSet, cfg)
	return opts, nil
}

func (p *program) Start() error {
	glog.InitWithFlag(flagSet)

	flagSet.Parse(os.Args[1:])
	fmt.Println(common.VerString(common.DefaultAppName))
	if *showVersion {
		os.Exit(0)
	}

	opts, err := loadConfig(*config)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	common.InitDefaultForGLogger(opts.LogDir)
	server.SetLogger(opts.LogLevel, &common.GLogger{})
	slow.SetLogger(opts.LogLevel, &common.GLogger{})
	for _, kv := range dynamicConf {
		k, v, ok := common.SplitConfPair(kv)
		if !ok {
			log.Fatalf("ERROR: invalid dynamic conf %q, should be key:value", kv)
		}
		common.SetStrDynamicConf(k, v)
	}

	app, err := server.NewServer(opts)
	if err != nil {
		log.Fatalf("ERROR: invalid config - %v", err)
	}
	if err := app.Start(); err != nil {
		return err
	}
	p.server = app
	return nil
}

func (p *program) Stop() error {
	if p.server != nil {
		p.server.Stop()
	}
	return nil
}
