package server

import (
	"fmt"

	"github.com/youzan/ZanGeoHash/common"
	"github.com/youzan/ZanGeoHash/common/geohash"
)

type ServerConfig struct {
	HTTPAddress  string `flag:"http-address" cfg:"http_address"`
	RedisAddress string `flag:"redis-address" cfg:"redis_address"`

	LogLevel int32  `flag:"log-level" cfg:"log_level"`
	LogDir   string `flag:"log-dir" cfg:"log_dir"`

	// used when a request does not give the precision
	DefaultPrecision int `flag:"default-precision" cfg:"default_precision"`
	MaxBatchSize     int `flag:"max-batch-size" cfg:"max_batch_size"`
	// commands slower than this are logged, 0 disables it
	SlowCostUs int `flag:"slow-cost-us" cfg:"slow_cost_us"`
}

func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		HTTPAddress:      "0.0.0.0:18101",
		RedisAddress:     "0.0.0.0:18102",
		LogLevel:         common.LOG_INFO,
		DefaultPrecision: geohash.MaxPrecision,
		MaxBatchSize:     1000,
	}
}

func (c *ServerConfig) Validate() error {
	if c.HTTPAddress == "" && c.RedisAddress == "" {
		return fmt.Errorf("no api address configured")
	}
	if err := checkIntConf(common.ConfDefaultPrecision, c.DefaultPrecision); err != nil {
		return err
	}
	if err := checkIntConf(common.ConfMaxBatchSize, c.MaxBatchSize); err != nil {
		return err
	}
	if err := checkIntConf(common.ConfSlowCostUs, c.SlowCostUs); err != nil {
		return err
	}
	return nil
}

// checkIntConf bounds the int confs, both at startup and when changed at runtime.
func checkIntConf(key string, v int) error {
	switch key {
	case common.ConfDefaultPrecision:
		if v < geohash.MinPrecision || v > geohash.MaxPrecision {
			return fmt.Errorf("default precision %d should be in [%d, %d]",
				v, geohash.MinPrecision, geohash.MaxPrecision)
		}
	case common.ConfMaxBatchSize:
		if v <= 0 {
			return fmt.Errorf("max batch size %d should be positive", v)
		}
	case common.ConfSlowCostUs:
		if v < 0 {
			return fmt.Errorf("slow cost %d should not be negative", v)
		}
	}
	return nil
}
