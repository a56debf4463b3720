package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/youzan/ZanGeoHash/server"
)

func TestAppConfigParse(t *testing.T) {
	flagSet.Parse([]string{"-max-batch-size", "200"})

	opts, err := loadConfig("../../server/geohashd.example.conf")
	assert.Nil(t, err)
	assert.Equal(t, "0.0.0.0:18101", opts.HTTPAddress)
	assert.Equal(t, 9, opts.DefaultPrecision)
	// flags win over the config file
	assert.Equal(t, 200, opts.MaxBatchSize)
	assert.Equal(t, 2000, opts.SlowCostUs)
	assert.Nil(t, opts.Validate())

	opts.HTTPAddress = "127.0.0.1:0"
	opts.RedisAddress = ""
	s, err := server.NewServer(opts)
	assert.Nil(t, err)
	assert.Nil(t, s.Start())
	s.Stop()

	_, err = loadConfig("not-exist.conf")
	assert.NotNil(t, err)
}
