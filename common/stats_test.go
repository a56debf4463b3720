package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCmdStatsBuckets(t *testing.T) {
	var s CmdStats
	s.Update(500, false)
	s.Update(1500, false)
	s.Update(3000, true)
	s.Update(int64(1000*1000*1000), false)

	c := s.Copy()
	assert.Equal(t, int64(4), c.Calls)
	assert.Equal(t, int64(1), c.Errors)
	assert.Equal(t, int64(1), c.LatencyStats[0])
	assert.Equal(t, int64(1), c.LatencyStats[1])
	assert.Equal(t, int64(1), c.LatencyStats[2])
	assert.Equal(t, int64(1), c.LatencyStats[15])
}

func TestCodecStats(t *testing.T) {
	var cs CodecStats
	cs.Get("enc").Update(10, false)
	cs.Get("enc").Update(10, true)
	cs.Get("dec").Update(10, false)

	m := cs.Copy()
	assert.Equal(t, 2, len(m))
	assert.Equal(t, int64(2), m["enc"].Calls)
	assert.Equal(t, int64(1), m["enc"].Errors)
	assert.Equal(t, int64(1), m["dec"].Calls)
}
