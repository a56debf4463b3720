package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDynamicConf(t *testing.T) {
	assert.Equal(t, []string{"default_precision:12", "max_batch_size:1000", "slow_cost_us:0"}, DumpDynamicConf())

	changedCalled := 0
	RegisterConfChangedHandler(ConfDefaultPrecision, func(nv interface{}) {
		_, ok := nv.(int)
		assert.True(t, ok)
		changedCalled++
	})
	assert.True(t, SetIntDynamicConf(ConfDefaultPrecision, 8))
	assert.Equal(t, 8, GetIntDynamicConf(ConfDefaultPrecision))
	assert.Equal(t, 1, changedCalled)
	assert.True(t, SetIntDynamicConf(ConfDefaultPrecision, 12))

	assert.False(t, SetIntDynamicConf("noexist-set", 2))
	assert.Equal(t, 0, GetIntDynamicConf("noexist-set"))

	assert.Equal(t, "", GetStrDynamicConf("test_str"))
	SetStrDynamicConf("test_str", "v")
	assert.Equal(t, "v", GetStrDynamicConf("test_str"))
}

func TestSplitConfPair(t *testing.T) {
	k, v, ok := SplitConfPair("region:cn:east")
	assert.True(t, ok)
	assert.Equal(t, "region", k)
	assert.Equal(t, "cn:east", v)

	k, v, ok = SplitConfPair("empty:")
	assert.True(t, ok)
	assert.Equal(t, "empty", k)
	assert.Equal(t, "", v)

	_, _, ok = SplitConfPair(":v")
	assert.False(t, ok)
	_, _, ok = SplitConfPair("novalue")
	assert.False(t, ok)
}
