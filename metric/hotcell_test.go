package metric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHotCells(t *testing.T) {
	hs := NewHotCellStats(4, 32)

	hs.Hit("9q8yy9mf")
	hs.Hit("9q8yzzzz")
	hs.Hit("9q8y")
	hs.Hit("rbsm1k5ug9h6")
	hs.Hit("kvb")
	hs.Hit("")

	top := hs.TopN(0)
	assert.Equal(t, 3, len(top))
	assert.Equal(t, CellCount{Cell: "9q8y", Cnt: 3}, top[0])
	assert.Equal(t, CellCount{Cell: "kvb", Cnt: 1}, top[1])
	assert.Equal(t, CellCount{Cell: "rbsm", Cnt: 1}, top[2])

	assert.Equal(t, 1, len(hs.TopN(1)))

	hs.Enable(false)
	hs.Hit("kvb")
	assert.Nil(t, hs.TopN(0))
	hs.Enable(true)
	assert.Equal(t, int32(1), hs.TopN(0)[1].Cnt)

	hs.Clear()
	assert.Equal(t, 0, len(hs.TopN(0)))
}

func TestHotCellsEviction(t *testing.T) {
	hs := NewHotCellStats(1, 2)
	hs.Hit("aaaa")
	hs.Hit("aaaa")
	hs.Hit("bbbb")
	hs.Hit("cccc")

	top := hs.TopN(0)
	assert.Equal(t, 2, len(top))
	assert.Equal(t, "aaaa", top[0].Cell)
	assert.Equal(t, int32(2), top[0].Cnt)
}

func TestClampSetting(t *testing.T) {
	assert.Equal(t, 1, clampSetting(0, 1, 12))
	assert.Equal(t, 12, clampSetting(100, 1, 12))
	assert.Equal(t, 4, clampSetting(4, 1, 12))
	assert.Equal(t, 4, HotCellPrecision)
}
