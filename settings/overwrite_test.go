package settings

import (
	"io/ioutil"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverwriteSettings(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "geohash-settings")
	assert.Nil(t, err)
	t.Logf("tmp: %v", tmpDir)
	RootSettingDir = tmpDir
	defer func() { RootSettingDir = "" }()
	defer os.RemoveAll(tmpDir)

	s0 := getSoftSettings()
	assert.Equal(t, defaultSoftSettings(), s0)

	testSettings := `{"TestInt":1, "TestStr":"str", "TestBool":true}`
	err = ioutil.WriteFile(path.Join(tmpDir, "soft-settings.json"), []byte(testSettings), 0777)
	assert.Nil(t, err)

	s1 := getSoftSettings()
	assert.Equal(t, uint64(1), s1.TestInt)
	assert.Equal(t, true, s1.TestBool)
	assert.Equal(t, "str", s1.TestStr)
	assert.Equal(t, uint64(4), s1.HotCellPrecision)

	testSettings = `{"test_int":1, "test_str":"str", "test_bool":true, "hot_cell_precision": 6, "disable_hot_cells": true}`
	err = ioutil.WriteFile(path.Join(tmpDir, "soft-settings.json"), []byte(testSettings), 0777)
	assert.Nil(t, err)

	s2 := getSoftSettings()
	assert.Equal(t, uint64(1), s2.TestInt)
	assert.Equal(t, true, s2.TestBool)
	assert.Equal(t, "str", s2.TestStr)
	assert.Equal(t, uint64(6), s2.HotCellPrecision)
	assert.Equal(t, true, s2.DisableHotCells)
	assert.Equal(t, uint64(32), s2.HotCellsPerBucket)

	// values of the wrong type are ignored
	testSettings = `{"hot_cell_precision": "6", "test_bool": 1}`
	err = ioutil.WriteFile(path.Join(tmpDir, "soft-settings.json"), []byte(testSettings), 0777)
	assert.Nil(t, err)
	s3 := getSoftSettings()
	assert.Equal(t, uint64(4), s3.HotCellPrecision)
	assert.Equal(t, false, s3.TestBool)
}

func TestLoadSettingFile(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "geohash-settings")
	assert.Nil(t, err)
	defer os.RemoveAll(tmpDir)

	m, err := loadSettingFile(path.Join(tmpDir, "missing.json"))
	assert.Nil(t, err)
	assert.Nil(t, m)

	fn := path.Join(tmpDir, "broken.json")
	assert.Nil(t, ioutil.WriteFile(fn, []byte(`{"hot_cell_precision":`), 0644))
	_, err = loadSettingFile(fn)
	assert.NotNil(t, err)
}
