package settings

// Soft settings are some configurations than can be safely changed and
// the app need to be restarted to apply such configuration changes.
var Soft = getSoftSettings()

type soft struct {
	// test
	TestInt  uint64 `json:"test_int,omitempty"`
	TestBool bool   `json:"test_bool"`
	TestStr  string `json:"test_str"`

	// hot cell stats, a hot cell is a hash cut to HotCellPrecision characters
	HotCellPrecision  uint64 `json:"hot_cell_precision"`
	HotCellBuckets    uint64 `json:"hot_cell_buckets"`
	HotCellsPerBucket uint64 `json:"hot_cells_per_bucket"`
	DisableHotCells   bool   `json:"disable_hot_cells"`

	// http
	MaxBatchBodyBytes uint64 `json:"max_batch_body_bytes"`
}

func getSoftSettings() soft {
	d := defaultSoftSettings()
	overwriteSettingsWithFile(&d, "soft-settings.json")
	return d
}

func defaultSoftSettings() soft {
	return soft{
		HotCellPrecision:  4,
		HotCellBuckets:    4,
		HotCellsPerBucket: 32,
		MaxBatchBodyBytes: 8 * 1024 * 1024,
	}
}
