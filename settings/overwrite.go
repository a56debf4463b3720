package settings

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"strings"
)

// RootSettingDir is the directory holding soft-settings.json, the working
// directory when empty.
var RootSettingDir string

// loadSettingFile returns nil with no error when the file does not exist.
func loadSettingFile(fn string) (map[string]interface{}, error) {
	b, err := ioutil.ReadFile(filepath.Clean(fn))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m := map[string]interface{}{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("setting file %s: %v", fn, err)
	}
	return m, nil
}

// overwriteSettingsWithFile sets the fields of s found in the file, matched
// by field name or by json tag. A broken file is fatal since the defaults
// would silently hide it.
func overwriteSettingsWithFile(s interface{}, fn string) {
	cfg, err := loadSettingFile(filepath.Join(RootSettingDir, fn))
	if err != nil {
		panic(err)
	}
	rd := reflect.Indirect(reflect.ValueOf(s))
	overwriteSettings(cfg, rd, jsonFieldNames(rd.Type()))
}

func jsonFieldNames(rt reflect.Type) map[string]string {
	names := make(map[string]string, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		jn := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if jn != "" && jn != "-" {
			names[jn] = f.Name
		}
	}
	return names
}

func lookupField(key string, rd reflect.Value, tagNames map[string]string) reflect.Value {
	if name, ok := tagNames[key]; ok {
		return rd.FieldByName(name)
	}
	return rd.FieldByName(key)
}

// overwriteSettings ignores unknown keys and values of the wrong json type.
func overwriteSettings(cfg map[string]interface{}, rd reflect.Value, tagNames map[string]string) {
	for key, val := range cfg {
		field := lookupField(key, rd, tagNames)
		if !field.IsValid() || !field.CanSet() {
			continue
		}
		switch field.Kind() {
		case reflect.Uint64, reflect.Uint32, reflect.Uint:
			if n, ok := val.(float64); ok && n >= 0 {
				field.SetUint(uint64(n))
			}
		case reflect.Int64, reflect.Int32, reflect.Int:
			if n, ok := val.(float64); ok {
				field.SetInt(int64(n))
			}
		case reflect.Bool:
			if b, ok := val.(bool); ok {
				field.SetBool(b)
			}
		case reflect.String:
			if str, ok := val.(string); ok {
				field.SetString(str)
			}
		}
	}
}
