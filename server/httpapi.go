package server

import (
	"io/ioutil"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"github.com/youzan/ZanGeoHash/common"
	"github.com/youzan/ZanGeoHash/common/geohash"
	"github.com/youzan/ZanGeoHash/metric"
	"github.com/youzan/ZanGeoHash/settings"
	"github.com/youzan/ZanGeoHash/slow"
)

type encodeResp struct {
	Hash      string `json:"hash"`
	Precision int    `json:"precision"`
}

type encodeIntResp struct {
	Value     uint64 `json:"value"`
	Precision int    `json:"precision"`
}

type decodeResp struct {
	Hash      string  `json:"hash"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// httpOp records the http side of a codec operation, it goes after the
// HttpLog decorator so a rejected request is still counted.
func (s *Server) httpOp(op string) common.Decorator {
	return func(f common.APIHandler) common.APIHandler {
		return func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) (interface{}, error) {
			start := time.Now()
			data, err := f(w, req, ps)
			cost := time.Since(start)
			s.stats.Get("http:"+op).Update(cost.Nanoseconds(), err != nil)
			thres := time.Duration(common.GetIntDynamicConf(common.ConfSlowCostUs)) * time.Microsecond
			slow.LogSlowCommand(cost, thres, slow.NewSlowLogInfo("http", req.URL.RequestURI(), ""))
			metric.CodecOpCnt.WithLabelValues(op, "http").Inc()
			metric.CodecLatency.WithLabelValues(op).Observe(float64(cost.Nanoseconds()) / 1000)
			return data, err
		}
	}
}

func (s *Server) badRequest(op string, err error) error {
	s.onCodecError(op, err)
	return common.HttpErr{Code: http.StatusBadRequest, Text: err.Error()}
}

func coordParams(reqParams url.Values) (float64, float64, int, error) {
	lat, err := parseFloatArg("latitude", reqParams.Get("lat"))
	if err != nil {
		return 0, 0, 0, err
	}
	lng, err := parseFloatArg("longitude", reqParams.Get("lng"))
	if err != nil {
		return 0, 0, 0, err
	}
	precision, err := parsePrecisionArg(reqParams.Get("precision"), defaultPrecision())
	if err != nil {
		return 0, 0, 0, err
	}
	return lat, lng, precision, nil
}

func (s *Server) doEncode(w http.ResponseWriter, req *http.Request, ps httprouter.Params) (interface{}, error) {
	reqParams, err := url.ParseQuery(req.URL.RawQuery)
	if err != nil {
		return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "INVALID_REQUEST"}
	}
	lat, lng, precision, err := coordParams(reqParams)
	if err != nil {
		return nil, s.badRequest("encode", err)
	}
	hash, err := geohash.EncodeToString(lat, lng, precision)
	if err != nil {
		return nil, s.badRequest("encode", err)
	}
	metric.HotCells.Hit(hash)
	return &encodeResp{Hash: hash, Precision: precision}, nil
}

func (s *Server) doEncodeInt(w http.ResponseWriter, req *http.Request, ps httprouter.Params) (interface{}, error) {
	reqParams, err := url.ParseQuery(req.URL.RawQuery)
	if err != nil {
		return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "INVALID_REQUEST"}
	}
	lat, lng, precision, err := coordParams(reqParams)
	if err != nil {
		return nil, s.badRequest("encodeint", err)
	}
	v, err := geohash.EncodeToInteger(lat, lng, precision)
	if err != nil {
		return nil, s.badRequest("encodeint", err)
	}
	return &encodeIntResp{Value: uint64(v), Precision: precision}, nil
}

func (s *Server) doDecode(w http.ResponseWriter, req *http.Request, ps httprouter.Params) (interface{}, error) {
	reqParams, err := url.ParseQuery(req.URL.RawQuery)
	if err != nil {
		return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "INVALID_REQUEST"}
	}
	hash := ps.ByName("hash")
	var lat, lng float64
	if reqParams.Get("precision") != "" {
		precision, err := parsePrecisionArg(reqParams.Get("precision"), len(hash))
		if err != nil {
			return nil, s.badRequest("decode", err)
		}
		lat, lng, err = geohash.DecodeFromStringWithPrecision(hash, precision)
		if err != nil {
			return nil, s.badRequest("decode", err)
		}
		hash = hash[:precision]
	} else {
		lat, lng, err = geohash.DecodeFromString(hash)
		if err != nil {
			return nil, s.badRequest("decode", err)
		}
	}
	metric.HotCells.Hit(hash)
	return &decodeResp{Hash: hash, Latitude: lat, Longitude: lng}, nil
}

func (s *Server) doDecodeInt(w http.ResponseWriter, req *http.Request, ps httprouter.Params) (interface{}, error) {
	v, err := parseUintArg("value", ps.ByName("value"))
	if err != nil {
		return nil, s.badRequest("decodeint", err)
	}
	hash, err := geohash.DecodeStringFromInteger(v)
	if err != nil {
		return nil, s.badRequest("decodeint", err)
	}
	return &encodeResp{Hash: hash, Precision: len(hash)}, nil
}

func (s *Server) doBox(w http.ResponseWriter, req *http.Request, ps httprouter.Params) (interface{}, error) {
	area, err := geohash.DecodeArea(ps.ByName("hash"))
	if err != nil {
		return nil, s.badRequest("box", err)
	}
	return area, nil
}

func (s *Server) doEncodeTagged(w http.ResponseWriter, req *http.Request, ps httprouter.Params) (interface{}, error) {
	reqParams, err := url.ParseQuery(req.URL.RawQuery)
	if err != nil {
		return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "INVALID_REQUEST"}
	}
	lat, lng, precision, err := coordParams(reqParams)
	if err != nil {
		return nil, s.badRequest("tag", err)
	}
	v, err := geohash.EncodeTagged(lat, lng, precision)
	if err != nil {
		return nil, s.badRequest("tag", err)
	}
	return &encodeIntResp{Value: v, Precision: precision}, nil
}

func (s *Server) doDecodeTagged(w http.ResponseWriter, req *http.Request, ps httprouter.Params) (interface{}, error) {
	v, err := parseUintArg("value", ps.ByName("value"))
	if err != nil {
		return nil, s.badRequest("untag", err)
	}
	hash, err := geohash.DecodeTagged(v)
	if err != nil {
		return nil, s.badRequest("untag", err)
	}
	return &encodeResp{Hash: hash, Precision: len(hash)}, nil
}

/* request body:
{"precision": 8, "points": [{"lat": 37.7, "lng": -122.4}, ...]}
reply:
{"precision": 8, "hashes": ["9q8yy9mf", ...]}
one bad point rejects the whole batch and the error names its index
*/
func (s *Server) doBatchEncode(w http.ResponseWriter, req *http.Request, ps httprouter.Params) (interface{}, error) {
	body, err := ioutil.ReadAll(http.MaxBytesReader(w, req.Body, int64(settings.Soft.MaxBatchBodyBytes)))
	if err != nil {
		return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "INVALID_REQUEST"}
	}
	if !gjson.Valid(string(body)) {
		return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "INVALID_JSON"}
	}
	precision := defaultPrecision()
	if p := gjson.GetBytes(body, "precision"); p.Exists() {
		if p.Type != gjson.Number {
			return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "INVALID_ARG: precision should be a number"}
		}
		if f := p.Float(); f != math.Trunc(f) {
			return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "INVALID_ARG: precision should be an integer"}
		}
		precision = int(p.Int())
	}
	points := gjson.GetBytes(body, "points")
	if !points.Exists() || !points.IsArray() {
		return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "INVALID_ARG: points should be an array"}
	}
	pl := points.Array()
	if len(pl) > common.GetIntDynamicConf(common.ConfMaxBatchSize) {
		s.onCodecError("batchencode", common.ErrBatchTooLarge)
		return nil, common.HttpErr{Code: http.StatusBadRequest, Text: common.ErrBatchTooLarge.Error()}
	}
	metric.BatchSize.Observe(float64(len(pl)))
	slow.LogLargeBatch(len(pl), slow.NewSlowLogInfo("http", "batchencode", req.RemoteAddr))

	hashes := make([]string, 0, len(pl))
	for i, pt := range pl {
		lat := pt.Get("lat")
		lng := pt.Get("lng")
		if lat.Type != gjson.Number || lng.Type != gjson.Number {
			return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "INVALID_ARG: point " + strconv.Itoa(i) + " needs numeric lat and lng"}
		}
		hash, err := geohash.EncodeToString(lat.Float(), lng.Float(), precision)
		if err != nil {
			s.onCodecError("batchencode", err)
			return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "point " + strconv.Itoa(i) + ": " + err.Error()}
		}
		hashes = append(hashes, hash)
	}
	for _, h := range hashes {
		metric.HotCells.Hit(h)
	}
	resp, err := sjson.SetBytes([]byte("{}"), "precision", precision)
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(resp, "hashes", hashes)
}

func (s *Server) pingHandler(w http.ResponseWriter, req *http.Request, ps httprouter.Params) (interface{}, error) {
	return "OK", nil
}

func (s *Server) doSetLogLevel(w http.ResponseWriter, req *http.Request, ps httprouter.Params) (interface{}, error) {
	reqParams, err := url.ParseQuery(req.URL.RawQuery)
	if err != nil {
		return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "INVALID_REQUEST"}
	}
	levelStr := reqParams.Get("loglevel")
	if levelStr == "" {
		return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "MISSING_ARG_LEVEL"}
	}
	level, err := strconv.Atoi(levelStr)
	if err != nil {
		return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "BAD_LEVEL_STRING"}
	}
	sLog.SetLevel(int32(level))
	return nil, nil
}

func (s *Server) doSetSlowLogLevel(w http.ResponseWriter, req *http.Request, ps httprouter.Params) (interface{}, error) {
	reqParams, err := url.ParseQuery(req.URL.RawQuery)
	if err != nil {
		return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "INVALID_REQUEST"}
	}
	levelStr := reqParams.Get("level")
	if levelStr == "" {
		return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "MISSING_ARG_LEVEL"}
	}
	level, err := strconv.Atoi(levelStr)
	if err != nil {
		return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "BAD_LEVEL_STRING"}
	}
	slow.ChangeSlowLogLevel(level)
	sLog.Infof("slow log level changed to : %v", level)
	return nil, nil
}

func (s *Server) doSetDynamicConf(w http.ResponseWriter, req *http.Request, ps httprouter.Params) (interface{}, error) {
	reqParams, err := url.ParseQuery(req.URL.RawQuery)
	if err != nil {
		return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "INVALID_REQUEST"}
	}
	paramT := reqParams.Get("type")
	paramKey := reqParams.Get("key")
	paramV := reqParams.Get("value")
	if paramT == "int" {
		n, err := strconv.Atoi(paramV)
		if err != nil {
			return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "INVALID_ARG"}
		}
		if err := checkIntConf(paramKey, n); err != nil {
			return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "INVALID_ARG: " + err.Error()}
		}
		if !common.SetIntDynamicConf(paramKey, n) {
			return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "INVALID_ARG: unknown key"}
		}
	} else if paramT == "str" {
		common.SetStrDynamicConf(paramKey, paramV)
	} else {
		return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "INVALID_ARG: param type should be int/str"}
	}
	sLog.Infof("conf %v changed to : %v", paramKey, paramV)
	return nil, nil
}

func (s *Server) doGetDynamicConf(w http.ResponseWriter, req *http.Request, ps httprouter.Params) (interface{}, error) {
	reqParams, err := url.ParseQuery(req.URL.RawQuery)
	if err != nil {
		return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "INVALID_REQUEST"}
	}
	paramT := reqParams.Get("type")
	paramKey := reqParams.Get("key")
	if paramT == "int" {
		v := common.GetIntDynamicConf(paramKey)
		return struct {
			Key   string `json:"key"`
			Value int    `json:"value"`
		}{
			Key:   paramKey,
			Value: v,
		}, nil
	} else if paramT == "str" {
		v := common.GetStrDynamicConf(paramKey)
		return struct {
			Key   string `json:"key"`
			Value string `json:"value"`
		}{
			Key:   paramKey,
			Value: v,
		}, nil
	} else if paramT == "" {
		return common.DumpDynamicConf(), nil
	}
	return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "INVALID_ARG: param type should be int/str"}
}

func (s *Server) doStats(w http.ResponseWriter, req *http.Request, ps httprouter.Params) (interface{}, error) {
	return s.GetStats(), nil
}

func (s *Server) doHotCells(w http.ResponseWriter, req *http.Request, ps httprouter.Params) (interface{}, error) {
	reqParams, err := url.ParseQuery(req.URL.RawQuery)
	if err != nil {
		return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "INVALID_REQUEST"}
	}
	n := 10
	if nStr := reqParams.Get("n"); nStr != "" {
		n, err = strconv.Atoi(nStr)
		if err != nil || n <= 0 {
			return nil, common.HttpErr{Code: http.StatusBadRequest, Text: "BAD_ARG_STRING"}
		}
	}
	return struct {
		Precision int                `json:"precision"`
		Cells     []metric.CellCount `json:"cells"`
	}{
		Precision: metric.HotCellPrecision,
		Cells:     metric.HotCells.TopN(n),
	}, nil
}

func (s *Server) doClearHotCells(w http.ResponseWriter, req *http.Request, ps httprouter.Params) (interface{}, error) {
	metric.HotCells.Clear()
	return nil, nil
}

func (s *Server) initHttpHandler() {
	log := common.HttpLog(sLog, common.LOG_INFO)
	debugLog := common.HttpLog(sLog, common.LOG_DEBUG)
	router := httprouter.New()
	router.Handle("GET", common.APIEncode, common.Decorate(s.doEncode, debugLog, s.httpOp("encode"), common.V1))
	router.Handle("GET", common.APIEncodeInt, common.Decorate(s.doEncodeInt, debugLog, s.httpOp("encodeint"), common.V1))
	router.Handle("GET", common.APIDecode+"/:hash", common.Decorate(s.doDecode, debugLog, s.httpOp("decode"), common.V1))
	router.Handle("GET", common.APIDecodeInt+"/:value", common.Decorate(s.doDecodeInt, debugLog, s.httpOp("decodeint"), common.V1))
	router.Handle("GET", common.APIBox+"/:hash", common.Decorate(s.doBox, debugLog, s.httpOp("box"), common.V1))
	router.Handle("GET", common.APIEncodeTagged, common.Decorate(s.doEncodeTagged, debugLog, s.httpOp("tag"), common.V1))
	router.Handle("GET", common.APIDecodeTagged+"/:value", common.Decorate(s.doDecodeTagged, debugLog, s.httpOp("untag"), common.V1))
	router.Handle("POST", common.APIBatchEncode, common.Decorate(s.doBatchEncode, log, s.httpOp("batchencode"), common.V1))

	router.Handle("GET", "/ping", common.Decorate(s.pingHandler, common.PlainText))
	router.Handle("POST", "/loglevel/set", common.Decorate(s.doSetLogLevel, log, common.V1))
	router.Handle("POST", "/slowlog/set", common.Decorate(s.doSetSlowLogLevel, log, common.V1))
	router.Handle("POST", "/conf/set", common.Decorate(s.doSetDynamicConf, log, common.V1))
	router.Handle("GET", "/conf/get", common.Decorate(s.doGetDynamicConf, log, common.V1))
	router.Handle("GET", "/stats", common.Decorate(s.doStats, common.V1))
	router.Handle("GET", "/stats/hotcells", common.Decorate(s.doHotCells, common.V1))
	router.Handle("POST", "/stats/hotcells/clear", common.Decorate(s.doClearHotCells, log, common.V1))
	router.Handler("GET", "/metrics", promhttp.Handler())
	s.router = router
}
