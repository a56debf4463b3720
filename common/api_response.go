package common

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
)

type Decorator func(APIHandler) APIHandler

type APIHandler func(http.ResponseWriter, *http.Request, httprouter.Params) (interface{}, error)

type HttpErr struct {
	Code int
	Text string
}

func (e HttpErr) Error() string {
	return e.Text
}

func errCode(err error) int {
	if e, ok := err.(HttpErr); ok {
		return e.Code
	}
	return http.StatusInternalServerError
}

func PlainText(f APIHandler) APIHandler {
	return func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) (interface{}, error) {
		code := 200
		data, err := f(w, req, ps)
		if err != nil {
			code = errCode(err)
			data = err.Error()
		}
		switch d := data.(type) {
		case string:
			w.WriteHeader(code)
			io.WriteString(w, d)
		case []byte:
			w.WriteHeader(code)
			w.Write(d)
		default:
			panic(fmt.Sprintf("unknown response type %T", data))
		}
		return nil, nil
	}
}

func V1(f APIHandler) APIHandler {
	return func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) (interface{}, error) {
		data, err := f(w, req, ps)
		if err != nil {
			RespondV1(w, errCode(err), err)
			return nil, nil
		}
		RespondV1(w, 200, data)
		return nil, nil
	}
}

func RespondV1(w http.ResponseWriter, code int, data interface{}) {
	var response []byte
	var err error
	isJSON := true

	if code == 200 {
		switch d := data.(type) {
		case string:
			response = []byte(d)
			isJSON = false
		case []byte:
			// already encoded json
			response = d
		case nil:
			response = []byte{}
			isJSON = false
		default:
			response, err = json.Marshal(data)
			if err != nil {
				code = 500
				data = err
			}
		}
	}

	if code != 200 {
		response, _ = json.Marshal(map[string]string{"message": fmt.Sprintf("%s", data)})
	}

	if isJSON {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	}
	w.WriteHeader(code)
	w.Write(response)
}

func Decorate(f APIHandler, ds ...Decorator) httprouter.Handle {
	decorated := f
	for _, decorate := range ds {
		decorated = decorate(decorated)
	}
	return func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		decorated(w, req, ps)
	}
}

// HttpLog logs failed requests, and successful ones when the logger level reaches level.
// List it before V1 in Decorate so it wraps the handler and sees its error.
func HttpLog(log *LevelLogger, level int32) Decorator {
	return func(f APIHandler) APIHandler {
		return func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) (interface{}, error) {
			start := time.Now()
			response, err := f(w, req, ps)
			elapsed := time.Since(start)
			status := 200
			if err != nil {
				status = errCode(err)
			}
			if log == nil || log.Logger == nil {
				return response, err
			}
			if status != 200 || log.Level() >= level {
				log.Logger.Output(2, fmt.Sprintf("%d %s %s (%s) %s",
					status, req.Method, req.URL.RequestURI(), req.RemoteAddr, elapsed))
			}
			return response, err
		}
	}
}
