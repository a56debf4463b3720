package main

import (
	"flag"
	"fmt"
	"math/rand"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/absolute8511/redigo/redis"
	"github.com/youzan/ZanGeoHash/common/geohash"
)

var ip = flag.String("ip", "127.0.0.1", "geohashd redis api ip")
var port = flag.Int("port", 18102, "geohashd redis api port")
var number = flag.Int("n", 1000, "request number")
var clients = flag.Int("c", 50, "number of clients")
var round = flag.Int("r", 1, "benchmark round number")
var precision = flag.Int("p", 12, "geohash precision used by the requests")
var tests = flag.String("t", "enc,encint,dec,decint,tag,untag,box", "only run the comma separated list of tests, local runs the codec in process")
var pointCnt = flag.Int("pn", 10000, "distinct random points to cycle through")
var wg sync.WaitGroup

var loop int
var latencyDistribute []int64
var points []geohash.Point
var pointBase int64

func init() {
	latencyDistribute = make([]int64, 32)
}

func resetLatency() {
	for i := range latencyDistribute {
		atomic.StoreInt64(&latencyDistribute[i], 0)
	}
}

func genPoints(n int) []geohash.Point {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	pts := make([]geohash.Point, n)
	for i := range pts {
		pts[i].Latitude = r.Float64()*180 - 90
		pts[i].Longitude = r.Float64()*360 - 180
	}
	return pts
}

func nextPoint() geohash.Point {
	n := atomic.AddInt64(&pointBase, 1)
	return points[n%int64(len(points))]
}

func recordLatency(cost int64) {
	// in us, the codec answers well below a millisecond
	index := cost / 1000
	if index < 100 {
		index = index / 10
	} else if index < 1000 {
		index = 9 + index/100
	} else if index < 10000 {
		index = 19 + index/1000
	} else {
		index = 29
	}
	atomic.AddInt64(&latencyDistribute[index], 1)
}

func waitBench(c redis.Conn, cmd string, args ...interface{}) (interface{}, error) {
	s := time.Now()
	rsp, err := c.Do(strings.ToUpper(cmd), args...)
	if err != nil {
		fmt.Printf("do %s error %s\n", cmd, err.Error())
		return nil, err
	}
	recordLatency(time.Since(s).Nanoseconds())
	return rsp, nil
}

func report(cmd string, d time.Duration, errCnt int64) {
	fmt.Printf("%s: %s %0.3f micros/op, %0.2fop/s, err: %v, num:%v\n",
		cmd,
		d.String(),
		float64(d.Nanoseconds()/1e3)/float64(*number),
		float64(*number)/d.Seconds(),
		errCnt,
		*number,
	)
	for i, v := range latencyDistribute {
		if i == 0 {
			fmt.Printf("latency below 100us\n")
		} else if i == 10 {
			fmt.Printf("latency between 100us ~ 999us\n")
		} else if i == 20 {
			fmt.Printf("latency above 1ms\n")
		}
		fmt.Printf("latency interval %d: %v\n", i, v)
	}
}

func bench(cmd string, f func(c redis.Conn, cindex int, loopIter int) error) {
	resetLatency()
	wg.Add(*clients)

	addr := fmt.Sprintf("%s:%d", *ip, *port)
	errCnt := int64(0)
	t1 := time.Now()
	for i := 0; i < *clients; i++ {
		go func(clientIndex int) {
			defer wg.Done()
			c, err := redis.Dial("tcp", addr, redis.DialConnectTimeout(time.Second*3),
				redis.DialReadTimeout(time.Second),
				redis.DialWriteTimeout(time.Second),
			)
			if err != nil {
				fmt.Printf("failed to dial: %v\n", err.Error())
				atomic.AddInt64(&errCnt, int64(loop))
				return
			}
			for j := 0; j < loop; j++ {
				err = f(c, clientIndex, j)
				if err != nil {
					atomic.AddInt64(&errCnt, 1)
				}
			}
			c.Close()
		}(i)
	}
	wg.Wait()
	report(cmd, time.Since(t1), atomic.LoadInt64(&errCnt))
}

// benchLocal runs the codec in process to show the cost without the network.
func benchLocal() {
	resetLatency()
	wg.Add(*clients)
	errCnt := int64(0)
	t1 := time.Now()
	for i := 0; i < *clients; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < loop; j++ {
				pt := nextPoint()
				s := time.Now()
				hash, err := geohash.EncodeToString(pt.Latitude, pt.Longitude, *precision)
				if err == nil {
					_, _, err = geohash.DecodeFromString(hash)
				}
				if err != nil {
					atomic.AddInt64(&errCnt, 1)
					continue
				}
				recordLatency(time.Since(s).Nanoseconds())
			}
		}()
	}
	wg.Wait()
	report("local", time.Since(t1), atomic.LoadInt64(&errCnt))
}

func benchEnc() {
	f := func(c redis.Conn, cindex int, loopi int) error {
		pt := nextPoint()
		_, err := waitBench(c, "GEOHASHENC", pt.Latitude, pt.Longitude, *precision)
		return err
	}
	bench("geohashenc", f)
}

func benchEncInt() {
	f := func(c redis.Conn, cindex int, loopi int) error {
		pt := nextPoint()
		_, err := waitBench(c, "GEOHASHENCINT", pt.Latitude, pt.Longitude, *precision)
		return err
	}
	bench("geohashencint", f)
}

func benchDec() {
	f := func(c redis.Conn, cindex int, loopi int) error {
		pt := nextPoint()
		hash, err := geohash.EncodeToString(pt.Latitude, pt.Longitude, *precision)
		if err != nil {
			return err
		}
		_, err = waitBench(c, "GEOHASHDEC", hash)
		return err
	}
	bench("geohashdec", f)
}

func benchDecInt() {
	f := func(c redis.Conn, cindex int, loopi int) error {
		pt := nextPoint()
		v, err := geohash.EncodeToInteger(pt.Latitude, pt.Longitude, *precision)
		if err != nil {
			return err
		}
		// the server reads the precision from the low nibble
		tagged := uint64(v)&^0xf | uint64(*precision)
		_, err = waitBench(c, "GEOHASHDECINT", strconv.FormatUint(tagged, 10))
		return err
	}
	bench("geohashdecint", f)
}

func benchTag() {
	f := func(c redis.Conn, cindex int, loopi int) error {
		pt := nextPoint()
		_, err := waitBench(c, "GEOHASHTAG", pt.Latitude, pt.Longitude, *precision)
		return err
	}
	bench("geohashtag", f)
}

func benchUntag() {
	f := func(c redis.Conn, cindex int, loopi int) error {
		pt := nextPoint()
		v, err := geohash.EncodeTagged(pt.Latitude, pt.Longitude, *precision)
		if err != nil {
			return err
		}
		rsp, err := redis.String(waitBench(c, "GEOHASHUNTAG", strconv.FormatUint(v, 10)))
		if err != nil {
			return err
		}
		if len(rsp) != *precision {
			return fmt.Errorf("unexpected untag reply %v", rsp)
		}
		return nil
	}
	bench("geohashuntag", f)
}

func benchBox() {
	f := func(c redis.Conn, cindex int, loopi int) error {
		pt := nextPoint()
		hash, err := geohash.EncodeToString(pt.Latitude, pt.Longitude, *precision)
		if err != nil {
			return err
		}
		_, err = waitBench(c, "GEOHASHBOX", hash)
		return err
	}
	bench("geohashbox", f)
}

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	flag.Parse()

	if *number <= 0 {
		panic("invalid number")
	}

	if *clients <= 0 || *number < *clients {
		panic("invalid client number")
	}
	if *precision < geohash.MinPrecision || *precision > geohash.MaxPrecision {
		panic("invalid precision")
	}
	if *pointCnt <= 0 {
		panic("invalid point count")
	}

	loop = *number / *clients
	if *round <= 0 {
		*round = 1
	}
	points = genPoints(*pointCnt)

	ts := strings.Split(*tests, ",")

	for i := 0; i < *round; i++ {
		for _, s := range ts {
			switch strings.ToLower(s) {
			case "enc":
				benchEnc()
			case "encint":
				benchEncInt()
			case "dec":
				benchDec()
			case "decint":
				benchDecInt()
			case "tag":
				benchTag()
			case "untag":
				benchUntag()
			case "box":
				benchBox()
			case "local":
				benchLocal()
			}
		}

		println("")
	}
}
