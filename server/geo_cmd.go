package server

import (
	"strconv"

	"github.com/absolute8511/redcon"
	"github.com/youzan/ZanGeoHash/common/geohash"
	"github.com/youzan/ZanGeoHash/metric"
)

func (s *Server) registerHandler() {
	s.cmdRouter.Register("geohashenc", s.geohashEncCommand)
	s.cmdRouter.Register("geohashencint", s.geohashEncIntCommand)
	s.cmdRouter.Register("geohashdec", s.geohashDecCommand)
	s.cmdRouter.Register("geohashdecint", s.geohashDecIntCommand)
	s.cmdRouter.Register("geohashtag", s.geohashTagCommand)
	s.cmdRouter.Register("geohashuntag", s.geohashUntagCommand)
	s.cmdRouter.Register("geohashbox", s.geohashBoxCommand)
}

func wrongArgs(conn redcon.Conn, cmd redcon.Command) {
	conn.WriteError("ERR wrong number of arguments for '" + string(cmd.Args[0]) + "' command")
}

func (s *Server) writeCodecError(conn redcon.Conn, op string, err error) {
	s.onCodecError(op, err)
	conn.WriteError("ERR " + err.Error())
}

/* usage:
GEOHASHENC lat lng [precision]
*/
func (s *Server) geohashEncCommand(conn redcon.Conn, cmd redcon.Command) {
	if len(cmd.Args) != 3 && len(cmd.Args) != 4 {
		wrongArgs(conn, cmd)
		return
	}
	lat, lng, precision, err := parseCoordArgs(cmd.Args[1:])
	if err != nil {
		s.writeCodecError(conn, "geohashenc", err)
		return
	}
	hash, err := geohash.EncodeToString(lat, lng, precision)
	if err != nil {
		s.writeCodecError(conn, "geohashenc", err)
		return
	}
	metric.HotCells.Hit(hash)
	conn.WriteBulkString(hash)
}

/* usage:
GEOHASHENCINT lat lng [precision]
*/
func (s *Server) geohashEncIntCommand(conn redcon.Conn, cmd redcon.Command) {
	if len(cmd.Args) != 3 && len(cmd.Args) != 4 {
		wrongArgs(conn, cmd)
		return
	}
	lat, lng, precision, err := parseCoordArgs(cmd.Args[1:])
	if err != nil {
		s.writeCodecError(conn, "geohashencint", err)
		return
	}
	v, err := geohash.EncodeToInteger(lat, lng, precision)
	if err != nil {
		s.writeCodecError(conn, "geohashencint", err)
		return
	}
	// at most 60 bits, never negative as int64
	conn.WriteInt64(int64(v))
}

/* usage:
GEOHASHDEC hash [precision]
reply: [lat, lng]
*/
func (s *Server) geohashDecCommand(conn redcon.Conn, cmd redcon.Command) {
	if len(cmd.Args) != 2 && len(cmd.Args) != 3 {
		wrongArgs(conn, cmd)
		return
	}
	input := string(cmd.Args[1])
	var lat, lng float64
	var err error
	if len(cmd.Args) == 3 {
		var precision int
		precision, err = parsePrecisionArg(string(cmd.Args[2]), len(input))
		if err == nil {
			lat, lng, err = geohash.DecodeFromStringWithPrecision(input, precision)
		}
	} else {
		lat, lng, err = geohash.DecodeFromString(input)
	}
	if err != nil {
		s.writeCodecError(conn, "geohashdec", err)
		return
	}
	metric.HotCells.Hit(input)
	conn.WriteArray(2)
	conn.WriteBulkString(formatFloat(lat))
	conn.WriteBulkString(formatFloat(lng))
}

/* usage:
GEOHASHDECINT value
the precision is the low 4 bits of value
*/
func (s *Server) geohashDecIntCommand(conn redcon.Conn, cmd redcon.Command) {
	if len(cmd.Args) != 2 {
		wrongArgs(conn, cmd)
		return
	}
	v, err := parseUintArg("value", string(cmd.Args[1]))
	if err != nil {
		s.writeCodecError(conn, "geohashdecint", err)
		return
	}
	hash, err := geohash.DecodeStringFromInteger(v)
	if err != nil {
		s.writeCodecError(conn, "geohashdecint", err)
		return
	}
	conn.WriteBulkString(hash)
}

/* usage:
GEOHASHTAG lat lng [precision]
the tagged value may use all 64 bits so it is returned as a bulk string
*/
func (s *Server) geohashTagCommand(conn redcon.Conn, cmd redcon.Command) {
	if len(cmd.Args) != 3 && len(cmd.Args) != 4 {
		wrongArgs(conn, cmd)
		return
	}
	lat, lng, precision, err := parseCoordArgs(cmd.Args[1:])
	if err != nil {
		s.writeCodecError(conn, "geohashtag", err)
		return
	}
	v, err := geohash.EncodeTagged(lat, lng, precision)
	if err != nil {
		s.writeCodecError(conn, "geohashtag", err)
		return
	}
	conn.WriteBulkString(strconv.FormatUint(v, 10))
}

/* usage:
GEOHASHUNTAG value
*/
func (s *Server) geohashUntagCommand(conn redcon.Conn, cmd redcon.Command) {
	if len(cmd.Args) != 2 {
		wrongArgs(conn, cmd)
		return
	}
	v, err := parseUintArg("value", string(cmd.Args[1]))
	if err != nil {
		s.writeCodecError(conn, "geohashuntag", err)
		return
	}
	hash, err := geohash.DecodeTagged(v)
	if err != nil {
		s.writeCodecError(conn, "geohashuntag", err)
		return
	}
	conn.WriteBulkString(hash)
}

/* usage:
GEOHASHBOX hash
reply: [min_lat, min_lng, max_lat, max_lng]
*/
func (s *Server) geohashBoxCommand(conn redcon.Conn, cmd redcon.Command) {
	if len(cmd.Args) != 2 {
		wrongArgs(conn, cmd)
		return
	}
	area, err := geohash.DecodeArea(string(cmd.Args[1]))
	if err != nil {
		s.writeCodecError(conn, "geohashbox", err)
		return
	}
	conn.WriteArray(4)
	conn.WriteBulkString(formatFloat(area.Latitude.Min))
	conn.WriteBulkString(formatFloat(area.Longitude.Min))
	conn.WriteBulkString(formatFloat(area.Latitude.Max))
	conn.WriteBulkString(formatFloat(area.Longitude.Max))
}
