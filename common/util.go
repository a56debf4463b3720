package common

const (
	APIEncode       = "/geohash/encode"
	APIEncodeInt    = "/geohash/encode/int"
	APIDecode       = "/geohash/decode"
	APIDecodeInt    = "/geohash/decodeint"
	APIBox          = "/geohash/box"
	APIBatchEncode  = "/geohash/batch/encode"
	APIEncodeTagged = "/geohash/tagged/encode"
	APIDecodeTagged = "/geohash/tagged/decode"
)
