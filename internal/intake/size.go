package intake

import (
	"math"
	"strconv"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders n with binary units, two decimals at most.
//
// The unit is picked with floor(log(n)/log(1024)). Float logarithms can land
// a hair under an exact power of 1024, so the index is nudged back onto the
// right unit and clamped to GB.
func FormatFileSize(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}
	const k = 1024.0
	size := float64(n)
	i := int(math.Floor(math.Log(size) / math.Log(k)))
	if i < len(sizeUnits)-1 && size >= math.Pow(k, float64(i+1)) {
		i++
	}
	if i > 0 && size < math.Pow(k, float64(i)) {
		i--
	}
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	v := math.Round(size/math.Pow(k, float64(i))*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}
