package models

import (
	"math"
	"strconv"
	"strings"
)

// Count is a numeric leaf value that survives malformed input. JSON numbers,
// numeric strings, null, and garbage all decode to a finite float64; anything
// non-finite becomes 0 so NaN never propagates into sums.
type Count float64

func (c *Count) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*c = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*c = 0
		return nil
	}
	*c = Count(v)
	return nil
}

// Int returns the count as an integer for aggregation.
func (c Count) Int() int {
	return int(c)
}
