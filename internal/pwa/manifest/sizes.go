package manifest

import (
	"errors"
	"regexp"
	"strconv"
)

var sizesPattern = regexp.MustCompile(`^(\d+)x(\d+)$`)

var errBadSizes = errors.New("sizes must be WxH with positive 32-bit integers")

// ParseSizes parses "WxH" into its positive integer dimensions. Each
// dimension must fit in 32 bits so that W*H never overflows an int64.
func ParseSizes(s string) (int, int, error) {
	m := sizesPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, errBadSizes
	}
	w, err := strconv.ParseInt(m[1], 10, 32)
	if err != nil {
		return 0, 0, errBadSizes
	}
	h, err := strconv.ParseInt(m[2], 10, 32)
	if err != nil {
		return 0, 0, errBadSizes
	}
	if w <= 0 || h <= 0 {
		return 0, 0, errBadSizes
	}
	return int(w), int(h), nil
}
