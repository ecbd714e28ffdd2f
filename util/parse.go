package util

import (
	"fmt"
	"strconv"
	"strings"
)

// sizeUnits are binary multipliers, longest suffix first so "KB" wins
// over "B".
var sizeUnits = []struct {
	suffix string
	bytes  int64
}{
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"B", 1},
}

// ParseSize parses a byte size such as "32MB", "512kb" or "1024". Units are
// binary; a bare number is bytes. Sizes must be positive.
func ParseSize(s string) (int64, error) {
	num := strings.ToUpper(strings.TrimSpace(s))
	multiplier := int64(1)
	for _, u := range sizeUnits {
		if strings.HasSuffix(num, u.suffix) {
			num, multiplier = strings.TrimSpace(strings.TrimSuffix(num, u.suffix)), u.bytes
			break
		}
	}
	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	if n <= 0 || n > (1<<63-1)/multiplier {
		return 0, fmt.Errorf("size %q out of range", s)
	}
	return n * multiplier, nil
}
