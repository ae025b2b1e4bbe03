// Package units converts between byte sizes and their human-readable forms.
package units

import (
	"math"
	"strings"

	"github.com/docker/go-units"
	"github.com/pkg/errors"
)

// ToByteSizeString returns a string that represents the size defined by
// international standard IEC 80000-13.
func ToByteSizeString(size float64) string {
	return units.BytesSize(size)
}

// FromByteSizeString parses the argument sizeString representing byte size and
// returns the number of bytes or -1 if the sizeString cannot be parsable.
// Sizes with binary prefixes such as "32KiB" are multiples of 1024, and the
// others such as "32KB" are multiples of 1000. The optional minMax bounds the
// result inclusively.
func FromByteSizeString(sizeString string, minMax ...int64) (size int64, err error) {
	sep := strings.LastIndexAny(sizeString, "01234567890. ")
	if sep == -1 {
		return -1, errors.Errorf("invalid size: '%s'", sizeString)
	}

	sfx := sizeString[sep+1:]
	if strings.ContainsAny(sfx, "i") {
		size, err = units.RAMInBytes(sizeString)
	} else {
		size, err = units.FromHumanSize(sizeString)
	}
	if err != nil {
		return -1, errors.WithStack(err)
	}

	min, max := int64(0), int64(math.MaxInt64)
	if len(minMax) > 0 {
		min = minMax[0]
	}
	if len(minMax) > 1 {
		max = minMax[1]
	}
	if size < min || size > max {
		return -1, errors.Errorf("invalid size %s: out of range [%d, %d]", sizeString, min, max)
	}
	return size, nil
}
