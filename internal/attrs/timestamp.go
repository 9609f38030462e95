package attrs

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// A Timestamp is a point in time counted in float seconds since the epoch,
// rendered with the fixed width and precision used by the metadata services.
type Timestamp float64

// Now returns the current time as a Timestamp.
func Now() Timestamp {
	return Timestamp(float64(time.Now().UnixNano()) / float64(time.Second))
}

// ParseTimestamp parses the textual form of a Timestamp.
func ParseTimestamp(s string) (Timestamp, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "malformed timestamp %q", s)
	}
	return Timestamp(f), nil
}

// Normal returns the canonical zero-padded form, e.g. "0000000042.00000".
func (t Timestamp) Normal() string {
	return fmt.Sprintf("%016.5f", float64(t))
}

// Time converts the Timestamp to the standard representation.
func (t Timestamp) Time() time.Time {
	sec := int64(t)
	nsec := int64((float64(t) - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec)
}
