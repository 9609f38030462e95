package attrs_test

import (
	"testing"
	"time"

	"github.com/brandontheis/oio-sds/internal/attrs"
	"github.com/stretchr/testify/assert"
)

func TestTimestampNormal(t *testing.T) {
	assert.Equal(t, "0000000000.00000", attrs.Timestamp(0).Normal())
	assert.Equal(t, "0000000042.00000", attrs.Timestamp(42).Normal())
	assert.Equal(t, "1451606400.50000", attrs.Timestamp(1451606400.5).Normal())
}

func TestParseTimestamp(t *testing.T) {
	ts, err := attrs.ParseTimestamp("0000001337.25000")
	assert.NoError(t, err)
	assert.Equal(t, attrs.Timestamp(1337.25), ts)

	_, err = attrs.ParseTimestamp("not-a-timestamp")
	assert.Error(t, err)
}

func TestTimestampTime(t *testing.T) {
	ts := attrs.Timestamp(1451606400.5)
	assert.Equal(t, time.Unix(1451606400, 0).Add(500*time.Millisecond).UTC(), ts.Time().UTC())
}

func TestNowRoundTrip(t *testing.T) {
	now := attrs.Now()

	ts, err := attrs.ParseTimestamp(now.Normal())
	assert.NoError(t, err)
	assert.InDelta(t, float64(now), float64(ts), 1e-5)
}
