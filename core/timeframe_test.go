package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeframe_IsValid(t *testing.T) {
	for _, tf := range Timeframes() {
		assert.True(t, tf.IsValid(), "timeframe %s should be valid", tf)
	}
	assert.False(t, Timeframe("2h").IsValid())
	assert.False(t, Timeframe("").IsValid())
}

func TestTimeframes_Order(t *testing.T) {
	tfs := Timeframes()
	assert.Equal(t, Timeframe5m, tfs[0])
	assert.Equal(t, TimeframeAlways, tfs[len(tfs)-1])
	assert.Len(t, tfs, 11)
}

func TestProfileWindow_IsValid(t *testing.T) {
	assert.True(t, ProfileWindowDay.IsValid())
	assert.True(t, ProfileWindowWeek.IsValid())
	assert.True(t, ProfileWindowMonth.IsValid())
	assert.False(t, ProfileWindow("hour").IsValid())
}
