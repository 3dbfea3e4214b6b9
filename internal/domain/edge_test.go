package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrafficLevelOrder(t *testing.T) {
	assert.Less(t, TrafficLow, TrafficMedium)
	assert.Less(t, TrafficMedium, TrafficHigh)
	assert.Less(t, TrafficHigh, TrafficCritical)
}

func TestParseTrafficLevel(t *testing.T) {
	for _, l := range []TrafficLevel{TrafficLow, TrafficMedium, TrafficHigh, TrafficCritical} {
		got, err := ParseTrafficLevel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}

	got, err := ParseTrafficLevel(" HIGH ")
	require.NoError(t, err)
	assert.Equal(t, TrafficHigh, got)

	got, err = ParseTrafficLevel("")
	require.NoError(t, err)
	assert.Equal(t, TrafficLow, got)

	_, err = ParseTrafficLevel("gridlock")
	assert.Error(t, err)
}

func TestTrafficLevelJSON(t *testing.T) {
	b, err := json.Marshal(struct{ Level TrafficLevel }{TrafficCritical})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Level":"critical"}`, string(b))

	var v struct{ Level TrafficLevel }
	require.NoError(t, json.Unmarshal([]byte(`{"Level":"medium"}`), &v))
	assert.Equal(t, TrafficMedium, v.Level)
}

func TestHaversineKm(t *testing.T) {
	a := Coordinates{Lat: 33.4484, Lon: -112.0740}

	assert.Zero(t, a.HaversineKm(a))
	assert.InDelta(t, 111.19, Coordinates{}.HaversineKm(Coordinates{Lat: 1}), 0.05)

	b := Coordinates{Lat: 33.4518, Lon: -112.0650}
	assert.InDelta(t, a.HaversineKm(b), b.HaversineKm(a), 1e-12)
}
