package seed

import (
	"os"
	"path/filepath"
	"testing"
	"traffic-route-service/internal/domain"
	"traffic-route-service/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "network.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFileAppliesDefaultsAndTraffic(t *testing.T) {
	path := writeSeed(t, `{
		"intersections": [
			{"id": 1, "name": " North ", "lat": 1, "lng": 2},
			{"id": 2, "name": "South", "lat": 3, "lng": 4, "capacity": 40}
		],
		"roads": [
			{"id": 10, "from": 1, "to": 2, "distance_km": 2, "current_traffic": 40}
		]
	}`)

	nodes, roads, err := LoadFile(path)
	require.NoError(t, err)

	require.Len(t, nodes, 2)
	assert.Equal(t, "North", nodes[0].Name)
	assert.Equal(t, 100, nodes[0].Capacity)
	assert.Equal(t, domain.Coordinates{Lat: 1, Lon: 2}, nodes[0].Coordinates)
	assert.Equal(t, 40, nodes[1].Capacity)

	require.Len(t, roads, 1)
	assert.Equal(t, 50, roads[0].Capacity)
	assert.Equal(t, 40, roads[0].CurrentTraffic)
	assert.Equal(t, domain.TrafficHigh, roads[0].TrafficLevel)
	assert.InDelta(t, 2*2*(1+2*0.8), roads[0].TravelTime, 1e-9)
}

func TestLoadFileRejectsInvalidRecords(t *testing.T) {
	tests := map[string]string{
		"bad id":       `{"intersections": [{"id": 0, "name": "x"}]}`,
		"empty name":   `{"intersections": [{"id": 1, "name": "  "}]}`,
		"road id":      `{"roads": [{"id": -1, "from": 1, "to": 2}]}`,
		"negative km":  `{"roads": [{"id": 1, "from": 1, "to": 2, "distance_km": -3}]}`,
		"invalid json": `{"intersections": [`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := LoadFile(writeSeed(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestBundledSeedBuildsAGraph(t *testing.T) {
	nodes, roads, err := LoadFile(filepath.Join("..", "..", "..", "data", "seeds", "network.json"))
	require.NoError(t, err)

	g, err := services.NewGraph(nodes, roads)
	require.NoError(t, err)
	assert.Equal(t, len(nodes), g.Size())
}
