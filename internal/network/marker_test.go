package network

import (
	"testing"

	"github.com/David-Antunes/upf-flow/internal/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkerSetAdvanceStaggers(t *testing.T) {
	set := CreateMarkerSet(topology.RadioLink, 0.1, 3)
	set.Advance()
	markers := set.Markers()
	require.Len(t, markers, 3)
	assert.InDelta(t, 0.1, markers[0].Position, 1e-12)
	assert.InDelta(t, 0.11, markers[1].Position, 1e-12)
	assert.InDelta(t, 0.12, markers[2].Position, 1e-12)
	assert.Equal(t, 2, markers[2].Index)
	assert.Equal(t, topology.RadioLink, markers[2].Link)
}

func TestMarkerSetWrapsToZero(t *testing.T) {
	set := CreateMarkerSet(topology.FastPath, 0.25, 1)
	for i := 0; i < 3; i++ {
		set.Advance()
	}
	assert.InDelta(t, 0.75, set.Markers()[0].Position, 1e-12)
	set.Advance()
	assert.Equal(t, 0.0, set.Markers()[0].Position)
}

func TestMarkerSetPositionsStayBelowOne(t *testing.T) {
	for _, speed := range []float64{0, 0.01, 0.03, 0.045, 0.09, 0.5, 0.99, 1, 3} {
		set := CreateMarkerSet(topology.DataNetworkLink, speed, 10)
		for tick := 0; tick < 500; tick++ {
			set.Advance()
			for _, m := range set.Markers() {
				require.GreaterOrEqual(t, m.Position, 0.0)
				require.Less(t, m.Position, 1.0, "speed %v tick %d marker %d", speed, tick, m.Index)
			}
		}
	}
}

func TestMarkerSetZeroSpeedFreezes(t *testing.T) {
	set := CreateMarkerSet(topology.RadioLink, 0, 2)
	set.Advance()
	set.Advance()
	for _, m := range set.Markers() {
		assert.Equal(t, 0.0, m.Position)
	}
}

func TestMarkerSetResize(t *testing.T) {
	set := CreateMarkerSet(topology.RadioLink, 0.1, 4)
	set.Advance()
	set.Resize(2)
	assert.Equal(t, 2, set.Len())
	assert.InDelta(t, 0.11, set.Markers()[1].Position, 1e-12)

	set.Resize(3)
	assert.Equal(t, 3, set.Len())
	assert.Equal(t, 0.0, set.Markers()[2].Position)

	set.Resize(-1)
	assert.Equal(t, 0, set.Len())
	assert.Equal(t, 0, CreateMarkerSet(topology.RadioLink, 0.1, -5).Len())
}
