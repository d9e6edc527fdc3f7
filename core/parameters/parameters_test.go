package parameters

import (
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestRegisterGroups(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.core")
	defer teardown()
	//
	regs := NewRegisters()
	assert.Equal(t, 200*time.Millisecond, regs.T(P_MAXTICKSPAN))
	regs.Begingroup()
	regs.Push(P_MAXLAYOUTPASSES, 2)
	assert.Equal(t, 2, regs.N(P_MAXLAYOUTPASSES))
	regs.Begingroup()
	regs.Push(P_BEZIEREPSILON, 0.5)
	assert.Equal(t, 2, regs.N(P_MAXLAYOUTPASSES), "outer group value visible in inner group")
	regs.Endgroup()
	assert.Equal(t, 1e-3, regs.F(P_BEZIEREPSILON))
	regs.Endgroup()
	assert.Equal(t, 8, regs.N(P_MAXLAYOUTPASSES))
}

func TestLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.core")
	defer teardown()
	//
	p, ok := Lookup("maxtickspan")
	assert.True(t, ok)
	assert.Equal(t, P_MAXTICKSPAN, p)
	_, ok = Lookup("none")
	assert.False(t, ok)
}
