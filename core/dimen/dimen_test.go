package dimen

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseLength(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.core")
	defer teardown()
	//
	d, u, err := ParseLength("12px")
	if err != nil {
		t.Errorf("(1) %s", err.Error())
	} else if d != 12 || u != PX {
		t.Errorf("(1) expected d to be 12px, is %g/%d", d, u)
	}
	//
	d, _, err = ParseLength("0")
	if err != nil {
		t.Errorf("(2) %s", err.Error())
	} else if d != 0 {
		t.Errorf("(2) expected d to be 0, is %g", d)
	}
	//
	d, u, err = ParseLength("20%")
	if err != nil {
		t.Errorf("(3) %s", err.Error())
	} else if u != Percent || d < 0.199 || d > 0.201 {
		t.Errorf("(3) expected 0.2 percent, is %g/%d", d, u)
	}
	//
	_, u, err = ParseLength("auto")
	if err != nil || u != Auto {
		t.Errorf("(4) expected auto, is %d (%v)", u, err)
	}
	//
	if _, _, err = ParseLength("12em"); err == nil {
		t.Errorf("(5) expected error for unit 'em'")
	}
}

func TestAxis(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.core")
	defer teardown()
	//
	v := Along(Y, 3, 4)
	if v.X != 4 || v.Y != 3 {
		t.Errorf("expected main axis Y to be transposed, is %v", v)
	}
	if v.At(X.Cross()) != 3 {
		t.Errorf("expected cross of X to be Y")
	}
	if w := v.With(X, 10); w.X != 10 || w.Y != 3 {
		t.Errorf("expected (10,3), is %v", w)
	}
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 {
		t.Errorf("clamp out of bounds")
	}
}
