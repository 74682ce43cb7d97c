package mockphot

import (
	"errors"
	"math"
	"testing"
)

func TestColorsAntisymmetry(t *testing.T) {
	filters := []string{"u", "g", "r"}
	mags := []float64{21.5, 22.25, 20}

	cm, err := Colors(filters, mags)
	if err != nil {
		t.Fatalf("Colors: %v", err)
	}

	for i := range mags {
		if cm.M[i][i] != 0 {
			t.Errorf("M[%d][%d] = %g, want 0", i, i, cm.M[i][i])
		}
		for j := range mags {
			if cm.M[i][j] != -cm.M[j][i] {
				t.Errorf("M[%d][%d] = %g, M[%d][%d] = %g: not antisymmetric",
					i, j, cm.M[i][j], j, i, cm.M[j][i])
			}
		}
	}

	if got := cm.M[0][2]; got != 1.5 {
		t.Errorf("u-r = %g, want 1.5", got)
	}
}

func TestColorsNaNPropagation(t *testing.T) {
	cm, err := Colors([]string{"u", "g", "r"}, []float64{21, math.NaN(), 22})
	if err != nil {
		t.Fatalf("Colors: %v", err)
	}

	for k := range cm.M {
		if !math.IsNaN(cm.M[1][k]) {
			t.Errorf("M[1][%d] = %g, want NaN", k, cm.M[1][k])
		}
		if !math.IsNaN(cm.M[k][1]) {
			t.Errorf("M[%d][1] = %g, want NaN", k, cm.M[k][1])
		}
	}

	if cm.M[0][2] != -1 || cm.M[2][0] != 1 {
		t.Errorf("defined cells = %g, %g, want -1, 1", cm.M[0][2], cm.M[2][0])
	}
}

func TestColorsErrors(t *testing.T) {
	if _, err := Colors(nil, nil); !errors.Is(err, ErrNoFilters) {
		t.Errorf("no filters err = %v, want ErrNoFilters", err)
	}
	if _, err := Colors([]string{"u", "g"}, []float64{21}); err == nil {
		t.Error("length mismatch accepted")
	}
}

func TestColorMatrixTable(t *testing.T) {
	cm, err := Colors([]string{"g", "r"}, []float64{22, 21.5})
	if err != nil {
		t.Fatalf("Colors: %v", err)
	}
	cm.Z = 0.35

	tab := cm.Table()
	if len(tab.Columns) != 2 || tab.Columns[0].Name != "g" || tab.Columns[1].Name != "r" {
		t.Fatalf("columns = %v, want [g r]", tab.Columns)
	}
	if tab.NumRows() != 2 {
		t.Fatalf("rows = %d, want 2", tab.NumRows())
	}

	// Data is column-major: column r, row g holds M[0][1] = g - r.
	if got := tab.Data[1][0]; got != 0.5 {
		t.Errorf("g-r cell = %g, want 0.5", got)
	}
	if got := tab.Data[0][1]; got != -0.5 {
		t.Errorf("r-g cell = %g, want -0.5", got)
	}

	if len(tab.Comments) == 0 || tab.Comments[0] != "colors at z 0.35" {
		t.Errorf("comments = %v", tab.Comments)
	}
}
