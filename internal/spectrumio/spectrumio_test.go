package spectrumio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-resonance/dsp/series"
	"github.com/cwbudde/algo-resonance/measure/boundary"
)

func TestReadSeries(t *testing.T) {
	in := `# energy  xs
1.5, 10

0.5	20
# trailing comment
2.5 30 extra
`

	s, err := ReadSeries(strings.NewReader(in), series.DomainEnergy)
	if err != nil {
		t.Fatal(err)
	}

	want := []series.Point{{X: 0.5, Y: 20}, {X: 1.5, Y: 10}, {X: 2.5, Y: 30}}
	got := s.Points()

	if len(got) != len(want) {
		t.Fatalf("points = %v", got)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestReadSeriesErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{name: "single column", in: "1\n", wantErr: ErrMalformedRow},
		{name: "not a number", in: "1 abc\n", wantErr: ErrMalformedRow},
		{name: "duplicate x", in: "1 2\n1 3\n", wantErr: series.ErrNotAscending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadSeries(strings.NewReader(tt.in), series.DomainEnergy); !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLimitsRoundTripFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.txt")
	limits := []boundary.Limit{{Left: 60, Right: 140}, {Left: 1.25e-3, Right: 2.5e-3}}

	if err := WriteLimitsFile(path, limits); err != nil {
		t.Fatal(err)
	}

	got, err := ReadLimitsFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != len(limits) {
		t.Fatalf("limits = %v", got)
	}

	for i := range limits {
		if got[i] != limits[i] {
			t.Fatalf("limit %d = %v, want %v", i, got[i], limits[i])
		}
	}
}

func TestReadLimitsFileMissing(t *testing.T) {
	_, err := ReadLimitsFile(filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}

func TestWriteSeriesReadable(t *testing.T) {
	s, err := series.New([]float64{1, 2}, []float64{0.25, -3}, series.DomainTOF)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteSeries(&buf, s); err != nil {
		t.Fatal(err)
	}

	back, err := ReadSeries(&buf, series.DomainTOF)
	if err != nil {
		t.Fatal(err)
	}

	if back.Len() != 2 || back.Y()[1] != -3 {
		t.Fatalf("read back %v", back.Points())
	}
}
