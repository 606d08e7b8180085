package observed_test

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/DriesNicolaes/ComboCode/internal/observed"
	"github.com/DriesNicolaes/ComboCode/internal/testsupport"
)

func TestReadProfileWithHint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rdor_12C16O21_APEX.dat")
	testsupport.WriteObservedProfile(t, path,
		[]float64{-10, -5, 0, 5, 10},
		[]float64{0, 0.5, 1, 0.5, 0},
		7.25, true)

	p, err := observed.Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(p.Velocity) != 5 || p.Flux[2] != 1 {
		t.Fatalf("unexpected samples %v %v", p.Velocity, p.Flux)
	}
	if !p.HasVLSRHint || p.VLSRHint != 7.25 {
		t.Fatalf("header hint not read: %v %v", p.HasVLSRHint, p.VLSRHint)
	}
}

func TestReadProfileWithoutHint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.dat")
	testsupport.WriteObservedProfile(t, path,
		[]float64{-1, 0, 1}, []float64{0, 1, 0}, 0, false)

	p, err := observed.Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if p.HasVLSRHint {
		t.Fatal("unexpected header hint")
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := observed.Read(filepath.Join(t.TempDir(), "absent.dat"))
	if !errors.Is(err, observed.ErrUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestReadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dat")
	testsupport.WriteLines(t, path, "# header only")

	if _, err := observed.Read(path); !errors.Is(err, observed.ErrUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestNoiseFromWings(t *testing.T) {
	var vel, flux []float64
	sign := 1.0
	for v := -20.0; v <= 20.0; v += 1.0 {
		f := 0.0
		if math.Abs(v) <= 5 {
			f = 1.0
		} else {
			f = sign * 0.02
			sign = -sign
		}
		vel = append(vel, v)
		flux = append(flux, f)
	}
	p := &observed.Profile{Velocity: vel, Flux: flux}

	noise := p.Noise(0, 5)
	if math.Abs(noise-0.02) > 1e-9 {
		t.Fatalf("unexpected wing noise %g", noise)
	}
}

func TestNoiseFallsBackToFullProfile(t *testing.T) {
	p := &observed.Profile{
		Velocity: []float64{-1, 0, 1},
		Flux:     []float64{0, 1, 0},
	}

	noise := p.Noise(0, 5)
	want := math.Sqrt(2.0) / 3.0
	if math.Abs(noise-want) > 1e-9 {
		t.Fatalf("noise %g, want %g", noise, want)
	}
}
