// Package observed reads instrument line-profile data files: two
// whitespace-separated columns of velocity (km/s) and main-beam
// temperature, with optional #-prefixed header lines. A header line of
// the form "vlsr=<value>" carries the instrument pipeline's systemic
// velocity estimate.
package observed

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// ErrUnavailable reports a data file that cannot be read.
var ErrUnavailable = errors.New("observed data unavailable")

// Profile is one observed velocity/intensity spectrum.
type Profile struct {
	Path     string
	Velocity []float64
	Flux     []float64

	// VLSRHint is the systemic velocity embedded in the file header,
	// when present.
	VLSRHint    float64
	HasVLSRHint bool
}

// Read parses a line-profile data file.
func Read(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, path)
		}
		return nil, fmt.Errorf("open observed data: %w", err)
	}
	defer f.Close()

	p := &Profile{Path: path}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			header := strings.ToLower(strings.TrimLeft(line, "#! "))
			if rest, ok := strings.CutPrefix(header, "vlsr="); ok {
				if v, err := strconv.ParseFloat(strings.TrimSpace(rest), 64); err == nil {
					p.VLSRHint = v
					p.HasVLSRHint = true
				}
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		v, err1 := strconv.ParseFloat(fields[0], 64)
		t, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		p.Velocity = append(p.Velocity, v)
		p.Flux = append(p.Flux, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read observed data: %w", err)
	}
	if len(p.Velocity) == 0 {
		return nil, fmt.Errorf("%w: no samples in %s", ErrUnavailable, path)
	}
	return p, nil
}

// Noise estimates the RMS noise from the line-free wings of the profile,
// taking every sample farther than 1.2 times the expansion velocity from
// the systemic velocity. When too few wing samples exist the full
// profile's standard deviation is returned.
func (p *Profile) Noise(vlsr, vexp float64) float64 {
	var wings []float64
	if vexp > 0 {
		for i, v := range p.Velocity {
			if math.Abs(v-vlsr) > 1.2*vexp {
				wings = append(wings, p.Flux[i])
			}
		}
	}
	if len(wings) < 5 {
		wings = p.Flux
	}
	return stddev(wings)
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	var sum float64
	for _, v := range values {
		sum += (v - mean) * (v - mean)
	}
	return math.Sqrt(sum / float64(len(values)))
}
