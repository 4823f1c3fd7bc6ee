// Package sdfshape adapts solids from the github.com/deadsy/sdfx CAD
// library to scatter's sampling contract. Any sdf.SDF3 or sdf.SDF2
// (extrusions, revolutions, threads, offset solids) becomes a Shape
// that can be sampled directly or composed with native primitives in
// CSG trees.
//
// Membership comes from the signed distance itself (negative inside).
// Sampling rejection-samples the solid's bounding box. The measure has
// no closed form for an arbitrary SDF, so the constructor estimates it
// once with a deterministic Monte-Carlo pass: hit fraction times
// bounding-box volume. That estimate is a union-weighting heuristic
// with the usual 1/sqrt(n) error, not an exact volume.
package sdfshape

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/scatter/pkg/geom"
	"github.com/chazu/scatter/pkg/shape"
)

const (
	// DefaultMaxAttempts bounds the per-sample rejection loop.
	DefaultMaxAttempts = 500
	// DefaultMeasureProbes is the number of Monte-Carlo probes used
	// to estimate the solid's measure at construction.
	DefaultMeasureProbes = 16384
	// measureSeed fixes the probe stream so the estimate is
	// reproducible across runs.
	measureSeed = 0x5ca77e2
)

// Config carries the optional adapter knobs; the zero value selects
// all defaults.
type Config struct {
	MaxAttempts   int
	MeasureProbes int
}

// Solid wraps an sdf.SDF3 as a shape.Shape.
type Solid struct {
	s           sdf.SDF3
	box         geom.Box
	measure     float64
	maxAttempts int
}

var _ shape.Shape = (*Solid)(nil)

// FromSDF3 wraps a 3D signed distance field.
func FromSDF3(s sdf.SDF3, cfg Config) *Solid {
	bb := s.BoundingBox()
	w := &Solid{
		s: s,
		box: geom.Box{
			Min: geom.Vec3{X: bb.Min.X, Y: bb.Min.Y, Z: bb.Min.Z},
			Max: geom.Vec3{X: bb.Max.X, Y: bb.Max.Y, Z: bb.Max.Z},
		},
		maxAttempts: cfg.MaxAttempts,
	}
	if w.maxAttempts <= 0 {
		w.maxAttempts = DefaultMaxAttempts
	}
	probes := cfg.MeasureProbes
	if probes <= 0 {
		probes = DefaultMeasureProbes
	}
	size := w.box.Size()
	boxVol := size.X * size.Y * size.Z
	if boxVol > 0 {
		src := shape.NewSeeded(measureSeed)
		hits := 0
		for i := 0; i < probes; i++ {
			p := v3.Vec{
				X: w.box.Min.X + src.Float64()*size.X,
				Y: w.box.Min.Y + src.Float64()*size.Y,
				Z: w.box.Min.Z + src.Float64()*size.Z,
			}
			if s.Evaluate(p) <= 0 {
				hits++
			}
		}
		w.measure = boxVol * float64(hits) / float64(probes)
	}
	return w
}

// Sample rejection-samples the bounding box until the distance field
// reports an interior point. An SDF whose interior is a vanishing
// fraction of its bound can exhaust the budget; that surfaces as an
// error rather than a wrong point.
func (w *Solid) Sample(src shape.Source) (geom.Vec3, error) {
	if w.measure == 0 {
		return w.box.Center(), nil
	}
	size := w.box.Size()
	for attempt := 0; attempt < w.maxAttempts; attempt++ {
		p := v3.Vec{
			X: w.box.Min.X + src.Float64()*size.X,
			Y: w.box.Min.Y + src.Float64()*size.Y,
			Z: w.box.Min.Z + src.Float64()*size.Z,
		}
		if w.s.Evaluate(p) <= 0 {
			return geom.Vec3{X: p.X, Y: p.Y, Z: p.Z}, nil
		}
	}
	return geom.Vec3{}, fmt.Errorf("sdfshape: no interior point after %d attempts", w.maxAttempts)
}

// Contains reports whether the signed distance at p is within eps of
// the interior.
func (w *Solid) Contains(p geom.Vec3, eps float64) bool {
	return w.s.Evaluate(v3.Vec{X: p.X, Y: p.Y, Z: p.Z}) <= eps
}

// Measure returns the Monte-Carlo volume estimate.
func (w *Solid) Measure() float64 { return w.measure }

// Bounds returns the SDF's own bounding box.
func (w *Solid) Bounds() geom.Box { return w.box }

// Center returns the bounding-box midpoint.
func (w *Solid) Center() geom.Vec3 { return w.box.Center() }

// Flat wraps an sdf.SDF2 as a planar shape.Shape in the z=0 plane.
type Flat struct {
	s           sdf.SDF2
	box         geom.Box
	measure     float64
	maxAttempts int
}

var _ shape.Shape = (*Flat)(nil)

// FromSDF2 wraps a 2D signed distance field.
func FromSDF2(s sdf.SDF2, cfg Config) *Flat {
	bb := s.BoundingBox()
	w := &Flat{
		s: s,
		box: geom.Box{
			Min: geom.Vec3{X: bb.Min.X, Y: bb.Min.Y},
			Max: geom.Vec3{X: bb.Max.X, Y: bb.Max.Y},
		},
		maxAttempts: cfg.MaxAttempts,
	}
	if w.maxAttempts <= 0 {
		w.maxAttempts = DefaultMaxAttempts
	}
	probes := cfg.MeasureProbes
	if probes <= 0 {
		probes = DefaultMeasureProbes
	}
	size := w.box.Size()
	boxArea := size.X * size.Y
	if boxArea > 0 {
		src := shape.NewSeeded(measureSeed)
		hits := 0
		for i := 0; i < probes; i++ {
			p := v2.Vec{
				X: w.box.Min.X + src.Float64()*size.X,
				Y: w.box.Min.Y + src.Float64()*size.Y,
			}
			if s.Evaluate(p) <= 0 {
				hits++
			}
		}
		w.measure = boxArea * float64(hits) / float64(probes)
	}
	return w
}

// Sample rejection-samples the planar bounding box.
func (w *Flat) Sample(src shape.Source) (geom.Vec3, error) {
	if w.measure == 0 {
		return w.box.Center(), nil
	}
	size := w.box.Size()
	for attempt := 0; attempt < w.maxAttempts; attempt++ {
		p := v2.Vec{
			X: w.box.Min.X + src.Float64()*size.X,
			Y: w.box.Min.Y + src.Float64()*size.Y,
		}
		if w.s.Evaluate(p) <= 0 {
			return geom.Vec3{X: p.X, Y: p.Y}, nil
		}
	}
	return geom.Vec3{}, fmt.Errorf("sdfshape: no interior point after %d attempts", w.maxAttempts)
}

// Contains reports whether p lies in the z=0 plane and inside the
// distance field, within eps.
func (w *Flat) Contains(p geom.Vec3, eps float64) bool {
	if p.Z > eps || p.Z < -eps {
		return false
	}
	return w.s.Evaluate(v2.Vec{X: p.X, Y: p.Y}) <= eps
}

// Measure returns the Monte-Carlo area estimate.
func (w *Flat) Measure() float64 { return w.measure }

// Bounds returns the SDF's own bounding box in the z=0 plane.
func (w *Flat) Bounds() geom.Box { return w.box }

// Center returns the bounding-box midpoint.
func (w *Flat) Center() geom.Vec3 { return w.box.Center() }
