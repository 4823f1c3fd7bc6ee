// Package cloud collects sampled points into the flat numeric buffers
// rendering layers consume. The buffer layout [x0,y0,z0, x1,y1,z1, ...]
// is the sole handoff contract with consumers; nothing here knows
// about vertex buffers or draw calls.
package cloud

import (
	"github.com/chazu/scatter/pkg/geom"
	"github.com/chazu/scatter/pkg/shape"
)

// Cloud is a flat point buffer: 3 float32 values per point.
type Cloud struct {
	Points []float32 `json:"points"` // [x0,y0,z0, x1,y1,z1, ...]
	Name   string    `json:"name,omitempty"`
}

// PointCount returns the number of points in the buffer.
func (c *Cloud) PointCount() int {
	return len(c.Points) / 3
}

// IsEmpty reports whether the cloud holds no points.
func (c *Cloud) IsEmpty() bool {
	return len(c.Points) == 0
}

// At returns point i as a vector. It panics if i is out of range.
func (c *Cloud) At(i int) geom.Vec3 {
	return geom.Vec3{
		X: float64(c.Points[i*3]),
		Y: float64(c.Points[i*3+1]),
		Z: float64(c.Points[i*3+2]),
	}
}

// Append adds one point to the buffer.
func (c *Cloud) Append(p geom.Vec3) {
	c.Points = append(c.Points, float32(p.X), float32(p.Y), float32(p.Z))
}

// Fill samples n points from s into a new cloud, aborting on the first
// sampling error. Composite shapes configured to fail on exhausted
// rejection budgets surface that error here.
func Fill(s shape.Shape, n int, src shape.Source) (*Cloud, error) {
	c := &Cloud{Points: make([]float32, 0, n*3)}
	for i := 0; i < n; i++ {
		p, err := s.Sample(src)
		if err != nil {
			return nil, err
		}
		c.Append(p)
	}
	return c, nil
}

// FillBestEffort samples up to n points, skipping draws that fail, and
// reports how many were skipped. Useful for pipelines that prefer a
// sparser cloud over an aborted batch.
func FillBestEffort(s shape.Shape, n int, src shape.Source) (*Cloud, int) {
	c := &Cloud{Points: make([]float32, 0, n*3)}
	skipped := 0
	for i := 0; i < n; i++ {
		p, err := s.Sample(src)
		if err != nil {
			skipped++
			continue
		}
		c.Append(p)
	}
	return c, skipped
}
