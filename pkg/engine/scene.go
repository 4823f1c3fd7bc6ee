package engine

import (
	"fmt"

	"github.com/chazu/scatter/pkg/shape"
)

// CloudSpec is a sampling request produced by the (scatter ...) form:
// draw Count points from Shape into a cloud called Name.
type CloudSpec struct {
	Name   string
	Shape  shape.Shape
	Count  int
	Seed   uint64
	Seeded bool // false means use the process-wide random source
}

// Scene is the output of one evaluation: the named shapes the script
// defined and the clouds it asked to be sampled. Each evaluation
// produces a fresh scene; scenes are never mutated afterwards.
type Scene struct {
	shapes map[string]shape.Shape
	order  []string
	Clouds []CloudSpec
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{shapes: make(map[string]shape.Shape)}
}

// AddShape registers a named shape. Redefining a name is an error so
// scripts fail loudly instead of silently shadowing geometry.
func (s *Scene) AddShape(name string, sh shape.Shape) error {
	if _, exists := s.shapes[name]; exists {
		return fmt.Errorf("shape %q already defined", name)
	}
	s.shapes[name] = sh
	s.order = append(s.order, name)
	return nil
}

// Lookup returns the shape with the given name, or nil.
func (s *Scene) Lookup(name string) shape.Shape {
	return s.shapes[name]
}

// ShapeNames returns the defined names in definition order.
func (s *Scene) ShapeNames() []string {
	return append([]string(nil), s.order...)
}

// ShapeCount returns the number of named shapes.
func (s *Scene) ShapeCount() int { return len(s.shapes) }
