// Package geom provides the small value types shared by every shape:
// 3D vectors, axis-aligned bounding boxes, and rotation matrices.
// All types are plain values with no hidden state; z is simply 0 for
// 2D geometry.
package geom
