package engine

import (
	"fmt"
	"math"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/scatter/pkg/csg"
	"github.com/chazu/scatter/pkg/geom"
	"github.com/chazu/scatter/pkg/path"
	"github.com/chazu/scatter/pkg/shape"
)

// DefaultCloudCount is the number of points (scatter ...) draws when
// the script gives no :count.
const DefaultCloudCount = 1000

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a geom.Vec3.
type sexpVec3 struct {
	vec geom.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.3f %.3f %.3f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpShape wraps a shape.Shape so it can flow between builtins.
type sexpShape struct {
	s    shape.Shape
	name string // human-readable name for error messages, may be empty
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	if s.name != "" {
		return fmt.Sprintf("(shape %q)", s.name)
	}
	return fmt.Sprintf("(shape measure=%.3f)", s.s.Measure())
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

// sexpSegment wraps a path segment produced by line/arc/bezier/helix,
// consumed by (curve ...).
type sexpSegment struct {
	seg path.Segment
}

func (s *sexpSegment) SexpString(ps *zygo.PrintState) string {
	return "(segment)"
}
func (s *sexpSegment) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string. Returns the
// keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword
// argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// float reads a numeric keyword argument, falling back to def.
func (pa kwArgs) float(name string, def float64) (float64, error) {
	v, ok := pa.kw[name]
	if !ok {
		return def, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

// count reads an integer keyword argument, falling back to def.
func (pa kwArgs) count(name string, def int) (int, error) {
	v, ok := pa.kw[name]
	if !ok {
		return def, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return int(f), nil
}

// at reads the :at anchor keyword, defaulting to the origin.
func (pa kwArgs) at() (geom.Vec3, error) {
	v, ok := pa.kw["at"]
	if !ok {
		return geom.Vec3{}, nil
	}
	vec, err := toVec3(v)
	if err != nil {
		return geom.Vec3{}, fmt.Errorf("at: %w", err)
	}
	return vec, nil
}

// sweep reads :from/:to angle keywords in degrees, defaulting to a
// full turn, and returns radians.
func (pa kwArgs) sweep() (a0, a1 float64, err error) {
	from, err := pa.float("from", 0)
	if err != nil {
		return 0, 0, err
	}
	to, err := pa.float("to", 360)
	if err != nil {
		return 0, 0, err
	}
	return radians(from), radians(to), nil
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

// toVec3 extracts a geom.Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (geom.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return geom.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toShape extracts a shape.Shape from a sexpShape.
func toShape(s zygo.Sexp) (shape.Shape, error) {
	if sh, ok := s.(*sexpShape); ok {
		return sh.s, nil
	}
	return nil, fmt.Errorf("expected shape, got %T (%s)", s, s.SexpString(nil))
}

// toSegment extracts a path.Segment from a sexpSegment.
func toSegment(s zygo.Sexp) (path.Segment, error) {
	if seg, ok := s.(*sexpSegment); ok {
		return seg.seg, nil
	}
	return nil, fmt.Errorf("expected path segment, got %T (%s)", s, s.SexpString(nil))
}

// shapeArgs extracts all positional arguments as shapes.
func shapeArgs(pa kwArgs) ([]shape.Shape, error) {
	shapes := make([]shape.Shape, 0, len(pa.positional))
	for i, arg := range pa.positional {
		sh, err := toShape(arg)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i+1, err)
		}
		shapes = append(shapes, sh)
	}
	return shapes, nil
}

// csgConfig reads the :max-attempts and :policy keywords shared by the
// Boolean composition builtins.
func csgConfig(pa kwArgs) (csg.Config, error) {
	cfg := csg.Config{}
	n, err := pa.count("max-attempts", 0)
	if err != nil {
		return cfg, err
	}
	cfg.MaxAttempts = n
	if v, ok := pa.kw["policy"]; ok {
		name, err := toKeywordString(v)
		if err != nil {
			return cfg, fmt.Errorf("policy: %w", err)
		}
		switch name {
		case "fallback":
			cfg.Policy = csg.PolicyFallback
		case "fail":
			cfg.Policy = csg.PolicyFail
		default:
			return cfg, fmt.Errorf("policy: invalid %q, expected fallback or fail", name)
		}
	}
	return cfg, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// shapeFn adapts a keyword-args shape constructor into a zygomys
// builtin with uniform error prefixing.
func shapeFn(env *zygo.Zlisp, name string, build func(pa kwArgs) (shape.Shape, error)) {
	env.AddFunction(name, func(env *zygo.Zlisp, fname string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		s, err := build(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		return &sexpShape{s: s}, nil
	})
}

// registerBuiltins installs the scatter DSL into a zygomys environment.
// The builtins construct shapes directly and record named shapes and
// sampling requests on the provided scene.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, scene *Scene) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var c [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %w", err)
			}
			c[i] = f
		}
		return &sexpVec3{vec: geom.Vec3{X: c[0], Y: c[1], Z: c[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// 2D primitives
	// (circle :radius 5 :at (vec3 0 0 0) :from 0 :to 90 :inner 0.5)
	// -----------------------------------------------------------------------
	shapeFn(env, "circle", func(pa kwArgs) (shape.Shape, error) {
		at, err := pa.at()
		if err != nil {
			return nil, err
		}
		r, err := pa.float("radius", 1)
		if err != nil {
			return nil, err
		}
		inner, err := pa.float("inner", 0)
		if err != nil {
			return nil, err
		}
		a0, a1, err := pa.sweep()
		if err != nil {
			return nil, err
		}
		return shape.NewEllipseSector(at, r, r, inner, a0, a1), nil
	})

	// (ellipse :rx 4 :ry 2 :at ...)
	shapeFn(env, "ellipse", func(pa kwArgs) (shape.Shape, error) {
		at, err := pa.at()
		if err != nil {
			return nil, err
		}
		rx, err := pa.float("rx", 1)
		if err != nil {
			return nil, err
		}
		ry, err := pa.float("ry", 1)
		if err != nil {
			return nil, err
		}
		return shape.NewEllipse(at, rx, ry), nil
	})

	// (ring :inner 2 :outer 5 :at ...)
	shapeFn(env, "ring", func(pa kwArgs) (shape.Shape, error) {
		at, err := pa.at()
		if err != nil {
			return nil, err
		}
		r0, err := pa.float("inner", 0.5)
		if err != nil {
			return nil, err
		}
		r1, err := pa.float("outer", 1)
		if err != nil {
			return nil, err
		}
		return shape.NewRing(at, r0, r1), nil
	})

	// (rect :width 2 :height 1 :at ...)
	shapeFn(env, "rect", func(pa kwArgs) (shape.Shape, error) {
		at, err := pa.at()
		if err != nil {
			return nil, err
		}
		w, err := pa.float("width", 1)
		if err != nil {
			return nil, err
		}
		h, err := pa.float("height", 1)
		if err != nil {
			return nil, err
		}
		return shape.NewRect(at, w, h), nil
	})

	// (square :side 2 :at ...)
	shapeFn(env, "square", func(pa kwArgs) (shape.Shape, error) {
		at, err := pa.at()
		if err != nil {
			return nil, err
		}
		side, err := pa.float("side", 1)
		if err != nil {
			return nil, err
		}
		return shape.NewSquare(at, side), nil
	})

	// (triangle (vec3 ...) (vec3 ...) (vec3 ...))
	shapeFn(env, "triangle", func(pa kwArgs) (shape.Shape, error) {
		if len(pa.positional) != 3 {
			return nil, fmt.Errorf("requires exactly 3 vertices, got %d", len(pa.positional))
		}
		var vs [3]geom.Vec3
		for i, arg := range pa.positional {
			v, err := toVec3(arg)
			if err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i+1, err)
			}
			vs[i] = v
		}
		return shape.NewTriangle(vs[0], vs[1], vs[2]), nil
	})

	// (polygon (vec3 ...) (vec3 ...) (vec3 ...) ...)
	shapeFn(env, "polygon", func(pa kwArgs) (shape.Shape, error) {
		vs := make([]geom.Vec3, 0, len(pa.positional))
		for i, arg := range pa.positional {
			v, err := toVec3(arg)
			if err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i+1, err)
			}
			vs = append(vs, v)
		}
		return shape.NewPolygon(vs)
	})

	// -----------------------------------------------------------------------
	// 3D primitives
	// (sphere :radius 2 :at ... :from 0 :to 180 :polar-from 0 :polar-to 90)
	// -----------------------------------------------------------------------
	shapeFn(env, "sphere", func(pa kwArgs) (shape.Shape, error) {
		at, err := pa.at()
		if err != nil {
			return nil, err
		}
		r, err := pa.float("radius", 1)
		if err != nil {
			return nil, err
		}
		inner, err := pa.float("inner", 0)
		if err != nil {
			return nil, err
		}
		a0, a1, err := pa.sweep()
		if err != nil {
			return nil, err
		}
		p0, err := pa.float("polar-from", 0)
		if err != nil {
			return nil, err
		}
		p1, err := pa.float("polar-to", 180)
		if err != nil {
			return nil, err
		}
		return shape.NewEllipsoidSector(at, r, r, r, inner, a0, a1, radians(p0), radians(p1)), nil
	})

	// (shell :inner 2 :outer 5 :at ...)
	shapeFn(env, "shell", func(pa kwArgs) (shape.Shape, error) {
		at, err := pa.at()
		if err != nil {
			return nil, err
		}
		r0, err := pa.float("inner", 0.5)
		if err != nil {
			return nil, err
		}
		r1, err := pa.float("outer", 1)
		if err != nil {
			return nil, err
		}
		return shape.NewShell(at, r0, r1), nil
	})

	// (ellipsoid :rx 1 :ry 2 :rz 3 :at ...)
	shapeFn(env, "ellipsoid", func(pa kwArgs) (shape.Shape, error) {
		at, err := pa.at()
		if err != nil {
			return nil, err
		}
		rx, err := pa.float("rx", 1)
		if err != nil {
			return nil, err
		}
		ry, err := pa.float("ry", 1)
		if err != nil {
			return nil, err
		}
		rz, err := pa.float("rz", 1)
		if err != nil {
			return nil, err
		}
		return shape.NewEllipsoid(at, rx, ry, rz), nil
	})

	// (box :width 2 :depth 1 :height 3 :at ...)
	shapeFn(env, "box", func(pa kwArgs) (shape.Shape, error) {
		at, err := pa.at()
		if err != nil {
			return nil, err
		}
		w, err := pa.float("width", 1)
		if err != nil {
			return nil, err
		}
		d, err := pa.float("depth", 1)
		if err != nil {
			return nil, err
		}
		h, err := pa.float("height", 1)
		if err != nil {
			return nil, err
		}
		return shape.NewBox(at, w, d, h), nil
	})

	// (cube :side 2 :at ...)
	shapeFn(env, "cube", func(pa kwArgs) (shape.Shape, error) {
		at, err := pa.at()
		if err != nil {
			return nil, err
		}
		side, err := pa.float("side", 1)
		if err != nil {
			return nil, err
		}
		return shape.NewCube(at, side), nil
	})

	// (cylinder :radius 1 :height 2 :at ... :inner 0.5 :from 0 :to 180)
	shapeFn(env, "cylinder", func(pa kwArgs) (shape.Shape, error) {
		at, err := pa.at()
		if err != nil {
			return nil, err
		}
		r, err := pa.float("radius", 1)
		if err != nil {
			return nil, err
		}
		h, err := pa.float("height", 1)
		if err != nil {
			return nil, err
		}
		inner, err := pa.float("inner", 0)
		if err != nil {
			return nil, err
		}
		a0, a1, err := pa.sweep()
		if err != nil {
			return nil, err
		}
		return shape.NewCylinderSector(at, r, h, inner, a0, a1), nil
	})

	// (tube :inner 1 :outer 2 :height 4 :at ...)
	shapeFn(env, "tube", func(pa kwArgs) (shape.Shape, error) {
		at, err := pa.at()
		if err != nil {
			return nil, err
		}
		r0, err := pa.float("inner", 0.5)
		if err != nil {
			return nil, err
		}
		r1, err := pa.float("outer", 1)
		if err != nil {
			return nil, err
		}
		h, err := pa.float("height", 1)
		if err != nil {
			return nil, err
		}
		return shape.NewTube(at, r0, r1, h), nil
	})

	// (cone :radius 1 :height 2 :at base-center)
	shapeFn(env, "cone", func(pa kwArgs) (shape.Shape, error) {
		at, err := pa.at()
		if err != nil {
			return nil, err
		}
		r, err := pa.float("radius", 1)
		if err != nil {
			return nil, err
		}
		h, err := pa.float("height", 1)
		if err != nil {
			return nil, err
		}
		return shape.NewCone(at, r, h), nil
	})

	// -----------------------------------------------------------------------
	// Path segments and curves
	// -----------------------------------------------------------------------

	// (line (vec3 ...) (vec3 ...))
	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("line requires exactly 2 points, got %d", len(args))
		}
		start, err := toVec3(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: start: %w", err)
		}
		end, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: end: %w", err)
		}
		return &sexpSegment{seg: path.NewLine(start, end)}, nil
	})

	// (arc :at center :radius 5 :from 0 :to 180)
	env.AddFunction("arc", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		at, err := pa.at()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("arc: %w", err)
		}
		r, err := pa.float("radius", 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("arc: %w", err)
		}
		a0, a1, err := pa.sweep()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("arc: %w", err)
		}
		return &sexpSegment{seg: path.NewArc(at, r, a0, a1)}, nil
	})

	// (bezier p0 p1 p2 [p3] :resolution 200)
	env.AddFunction("bezier", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 3 && len(pa.positional) != 4 {
			return zygo.SexpNull, fmt.Errorf("bezier requires 3 or 4 control points, got %d", len(pa.positional))
		}
		res, err := pa.count("resolution", 0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("bezier: %w", err)
		}
		pts := make([]geom.Vec3, len(pa.positional))
		for i, arg := range pa.positional {
			v, err := toVec3(arg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("bezier: point %d: %w", i+1, err)
			}
			pts[i] = v
		}
		if len(pts) == 3 {
			return &sexpSegment{seg: path.QuadBezier(pts[0], pts[1], pts[2], res)}, nil
		}
		return &sexpSegment{seg: path.CubicBezier(pts[0], pts[1], pts[2], pts[3], res)}, nil
	})

	// (helix :at center :radius 2 :pitch 1 :turns 5 :resolution 200)
	env.AddFunction("helix", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		at, err := pa.at()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("helix: %w", err)
		}
		r, err := pa.float("radius", 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("helix: %w", err)
		}
		pitch, err := pa.float("pitch", 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("helix: %w", err)
		}
		turns, err := pa.float("turns", 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("helix: %w", err)
		}
		res, err := pa.count("resolution", 0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("helix: %w", err)
		}
		return &sexpSegment{seg: path.Helix(at, r, pitch, turns, res)}, nil
	})

	// (curve seg seg seg ...) builds a path shape sampled by arc length.
	shapeFn(env, "curve", func(pa kwArgs) (shape.Shape, error) {
		segs := make([]path.Segment, 0, len(pa.positional))
		for i, arg := range pa.positional {
			seg, err := toSegment(arg)
			if err != nil {
				return nil, fmt.Errorf("segment %d: %w", i+1, err)
			}
			segs = append(segs, seg)
		}
		return path.New(segs...), nil
	})

	// -----------------------------------------------------------------------
	// Transforms
	// -----------------------------------------------------------------------

	// (translate shape (vec3 ...))
	shapeFn(env, "translate", func(pa kwArgs) (shape.Shape, error) {
		if len(pa.positional) != 2 {
			return nil, fmt.Errorf("requires a shape and an offset vec3")
		}
		s, err := toShape(pa.positional[0])
		if err != nil {
			return nil, err
		}
		off, err := toVec3(pa.positional[1])
		if err != nil {
			return nil, fmt.Errorf("offset: %w", err)
		}
		return shape.Translate(s, off), nil
	})

	// (rotate shape :x 90 :y 0 :z 45) with Euler angles in degrees.
	shapeFn(env, "rotate", func(pa kwArgs) (shape.Shape, error) {
		if len(pa.positional) != 1 {
			return nil, fmt.Errorf("requires a shape as first argument")
		}
		s, err := toShape(pa.positional[0])
		if err != nil {
			return nil, err
		}
		rx, err := pa.float("x", 0)
		if err != nil {
			return nil, err
		}
		ry, err := pa.float("y", 0)
		if err != nil {
			return nil, err
		}
		rz, err := pa.float("z", 0)
		if err != nil {
			return nil, err
		}
		return shape.Rotate(s, radians(rx), radians(ry), radians(rz)), nil
	})

	// -----------------------------------------------------------------------
	// Boolean composition
	// -----------------------------------------------------------------------

	// (union a b ... :max-attempts 500 :policy :fallback)
	shapeFn(env, "union", func(pa kwArgs) (shape.Shape, error) {
		children, err := shapeArgs(pa)
		if err != nil {
			return nil, err
		}
		cfg, err := csgConfig(pa)
		if err != nil {
			return nil, err
		}
		return csg.New(csg.Union, cfg, children...)
	})

	// (intersect a b ... :max-attempts 500 :policy :fail)
	shapeFn(env, "intersect", func(pa kwArgs) (shape.Shape, error) {
		children, err := shapeArgs(pa)
		if err != nil {
			return nil, err
		}
		cfg, err := csgConfig(pa)
		if err != nil {
			return nil, err
		}
		return csg.New(csg.Intersection, cfg, children...)
	})

	// (subtract a b) is a minus b.
	shapeFn(env, "subtract", func(pa kwArgs) (shape.Shape, error) {
		children, err := shapeArgs(pa)
		if err != nil {
			return nil, err
		}
		cfg, err := csgConfig(pa)
		if err != nil {
			return nil, err
		}
		return csg.New(csg.Difference, cfg, children...)
	})

	// -----------------------------------------------------------------------
	// (defshape "name" s) / (shape "name")
	// -----------------------------------------------------------------------
	env.AddFunction("defshape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("defshape requires a name and a shape expression")
		}
		shapeName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defshape: name: %w", err)
		}
		s, err := toShape(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defshape: %w", err)
		}
		if err := scene.AddShape(shapeName, s); err != nil {
			return zygo.SexpNull, fmt.Errorf("defshape: %w", err)
		}
		return &sexpShape{s: s, name: shapeName}, nil
	})

	env.AddFunction("shape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("shape requires a name argument")
		}
		shapeName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("shape: name: %w", err)
		}
		s := scene.Lookup(shapeName)
		if s == nil {
			return zygo.SexpNull, fmt.Errorf("shape: no shape named %q", shapeName)
		}
		return &sexpShape{s: s, name: shapeName}, nil
	})

	// -----------------------------------------------------------------------
	// (scatter "name" s :count 5000 :seed 42)
	// -----------------------------------------------------------------------
	env.AddFunction("scatter", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("scatter requires a name and a shape")
		}
		cloudName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scatter: name: %w", err)
		}
		s, err := toShape(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scatter: %w", err)
		}
		n, err := pa.count("count", DefaultCloudCount)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scatter: %w", err)
		}
		if n < 0 {
			return zygo.SexpNull, fmt.Errorf("scatter: count must be non-negative, got %d", n)
		}
		spec := CloudSpec{Name: cloudName, Shape: s, Count: n}
		if v, ok := pa.kw["seed"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("scatter: seed: %w", err)
			}
			spec.Seed = uint64(f)
			spec.Seeded = true
		}
		scene.Clouds = append(scene.Clouds, spec)
		return pa.positional[1], nil
	})
}
