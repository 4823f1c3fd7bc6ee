// Package scatter turns shape descriptions into uniform point clouds.
// The Session facade is the integration surface for host applications:
// it evaluates scatter Lisp source and returns flat point buffers plus
// structured errors, the same pipeline a programmatic caller gets by
// using pkg/shape, pkg/csg and pkg/cloud directly.
package scatter

import (
	"log"

	"github.com/chazu/scatter/pkg/cloud"
	"github.com/chazu/scatter/pkg/engine"
	"github.com/chazu/scatter/pkg/shape"
)

// CloudData is the JSON-serializable point buffer handed to consumers.
type CloudData struct {
	Name    string    `json:"name"`
	Points  []float32 `json:"points"` // [x0,y0,z0, x1,y1,z1, ...]
	Skipped int       `json:"skipped,omitempty"`
}

// EvalErrorData is a JSON-serializable evaluation error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// Result is the full output of evaluating one script.
type Result struct {
	Clouds []CloudData     `json:"clouds"`
	Errors []EvalErrorData `json:"errors"`
}

// Session bundles an engine with the random source used for unseeded
// sampling requests. A zero-configured Session from NewSession samples
// with the process-wide generator.
type Session struct {
	engine *engine.Engine
	src    shape.Source
}

// NewSession creates a Session backed by the shared random source.
func NewSession() *Session {
	return &Session{
		engine: engine.NewEngine(),
		src:    shape.System(),
	}
}

// NewSeededSession creates a Session whose unseeded sampling requests
// draw from a deterministic source. Intended for tests and reproducible
// pipelines.
func NewSeededSession(seed uint64) *Session {
	return &Session{
		engine: engine.NewEngine(),
		src:    shape.NewSeeded(seed),
	}
}

// Evaluate runs a scatter Lisp script and samples every cloud it
// requests. Script errors are reported in Result.Errors; sampling
// errors on a cloud leave that cloud sparse and are counted in its
// Skipped field rather than aborting the batch.
func (s *Session) Evaluate(source string) Result {
	result := Result{
		Clouds: []CloudData{},
		Errors: []EvalErrorData{},
	}

	scene, evalErrs, err := s.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("scatter: evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	for _, spec := range scene.Clouds {
		src := s.src
		if spec.Seeded {
			src = shape.NewSeeded(spec.Seed)
		}
		c, skipped := cloud.FillBestEffort(spec.Shape, spec.Count, src)
		if skipped > 0 {
			log.Printf("scatter: cloud %q: %d of %d draws failed", spec.Name, skipped, spec.Count)
		}
		result.Clouds = append(result.Clouds, CloudData{
			Name:    spec.Name,
			Points:  c.Points,
			Skipped: skipped,
		})
	}
	return result
}
