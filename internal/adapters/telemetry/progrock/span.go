package progrock

import (
	"fmt"

	"github.com/vito/progrock"
	"go.trai.ch/mill/internal/core/ports"
)

var _ ports.Span = (*Span)(nil)

// Span implements ports.Span wrapping *progrock.VertexRecorder.
type Span struct {
	vertex *progrock.VertexRecorder
}

// Write forwards task output to the vertex's stdout stream.
func (s *Span) Write(p []byte) (int, error) {
	return s.vertex.Stdout().Write(p)
}

// End marks the vertex as finished, successfully or with an error.
func (s *Span) End(err error) {
	s.vertex.Done(err)
}

// Cached marks the vertex as a cache hit.
func (s *Span) Cached() {
	s.vertex.Cached()
}

// SetAttribute records a key-value pair as a vertex label.
func (s *Span) SetAttribute(key string, value any) {
	// VertexRecorder has no label concept; surface attributes in the stream.
	_, _ = fmt.Fprintf(s.vertex.Stdout(), "%s=%v\n", key, value)
}
