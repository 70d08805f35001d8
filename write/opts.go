package write

import (
	"log/slog"

	"github.com/sceneform/gltf/ext"
)

// Layout selects how vertex attribute accessors are packed into buffer
// views.
type Layout int

const (
	// Interleaved packs the attributes of each primitive into one
	// stride-addressed view.
	Interleaved Layout = iota
	// Separate gives every accessor its own tightly packed view.
	Separate
)

type writeOpts struct {
	basename   string
	layout     Layout
	embed      bool
	extensions *ext.Registry
	logger     *slog.Logger
}

type Option func(*writeOpts)

// Basename sets the stem used when generating resource URIs for buffers
// and images that carry no explicit URI.
func Basename(s string) Option {
	return func(o *writeOpts) { o.basename = s }
}

// VertexLayout selects the attribute packing strategy. Interleaved is the
// default.
func VertexLayout(l Layout) Option {
	return func(o *writeOpts) { o.layout = l }
}

// EmbedResources inlines buffer and image payloads as base64 data URIs
// instead of emitting external resources.
func EmbedResources(v bool) Option {
	return func(o *writeOpts) { o.embed = v }
}

// WithExtensions sets the extension registry whose hooks participate in
// the pipeline.
func WithExtensions(r *ext.Registry) Option {
	return func(o *writeOpts) { o.extensions = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *writeOpts) { o.logger = l }
}
