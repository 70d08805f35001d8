package read

import (
	"log/slog"

	"github.com/sceneform/gltf/ext"
)

type readOpts struct {
	strict     bool
	allowHTTP  bool
	resolver   Resolver
	extensions *ext.Registry
	logger     *slog.Logger
}

type Option func(*readOpts)

// Strict controls resource resolution failures: fatal when set (the
// default), recovered as a nil payload plus a logged warning otherwise.
func Strict(v bool) Option {
	return func(o *readOpts) { o.strict = v }
}

// AllowNetwork permits resolving absolute http(s) resource URIs.
func AllowNetwork(v bool) Option {
	return func(o *readOpts) { o.allowHTTP = v }
}

// WithResolver sets the resolver used for URIs not present in the
// resource map.
func WithResolver(r Resolver) Option {
	return func(o *readOpts) { o.resolver = r }
}

// WithExtensions sets the extension registry whose hooks participate in
// the pipeline.
func WithExtensions(r *ext.Registry) Option {
	return func(o *readOpts) { o.extensions = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *readOpts) { o.logger = l }
}
