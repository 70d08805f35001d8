// Package gltf maps glTF 2.0 assets to and from a mutable in-memory
// property graph.
//
// The model package holds the graph; read and write run the two pipeline
// directions; wire holds the JSON tree and the shared error taxonomy; bin
// and glb are the low-level codecs; ext hosts the extension hook
// protocol. This package adds file-path conveniences over read and write.
//
// # Related Packages
//
//   - model: property graph and document lifecycle
//   - read: wire form to model
//   - write: model to wire form
//   - ext: extension hook protocol and registry
package gltf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sceneform/gltf/model"
	"github.com/sceneform/gltf/read"
	"github.com/sceneform/gltf/wire"
	"github.com/sceneform/gltf/write"
)

var glbMagic = []byte("glTF")

// IsGLB reports whether data starts with the GLB container magic.
func IsGLB(data []byte) bool {
	return len(data) >= 4 && bytes.Equal(data[:4], glbMagic)
}

// ReadFile loads a .gltf or .glb asset, sniffing the container format
// from the content. Relative resource URIs resolve against the file's
// directory unless an option overrides the resolver.
func ReadFile(path string, opts ...read.Option) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", wire.ErrResource, path, err)
	}
	if IsGLB(data) {
		return read.GLB(data, opts...)
	}
	opts = append([]read.Option{read.WithResolver(read.FileResolver{Base: filepath.Dir(path)})}, opts...)
	return read.JSON(data, nil, opts...)
}

// WriteFile serializes doc to path. A .glb suffix selects the GLB
// container; anything else writes JSON plus external resources beside it.
// Generated resource names default to the output file's stem.
func WriteFile(doc *model.Document, path string, opts ...write.Option) error {
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		data, err := write.GLB(doc, opts...)
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0o644)
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	opts = append([]write.Option{write.Basename(stem)}, opts...)
	data, resources, err := write.JSON(doc, opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	for name, payload := range resources {
		if err := os.WriteFile(filepath.Join(dir, filepath.FromSlash(name)), payload, 0o644); err != nil {
			return err
		}
	}
	return nil
}
