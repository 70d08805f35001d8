package read

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/sceneform/gltf/wire"
)

// Resolver loads the bytes behind a resource URI that is not present in
// the JSONDocument's resource map.
type Resolver interface {
	Resolve(uri string) ([]byte, error)
}

// FileResolver resolves relative URIs against a base directory.
type FileResolver struct {
	Base string
}

func (r FileResolver) Resolve(uri string) ([]byte, error) {
	d, err := os.ReadFile(filepath.Join(r.Base, filepath.FromSlash(uri)))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", wire.ErrResource, uri, err)
	}
	return d, nil
}

// httpResolve fetches an absolute http(s) URI.
func httpResolve(uri string) ([]byte, error) {
	resp, err := http.Get(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", wire.ErrResource, uri, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %q: status %s", wire.ErrResource, uri, resp.Status)
	}
	d, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", wire.ErrResource, uri, err)
	}
	return d, nil
}

func isDataURI(uri string) bool {
	return strings.HasPrefix(uri, "data:")
}

func isHTTPURI(uri string) bool {
	return strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://")
}

// decodeDataURI decodes a base64 data: URI payload.
func decodeDataURI(uri string) ([]byte, error) {
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, fmt.Errorf("%w: data URI without payload", wire.ErrFormat)
	}
	meta, payload := uri[len("data:"):comma], uri[comma+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("%w: data URI without base64 encoding", wire.ErrFormat)
	}
	d, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: data URI payload: %v", wire.ErrFormat, err)
	}
	return d, nil
}

// resolve returns the bytes behind uri, consulting the resource map, then
// data: decoding, then the configured resolver. A nil error with nil bytes
// never occurs; failures wrap ErrResource (or ErrFormat for a malformed
// data: URI).
func (o *readOpts) resolve(uri string, resources map[string][]byte) ([]byte, error) {
	if d, ok := resources[uri]; ok {
		return d, nil
	}
	if isDataURI(uri) {
		return decodeDataURI(uri)
	}
	if isHTTPURI(uri) {
		if !o.allowHTTP {
			return nil, fmt.Errorf("%w: %q: network access not allowed", wire.ErrResource, uri)
		}
		return httpResolve(uri)
	}
	if o.resolver != nil {
		return o.resolver.Resolve(uri)
	}
	return nil, fmt.Errorf("%w: %q: no resolver", wire.ErrResource, uri)
}
