package wire

// GLBResourceKey is the reserved resource-map key under which the GLB
// binary chunk travels through a JSONDocument.
const GLBResourceKey = "@glb.bin"

// JSONDocument is the boundary value between the serialized form and the
// model: the parsed JSON tree plus resources keyed by URI. It exists only
// at the read/write boundary and is never retained by a Document.
type JSONDocument struct {
	JSON      *Document
	Resources map[string][]byte
}
