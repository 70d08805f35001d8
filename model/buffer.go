package model

// Buffer is a byte region grouping accessor and texture payloads. Its
// bytes exist only at the read/write boundary: the reader resolves them
// transiently, the writer packs them from the accessors that point here.
// A buffer referenced by zero payload bytes is omitted on write.
type Buffer struct {
	propBase
	uri string
}

// URI returns the explicit resource name, or "" when the writer should
// generate one.
func (b *Buffer) URI() string { return b.uri }

func (b *Buffer) SetURI(uri string) { b.uri = uri }
