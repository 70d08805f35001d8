package wire

import "fmt"

// Version is the only glTF asset version this module reads or writes.
const Version = "2.0"

// ComponentType identifies the scalar storage type of accessor components,
// using the GL enumerant values required by the glTF schema.
type ComponentType int

const (
	Byte          ComponentType = 5120
	UnsignedByte  ComponentType = 5121
	Short         ComponentType = 5122
	UnsignedShort ComponentType = 5123
	UnsignedInt   ComponentType = 5125
	Float         ComponentType = 5126
)

// Size returns the byte size of one component, or an error for component
// types glTF does not define (notably signed 32-bit integers).
func (c ComponentType) Size() (int, error) {
	switch c {
	case Byte, UnsignedByte:
		return 1, nil
	case Short, UnsignedShort:
		return 2, nil
	case UnsignedInt, Float:
		return 4, nil
	}
	return 0, fmt.Errorf("%w: component type %d", ErrUsage, int(c))
}

func (c ComponentType) String() string {
	switch c {
	case Byte:
		return "BYTE"
	case UnsignedByte:
		return "UNSIGNED_BYTE"
	case Short:
		return "SHORT"
	case UnsignedShort:
		return "UNSIGNED_SHORT"
	case UnsignedInt:
		return "UNSIGNED_INT"
	case Float:
		return "FLOAT"
	}
	return fmt.Sprintf("ComponentType(%d)", int(c))
}

// ElementType is the arity class of an accessor element.
type ElementType string

const (
	Scalar ElementType = "SCALAR"
	Vec2   ElementType = "VEC2"
	Vec3   ElementType = "VEC3"
	Vec4   ElementType = "VEC4"
	Mat2   ElementType = "MAT2"
	Mat3   ElementType = "MAT3"
	Mat4   ElementType = "MAT4"
)

// Components returns the number of components per element, or an error for
// an unknown element type.
func (e ElementType) Components() (int, error) {
	switch e {
	case Scalar:
		return 1, nil
	case Vec2:
		return 2, nil
	case Vec3:
		return 3, nil
	case Vec4, Mat2:
		return 4, nil
	case Mat3:
		return 9, nil
	case Mat4:
		return 16, nil
	}
	return 0, fmt.Errorf("%w: element type %q", ErrUsage, string(e))
}

// Buffer view targets.
const (
	TargetArrayBuffer        = 34962
	TargetElementArrayBuffer = 34963
)

// Primitive topology modes.
const (
	ModePoints        = 0
	ModeLines         = 1
	ModeLineLoop      = 2
	ModeLineStrip     = 3
	ModeTriangles     = 4
	ModeTriangleStrip = 5
	ModeTriangleFan   = 6
)

// Sampler filters.
const (
	FilterNearest              = 9728
	FilterLinear               = 9729
	FilterNearestMipmapNearest = 9984
	FilterLinearMipmapNearest  = 9985
	FilterNearestMipmapLinear  = 9986
	FilterLinearMipmapLinear   = 9987
)

// Sampler wrap modes. Repeat is the schema default.
const (
	WrapClampToEdge    = 33071
	WrapMirroredRepeat = 33648
	WrapRepeat         = 10497
)

// Material alpha modes.
const (
	AlphaOpaque = "OPAQUE"
	AlphaMask   = "MASK"
	AlphaBlend  = "BLEND"
)

// Animation interpolation modes.
const (
	InterpolationLinear      = "LINEAR"
	InterpolationStep        = "STEP"
	InterpolationCubicSpline = "CUBICSPLINE"
)

// Animation target paths.
const (
	PathTranslation = "translation"
	PathRotation    = "rotation"
	PathScale       = "scale"
	PathWeights     = "weights"
)

// GLB container framing.
const (
	GLBMagic     = 0x46546C67
	GLBVersion   = 2
	GLBChunkJSON = 0x4E4F534A
	GLBChunkBIN  = 0x004E4942
)
