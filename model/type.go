package model

// Type tags each property with its kind. The set is closed: extensions
// attach ExtensionProperty values to core properties instead of adding
// kinds of their own.
type Type int

const (
	TypeRoot Type = iota
	TypeBuffer
	TypeAccessor
	TypeTexture
	TypeMaterial
	TypeMesh
	TypePrimitive
	TypePrimitiveTarget
	TypeNode
	TypeCamera
	TypeScene
	TypeSkin
	TypeAnimation
	TypeAnimationChannel
	TypeAnimationSampler
	TypeExtension
)

func (t Type) String() string {
	switch t {
	case TypeRoot:
		return "Root"
	case TypeBuffer:
		return "Buffer"
	case TypeAccessor:
		return "Accessor"
	case TypeTexture:
		return "Texture"
	case TypeMaterial:
		return "Material"
	case TypeMesh:
		return "Mesh"
	case TypePrimitive:
		return "Primitive"
	case TypePrimitiveTarget:
		return "PrimitiveTarget"
	case TypeNode:
		return "Node"
	case TypeCamera:
		return "Camera"
	case TypeScene:
		return "Scene"
	case TypeSkin:
		return "Skin"
	case TypeAnimation:
		return "Animation"
	case TypeAnimationChannel:
		return "AnimationChannel"
	case TypeAnimationSampler:
		return "AnimationSampler"
	case TypeExtension:
		return "Extension"
	}
	return "Unknown"
}

// Types returns all property kinds in declaration order.
func Types() []Type {
	res := make([]Type, 0, int(TypeExtension)+1)
	for t := TypeRoot; t <= TypeExtension; t++ {
		res = append(res, t)
	}
	return res
}
