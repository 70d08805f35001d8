package model

// ExtensionProperty is a property owned by an extension and attached to a
// core property under the extension's schema name.
type ExtensionProperty interface {
	Property
	ExtensionName() string
}

// ExtensionPropertyBase provides the Property plumbing for concrete
// extension property types. Embed it and implement ExtensionName; register
// new instances with [Document.InitExtensionProperty].
type ExtensionPropertyBase struct {
	propBase
}
