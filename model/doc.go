// Package model provides the mutable glTF property model: typed scene
// properties (buffers, accessors, textures, materials, meshes, nodes,
// scenes, skins, animations, cameras) connected through an ownership graph,
// and the Document that owns them.
//
// A property belongs to exactly one Document for its lifetime. Properties
// are created through the Document's Create methods, mutated through typed
// setters, and removed with Detach (drop parent links, keep graph-resident)
// or Dispose (remove entirely, cascading over owned children).
//
// # Related Packages
//
//   - github.com/sceneform/gltf/read - JSON + resources -> Document
//   - github.com/sceneform/gltf/write - Document -> JSON + resources
package model
