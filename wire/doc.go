// Package wire holds the glTF 2.0 JSON schema types, the GL enumeration
// constants used by accessors and samplers, and the sentinel errors shared
// by the read and write pipelines.
//
// The types here map one-to-one onto the glTF 2.0 JSON schema and carry no
// behavior; the mutable editing model lives in the model package.
//
// # Related Packages
//
//   - github.com/sceneform/gltf/model - mutable property model
//   - github.com/sceneform/gltf/read - JSON + resources -> model
//   - github.com/sceneform/gltf/write - model -> JSON + resources
package wire
