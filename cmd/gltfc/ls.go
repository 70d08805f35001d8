package main

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"

	"github.com/sceneform/gltf"
	"github.com/sceneform/gltf/model"
)

func ls(cfg *LsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Ls.Parse(cc, args)
	if err != nil {
		cfg.Ls.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: ls requires at least one file", cli.ErrUsage)
	}
	var prg *vm.Program
	if cfg.Where != "" {
		prg, err = expr.Compile(cfg.Where, expr.AsBool(), expr.AllowUndefinedVariables())
		if err != nil {
			return fmt.Errorf("%w: -where: %v", cli.ErrUsage, err)
		}
	}
	for _, arg := range args {
		doc, err := gltf.ReadFile(arg, cfg.readOpts()...)
		if err != nil {
			return fmt.Errorf("error reading %s: %w", arg, err)
		}
		for _, row := range collectRows(doc, cfg.Kind) {
			if prg != nil {
				out, err := expr.Run(prg, row)
				if err != nil {
					return fmt.Errorf("error evaluating -where on %s: %w", arg, err)
				}
				if ok, _ := out.(bool); !ok {
					continue
				}
			}
			fmt.Fprintf(cc.Out, "%-9s %4v  %s\n", row["kind"], row["index"], row["name"])
		}
	}
	return nil
}

// collectRows flattens the document's collections into expression
// environments, one row per property.
func collectRows(doc *model.Document, kind string) []map[string]any {
	root := doc.Root()
	var rows []map[string]any
	add := func(k string, i int, name string, extra map[string]any) {
		if kind != "" && kind != k {
			return
		}
		row := map[string]any{"kind": k, "index": i, "name": name}
		for key, v := range extra {
			row[key] = v
		}
		rows = append(rows, row)
	}
	for i, s := range root.ListScenes() {
		add("scene", i, s.Name(), map[string]any{"nodes": len(s.ListChildren())})
	}
	for i, n := range root.ListNodes() {
		add("node", i, n.Name(), map[string]any{
			"children": len(n.ListChildren()),
			"hasMesh":  n.Mesh() != nil,
			"hasSkin":  n.Skin() != nil,
		})
	}
	for i, c := range root.ListCameras() {
		add("camera", i, c.Name(), map[string]any{"projection": c.Projection()})
	}
	for i, m := range root.ListMeshes() {
		add("mesh", i, m.Name(), map[string]any{"primitives": len(m.ListPrimitives())})
	}
	for i, m := range root.ListMaterials() {
		add("material", i, m.Name(), map[string]any{
			"alphaMode":   m.AlphaMode(),
			"doubleSided": m.DoubleSided(),
		})
	}
	for i, t := range root.ListTextures() {
		add("texture", i, t.Name(), map[string]any{
			"mimeType": t.MimeType(),
			"bytes":    len(t.Image()),
			"uri":      t.URI(),
		})
	}
	for i, a := range root.ListAccessors() {
		add("accessor", i, a.Name(), map[string]any{
			"count":         a.Count(),
			"componentType": a.ComponentType().String(),
			"elementType":   string(a.ElementType()),
			"sparse":        a.Sparse(),
		})
	}
	for i, b := range root.ListBuffers() {
		add("buffer", i, b.Name(), map[string]any{"uri": b.URI()})
	}
	for i, s := range root.ListSkins() {
		add("skin", i, s.Name(), map[string]any{"joints": len(s.ListJoints())})
	}
	for i, a := range root.ListAnimations() {
		add("animation", i, a.Name(), map[string]any{
			"channels": len(a.ListChannels()),
			"samplers": len(a.ListSamplers()),
		})
	}
	return rows
}
