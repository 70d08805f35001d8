package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/sceneform/gltf"
	"github.com/sceneform/gltf/model"
)

func stat(cfg *StatConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Stat.Parse(cc, args)
	if err != nil {
		cfg.Stat.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: stat requires at least one file", cli.ErrUsage)
	}
	for _, arg := range args {
		doc, err := gltf.ReadFile(arg, cfg.readOpts()...)
		if err != nil {
			return fmt.Errorf("error reading %s: %w", arg, err)
		}
		printStat(cc.Out, cfg.MainConfig, arg, doc)
	}
	return nil
}

func printStat(w io.Writer, cfg *MainConfig, name string, doc *model.Document) {
	h := cfg.heading(w)
	root := doc.Root()
	fmt.Fprintf(w, "%s\n", h("%s", name))
	asset := root.Asset()
	fmt.Fprintf(w, "  %-11s %s\n", "version", asset.Version)
	if asset.Generator != "" {
		fmt.Fprintf(w, "  %-11s %s\n", "generator", asset.Generator)
	}
	rows := []struct {
		kind string
		n    int
	}{
		{"scenes", len(root.ListScenes())},
		{"nodes", len(root.ListNodes())},
		{"cameras", len(root.ListCameras())},
		{"meshes", len(root.ListMeshes())},
		{"materials", len(root.ListMaterials())},
		{"textures", len(root.ListTextures())},
		{"accessors", len(root.ListAccessors())},
		{"buffers", len(root.ListBuffers())},
		{"skins", len(root.ListSkins())},
		{"animations", len(root.ListAnimations())},
	}
	for _, r := range rows {
		if r.n > 0 {
			fmt.Fprintf(w, "  %-11s %d\n", r.kind, r.n)
		}
	}
	var elements int
	for _, a := range root.ListAccessors() {
		elements += a.Count()
	}
	if elements > 0 {
		fmt.Fprintf(w, "  %-11s %d\n", "elements", elements)
	}
	var imageBytes int
	for _, t := range root.ListTextures() {
		imageBytes += len(t.Image())
	}
	if imageBytes > 0 {
		fmt.Fprintf(w, "  %-11s %d\n", "image bytes", imageBytes)
	}
	if exts := doc.Extensions(); len(exts) > 0 {
		fmt.Fprintf(w, "  %s\n", h("extensions"))
		for _, x := range exts {
			fmt.Fprintf(w, "    %s\n", x.ExtensionName())
		}
	}
}
