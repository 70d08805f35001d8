package main

import (
	"encoding/json"
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/sceneform/gltf"
	"github.com/sceneform/gltf/write"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires exactly two files", cli.ErrUsage)
	}
	a, err := normalJSON(cfg.MainConfig, args[0])
	if err != nil {
		return err
	}
	b, err := normalJSON(cfg.MainConfig, args[1])
	if err != nil {
		return err
	}
	if a == b {
		return nil
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, true)
	diffs = dmp.DiffCleanupSemantic(diffs)
	if cfg.colored(cc.Out) {
		fmt.Fprint(cc.Out, dmp.DiffPrettyText(diffs))
	} else {
		for _, d := range diffs {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				fmt.Fprintf(cc.Out, "{+%s+}", d.Text)
			case diffmatchpatch.DiffDelete:
				fmt.Fprintf(cc.Out, "[-%s-]", d.Text)
			default:
				fmt.Fprint(cc.Out, d.Text)
			}
		}
	}
	return cli.ExitCodeErr(1)
}

// normalJSON reads an asset through the pipeline and re-serializes its
// JSON tree, so that equivalent .gltf and .glb inputs compare equal.
func normalJSON(cfg *MainConfig, path string) (string, error) {
	doc, err := gltf.ReadFile(path, cfg.readOpts()...)
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", path, err)
	}
	jd, err := write.Write(doc, write.WithExtensions(cfg.Registry), write.WithLogger(theLog))
	if err != nil {
		return "", fmt.Errorf("error serializing %s: %w", path, err)
	}
	data, err := json.MarshalIndent(jd.JSON, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
