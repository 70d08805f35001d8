package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/sceneform/gltf"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: convert requires an input and an output path", cli.ErrUsage)
	}
	doc, err := gltf.ReadFile(args[0], cfg.readOpts()...)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", args[0], err)
	}
	wopts, err := cfg.writeOpts()
	if err != nil {
		return err
	}
	if err := gltf.WriteFile(doc, args[1], wopts...); err != nil {
		return fmt.Errorf("error writing %s: %w", args[1], err)
	}
	theLog.Info("converted", "from", args[0], "to", args[1])
	return nil
}
