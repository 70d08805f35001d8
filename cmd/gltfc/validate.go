package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/sceneform/gltf"
	"github.com/sceneform/gltf/read"
	"github.com/sceneform/gltf/write"
)

func validate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		cfg.Validate.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: validate requires at least one file", cli.ErrUsage)
	}
	bad := 0
	for _, arg := range args {
		opts := append(cfg.readOpts(), read.Strict(true))
		doc, err := gltf.ReadFile(arg, opts...)
		if err != nil {
			bad++
			fmt.Fprintf(cc.Out, "%s: %v\n", arg, err)
			continue
		}
		// the asset must also serialize cleanly
		if _, err := write.Write(doc, write.WithExtensions(cfg.Registry), write.WithLogger(theLog)); err != nil {
			bad++
			fmt.Fprintf(cc.Out, "%s: %v\n", arg, err)
			continue
		}
		fmt.Fprintf(cc.Out, "%s: ok\n", arg)
	}
	if bad > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
