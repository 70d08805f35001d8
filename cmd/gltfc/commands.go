package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	fc, err := loadFileConfig()
	if err != nil {
		fc = &FileConfig{}
	}
	cfg := &MainConfig{File: fc, Registry: defaultRegistry()}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "gltfc").
		WithSynopsis("gltfc [opts] command [opts]").
		WithDescription("gltfc is a tool for working with glTF 2.0 assets.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return gltfcMain(cfg, cc, args)
		}).
		WithSubs(
			ConvertCommand(cfg),
			StatCommand(cfg),
			LsCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg),
			ValidateCommand(cfg))
}

func gltfcMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func ConvertCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConvertConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("convert").
		WithAliases("c", "co").
		WithSynopsis("convert [opts] <in.{gltf,glb}> <out.{gltf,glb}>").
		WithDescription("convert between .gltf and .glb, repacking binary data").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return convert(cfg, cc, args)
		})
	cfg.Convert = cmd
	return cmd
}

func StatCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &StatConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("stat").
		WithAliases("s", "st").
		WithSynopsis("stat [files]").
		WithDescription("summarize the contents of glTF assets").
		WithRun(func(cc *cli.Context, args []string) error {
			return stat(cfg, cc, args)
		})
	cfg.Stat = cmd
	return cmd
}

func LsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("ls").
		WithAliases("l").
		WithSynopsis("ls [-k kind] [-where expr] [files]").
		WithDescription("list properties of glTF assets, optionally filtered").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return ls(cfg, cc, args)
		})
	cfg.Ls = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithSynopsis("diff <a> <b>").
		WithDescription("diff two assets by their normalized JSON form").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("patch").
		WithAliases("p", "pa").
		WithSynopsis("patch [opts] <patch.json> <asset.{gltf,glb}>").
		WithDescription("apply a JSON patch to an asset's JSON tree").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}

func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ValidateConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("validate").
		WithAliases("v", "va").
		WithSynopsis("validate [files]").
		WithDescription("read assets strictly and report problems").
		WithRun(func(cc *cli.Context, args []string) error {
			return validate(cfg, cc, args)
		})
	cfg.Validate = cmd
	return cmd
}
