package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/sceneform/gltf/ext"
	"github.com/sceneform/gltf/ext/specular"
	"github.com/sceneform/gltf/read"
	"github.com/sceneform/gltf/write"
)

type MainConfig struct {
	Lax   bool `cli:"name=lax desc='recover unresolved resources as null payloads'"`
	Net   bool `cli:"name=net desc='allow resolving http(s) resource URIs'"`
	Color bool `cli:"name=color desc='force colored output'"`

	File *FileConfig

	Out      string
	CloseOut func() error

	Registry *ext.Registry

	Main *cli.Command
}

// FileConfig holds the defaults read from gltfc.yaml in the working
// directory or the home directory. Command-line options override it.
type FileConfig struct {
	Basename string `yaml:"basename"`
	Layout   string `yaml:"layout"`
	Embed    bool   `yaml:"embed"`
	Lax      bool   `yaml:"lax"`
	Net      bool   `yaml:"net"`
}

func loadFileConfig() (*FileConfig, error) {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	for _, dir := range dirs {
		data, err := os.ReadFile(filepath.Join(dir, "gltfc.yaml"))
		if err != nil {
			continue
		}
		fc := &FileConfig{}
		if err := yaml.Unmarshal(data, fc); err != nil {
			return nil, fmt.Errorf("%w: gltfc.yaml: %v", cli.ErrUsage, err)
		}
		return fc, nil
	}
	return &FileConfig{}, nil
}

func defaultRegistry() *ext.Registry {
	reg := ext.NewRegistry()
	if err := reg.Register(specular.New()); err != nil {
		panic(err)
	}
	return reg
}

func (cfg *MainConfig) readOpts() []read.Option {
	opts := []read.Option{
		read.WithLogger(theLog),
		read.WithExtensions(cfg.Registry),
		read.Strict(!(cfg.Lax || cfg.File.Lax)),
	}
	if cfg.Net || cfg.File.Net {
		opts = append(opts, read.AllowNetwork(true))
	}
	return opts
}

// colored reports whether output to w should use color: forced by
// -color, otherwise only when w is a terminal.
func (cfg *MainConfig) colored(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// heading returns a sprintf that colors section headings.
func (cfg *MainConfig) heading(w io.Writer) func(format string, a ...any) string {
	c := color.New(color.FgCyan, color.Bold)
	if cfg.colored(w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprintf
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

type ConvertConfig struct {
	*MainConfig
	Basename string `cli:"name=basename desc='stem for generated resource names'"`
	Layout   string `cli:"name=layout desc='vertex layout: interleaved or separate'"`
	Embed    bool   `cli:"name=embed desc='inline resources as base64 data URIs'"`

	Convert *cli.Command
}

func (cfg *ConvertConfig) writeOpts() ([]write.Option, error) {
	opts := []write.Option{
		write.WithLogger(theLog),
		write.WithExtensions(cfg.Registry),
	}
	basename := cfg.Basename
	if basename == "" {
		basename = cfg.File.Basename
	}
	if basename != "" {
		opts = append(opts, write.Basename(basename))
	}
	layout := cfg.Layout
	if layout == "" {
		layout = cfg.File.Layout
	}
	switch layout {
	case "", "interleaved":
	case "separate":
		opts = append(opts, write.VertexLayout(write.Separate))
	default:
		return nil, fmt.Errorf("%w: unknown layout %q", cli.ErrUsage, layout)
	}
	if cfg.Embed || cfg.File.Embed {
		opts = append(opts, write.EmbedResources(true))
	}
	return opts, nil
}

type StatConfig struct {
	*MainConfig

	Stat *cli.Command
}

type LsConfig struct {
	*MainConfig
	Kind  string `cli:"name=k aliases=kind desc='property kind to list (default all)'"`
	Where string `cli:"name=where desc='filter expression, e.g. \"count > 100\"'"`

	Ls *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge bool `cli:"name=merge desc='treat the patch as an RFC 7386 merge patch'"`

	Patch *cli.Command
}

type ValidateConfig struct {
	*MainConfig

	Validate *cli.Command
}
