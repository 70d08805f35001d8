package main

import (
	"fmt"
	"os"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"

	"github.com/sceneform/gltf"
	"github.com/sceneform/gltf/glb"
	"github.com/sceneform/gltf/read"
	"github.com/sceneform/gltf/wire"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch requires a patch file and a target asset", cli.ErrUsage)
	}
	patchData, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("error reading %s: %w", args[0], err)
	}
	raw, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("error reading %s: %w", args[1], err)
	}

	jsonBytes := raw
	var binChunk []byte
	isGLB := gltf.IsGLB(raw)
	if isGLB {
		jsonBytes, binChunk, err = glb.Decode(raw)
		if err != nil {
			return fmt.Errorf("error unframing %s: %w", args[1], err)
		}
	}

	var patched []byte
	if cfg.Merge {
		patched, err = jsonpatch.MergePatch(jsonBytes, patchData)
	} else {
		var p jsonpatch.Patch
		p, err = jsonpatch.DecodePatch(patchData)
		if err == nil {
			patched, err = p.Apply(jsonBytes)
		}
	}
	if err != nil {
		return fmt.Errorf("error applying patch: %w", err)
	}

	// the patched tree must still read as glTF
	resources := map[string][]byte{}
	if binChunk != nil {
		resources[wire.GLBResourceKey] = binChunk
	}
	checkOpts := append(cfg.readOpts(), read.Strict(false))
	if _, err := read.JSON(patched, resources, checkOpts...); err != nil {
		return fmt.Errorf("patched asset is invalid: %w", err)
	}

	if isGLB {
		_, err = cc.Out.Write(glb.Encode(patched, binChunk))
		return err
	}
	if _, err := cc.Out.Write(patched); err != nil {
		return err
	}
	_, err = cc.Out.Write([]byte{'\n'})
	return err
}
