// Package debug provides environment-gated tracing for the read and
// write pipelines. Switches are read once at startup:
//
//	GLTF_DEBUG_READ   trace read pipeline stages
//	GLTF_DEBUG_WRITE  trace write pipeline stages
//	GLTF_DEBUG_GRAPH  trace graph link/dispose activity
//	GLTF_DEBUG_EXT    trace extension hook dispatch
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Read  bool
	Write bool
	Graph bool
	Ext   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Read = boolEnv("GLTF_DEBUG_READ")
	d.Write = boolEnv("GLTF_DEBUG_WRITE")
	d.Graph = boolEnv("GLTF_DEBUG_GRAPH")
	d.Ext = boolEnv("GLTF_DEBUG_EXT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Read() bool {
	return d.Read
}
func Write() bool {
	return d.Write
}
func Graph() bool {
	return d.Graph
}
func Ext() bool {
	return d.Ext
}
