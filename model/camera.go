package model

import "github.com/sceneform/gltf/wire"

// Camera is a perspective or orthographic projection. Exactly one of the
// two projections is set.
type Camera struct {
	propBase
	perspective  *wire.CameraPerspective
	orthographic *wire.CameraOrthographic
}

// Projection returns "perspective" or "orthographic", or "" when unset.
func (c *Camera) Projection() string {
	switch {
	case c.perspective != nil:
		return "perspective"
	case c.orthographic != nil:
		return "orthographic"
	}
	return ""
}

func (c *Camera) Perspective() *wire.CameraPerspective { return c.perspective }

func (c *Camera) SetPerspective(p *wire.CameraPerspective) {
	c.perspective = p
	if p != nil {
		c.orthographic = nil
	}
}

func (c *Camera) Orthographic() *wire.CameraOrthographic { return c.orthographic }

func (c *Camera) SetOrthographic(o *wire.CameraOrthographic) {
	c.orthographic = o
	if o != nil {
		c.perspective = nil
	}
}
