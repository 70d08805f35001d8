package model

import "github.com/sceneform/gltf/graph"

// Animation owns an ordered list of channels and samplers.
type Animation struct {
	propBase
	channels refList[*AnimationChannel]
	samplers refList[*AnimationSampler]
}

func (a *Animation) ListChannels() []*AnimationChannel { return a.channels.list() }

func (a *Animation) AddChannel(c *AnimationChannel) error {
	return addRef(a, "channels", &a.channels, c, graph.OwnedList)
}

func (a *Animation) RemoveChannel(c *AnimationChannel) {
	removeRef(a, &a.channels, c)
}

func (a *Animation) ListSamplers() []*AnimationSampler { return a.samplers.list() }

func (a *Animation) AddSampler(s *AnimationSampler) error {
	return addRef(a, "samplers", &a.samplers, s, graph.OwnedList)
}

func (a *Animation) RemoveSampler(s *AnimationSampler) {
	removeRef(a, &a.samplers, s)
}

// AnimationChannel routes one sampler's keyframes onto one node path
// (translation, rotation, scale, or weights).
type AnimationChannel struct {
	propBase
	targetNode ref[*Node]
	targetPath string
	sampler    ref[*AnimationSampler]
}

func (c *AnimationChannel) TargetNode() *Node { return c.targetNode.get() }

func (c *AnimationChannel) SetTargetNode(n *Node) error {
	return setRef(c, "targetNode", &c.targetNode, n, graph.Shared)
}

func (c *AnimationChannel) TargetPath() string { return c.targetPath }

func (c *AnimationChannel) SetTargetPath(p string) { c.targetPath = p }

func (c *AnimationChannel) Sampler() *AnimationSampler { return c.sampler.get() }

func (c *AnimationChannel) SetSampler(s *AnimationSampler) error {
	return setRef(c, "sampler", &c.sampler, s, graph.Shared)
}

// AnimationSampler pairs an input (keyframe times) accessor with an output
// (values) accessor under an interpolation mode.
type AnimationSampler struct {
	propBase
	input         ref[*Accessor]
	output        ref[*Accessor]
	interpolation string
}

func (s *AnimationSampler) Input() *Accessor { return s.input.get() }

func (s *AnimationSampler) SetInput(a *Accessor) error {
	return setRef(s, "input", &s.input, a, graph.Shared)
}

func (s *AnimationSampler) Output() *Accessor { return s.output.get() }

func (s *AnimationSampler) SetOutput(a *Accessor) error {
	return setRef(s, "output", &s.output, a, graph.Shared)
}

func (s *AnimationSampler) Interpolation() string { return s.interpolation }

func (s *AnimationSampler) SetInterpolation(v string) { s.interpolation = v }
