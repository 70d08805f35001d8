// Package specular implements KHR_materials_specular: a per-material
// specular strength and color layered onto the core PBR model. It doubles
// as the reference implementation of the ext hook protocol.
package specular

import (
	"encoding/json"
	"fmt"

	"github.com/sceneform/gltf/ext"
	"github.com/sceneform/gltf/model"
	"github.com/sceneform/gltf/wire"
)

const ExtensionName = "KHR_materials_specular"

// Specular is the extension property attached to a Material.
type Specular struct {
	model.ExtensionPropertyBase
	factor float64
	color  [3]float64
}

// NewSpecular creates a Specular with the schema defaults (factor 1,
// white color), registered with d.
func NewSpecular(d *model.Document) *Specular {
	s := &Specular{factor: 1, color: [3]float64{1, 1, 1}}
	d.InitExtensionProperty(s)
	return s
}

func (s *Specular) ExtensionName() string { return ExtensionName }

func (s *Specular) Factor() float64 { return s.factor }

func (s *Specular) SetFactor(v float64) { s.factor = v }

func (s *Specular) Color() [3]float64 { return s.color }

func (s *Specular) SetColor(v [3]float64) { s.color = v }

type specularJSON struct {
	SpecularFactor      *float64    `json:"specularFactor,omitempty"`
	SpecularColorFactor *[3]float64 `json:"specularColorFactor,omitempty"`
}

// Extension is the stateless hook implementation.
type Extension struct{}

func New() Extension { return Extension{} }

func (Extension) ExtensionName() string { return ExtensionName }

func (Extension) Required() bool { return false }

func (Extension) PrereadTypes() []model.Type { return nil }

func (Extension) PrewriteTypes() []model.Type { return nil }

func (Extension) PreRead(*ext.ReadContext) error { return nil }

func (Extension) PreWrite(*ext.WriteContext) error { return nil }

func (Extension) Read(c *ext.ReadContext) error {
	for i := range c.JSON.Materials {
		raw, ok := c.JSON.Materials[i].Extensions[ExtensionName]
		if !ok {
			continue
		}
		var w specularJSON
		if err := json.Unmarshal(raw, &w); err != nil {
			return fmt.Errorf("%w: %s on material %d: %v", wire.ErrFormat, ExtensionName, i, err)
		}
		s := NewSpecular(c.Doc)
		if w.SpecularFactor != nil {
			s.SetFactor(*w.SpecularFactor)
		}
		if w.SpecularColorFactor != nil {
			s.SetColor(*w.SpecularColorFactor)
		}
		if err := c.Materials[i].SetExtension(ExtensionName, s); err != nil {
			return err
		}
	}
	return nil
}

func (Extension) Write(c *ext.WriteContext) error {
	for m, idx := range c.MaterialIndex {
		ep := m.GetExtension(ExtensionName)
		if ep == nil {
			continue
		}
		s, ok := ep.(*Specular)
		if !ok {
			return fmt.Errorf("%w: %s holds %T", wire.ErrUsage, ExtensionName, ep)
		}
		w := specularJSON{}
		if s.factor != 1 {
			f := s.factor
			w.SpecularFactor = &f
		}
		if s.color != [3]float64{1, 1, 1} {
			col := s.color
			w.SpecularColorFactor = &col
		}
		raw, err := json.Marshal(w)
		if err != nil {
			return err
		}
		if c.JSON.Materials[idx].Extensions == nil {
			c.JSON.Materials[idx].Extensions = wire.Extensions{}
		}
		c.JSON.Materials[idx].Extensions[ExtensionName] = raw
		c.MarkUsed(ExtensionName, false)
	}
	return nil
}
