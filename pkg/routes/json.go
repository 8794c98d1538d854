package routes

import "encoding/json"

// JSON encoding of the configuration and manifest trees, consumed by the
// build tool and the rendering layer. Map keys are emitted sorted, so the
// encoded form is as deterministic as the trees themselves.

// MarshalJSON encodes the parameter kind as its string form.
func (p ParamKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// MarshalJSON encodes the intercept kind as its string form.
func (k InterceptKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// MarshalJSON encodes a configuration node with a "kind" discriminator.
func (c *RouteConfig) MarshalJSON() ([]byte, error) {
	kind := "node"
	if c.Kind == ConfigPage {
		kind = "page"
	}
	return json.Marshal(struct {
		Kind      string         `json:"kind"`
		Path      string         `json:"path"`
		Param     ParamKind      `json:"param,omitempty"`
		Intercept InterceptKind  `json:"intercept,omitempty"`
		File      string         `json:"file,omitempty"`
		Layout    string         `json:"layout,omitempty"`
		Scripts   []string       `json:"scripts,omitempty"`
		Children  []*RouteConfig `json:"children,omitempty"`
	}{kind, c.Path, c.Param, c.Intercept, c.File, c.Layout, c.Scripts, c.Children})
}

func (n *RouteNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind      string                    `json:"kind"`
		Segment   string                    `json:"segment"`
		Index     *RouteIndex               `json:"index,omitempty"`
		Fallbacks map[string]*RouteFallback `json:"fallbacks,omitempty"`
		Slots     map[string]Route          `json:"slots,omitempty"`
		Children  map[string]Route          `json:"children,omitempty"`
	}{"node", n.Seg, n.Index, n.Fallbacks, n.Slots, n.Children})
}

func (p *RoutePage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string    `json:"kind"`
		Segment string    `json:"segment"`
		Param   ParamKind `json:"param,omitempty"`
		Layouts []string  `json:"layouts,omitempty"`
		Partial string    `json:"partial"`
	}{"page", p.Seg, p.Param, p.Layouts, p.Partial})
}

func (i *RouteIndex) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string   `json:"kind"`
		Layouts []string `json:"layouts,omitempty"`
		Partial string   `json:"partial"`
	}{"index", i.Layouts, i.Partial})
}

func (f *RouteFallback) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string   `json:"kind"`
		Segment string   `json:"segment"`
		Layouts []string `json:"layouts,omitempty"`
		Partial string   `json:"partial"`
	}{"fallback", f.Seg, f.Layouts, f.Partial})
}

func (i *RouteIntercept) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     string           `json:"kind"`
		Segment  string           `json:"segment"`
		Base     []string         `json:"base"`
		Children map[string]Route `json:"children,omitempty"`
	}{"intercept", i.Seg, i.Base, i.Children})
}

func (p *RoutePublic) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind      string `json:"kind"`
		Segment   string `json:"segment"`
		Extension string `json:"extension,omitempty"`
	}{"public", p.Seg, p.Ext})
}
