package motion

import "github.com/vk/xrprofiles/internal/profile"

// ResponseValue is the resolved output of one visual response for the
// current frame. For transform responses the viewer interpolates the value
// node between the two extreme nodes by Weight; for visibility responses it
// toggles the value node by Visible.
type ResponseValue struct {
	Property profile.ResponseProperty
	Weight   float64
	Visible  bool
}

// ResponseValues resolves every visual response of one interactive
// component against its current values. Responses whose state list does not
// include the component's current state sit at their rest value.
func (c *Controller) ResponseValues(componentID string) (map[string]ResponseValue, bool) {
	v, ok := c.values[componentID]
	if !ok {
		return nil, false
	}
	component := c.layout.Components[componentID]

	out := make(map[string]ResponseValue, len(component.VisualResponses))
	for name, r := range component.VisualResponses {
		out[name] = resolveResponse(r, v)
	}
	return out, true
}

func resolveResponse(r profile.VisualResponse, v ComponentValues) ResponseValue {
	active := r.AppliesTo(v.State)
	rv := ResponseValue{Property: r.Property}

	if r.Property == profile.PropertyVisibility {
		rv.Visible = active
		return rv
	}
	if !active {
		return rv
	}

	switch r.Source {
	case profile.SourceButton:
		rv.Weight = v.Button
	case profile.SourceXAxis:
		rv.Weight = normalizeAxis(v.XAxis)
	case profile.SourceYAxis:
		rv.Weight = normalizeAxis(v.YAxis)
	case profile.SourceState:
		rv.Weight = 1
	}
	return rv
}
