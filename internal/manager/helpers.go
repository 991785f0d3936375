package manager

import (
	"fmt"

	"medpredict/internal/features"
	"medpredict/pkg/types"
)

// Helper: find model in registry by id.
func (m *Manager) getModelByID(id string) (types.Model, bool) {
	for _, mdl := range m.registry {
		if mdl.ID == id {
			return mdl, true
		}
	}
	return types.Model{}, false
}

// bindModels resolves the model serving each disease. Explicit bindings win;
// otherwise the first registered model (registry order) for a known disease is used.
// Explicit bindings naming an unregistered model, or a model trained for
// another disease, are left out and reported per disease.
func bindModels(reg []types.Model, explicit map[string]string) (map[string]string, map[string]error) {
	out := make(map[string]string)
	byID := make(map[string]types.Model, len(reg))
	for _, mdl := range reg {
		if _, dup := byID[mdl.ID]; !dup {
			byID[mdl.ID] = mdl
		}
		if _, ok := features.Lookup(mdl.Disease); !ok {
			continue
		}
		if _, bound := out[mdl.Disease]; !bound {
			out[mdl.Disease] = mdl.ID
		}
	}
	bad := make(map[string]error)
	for disease, id := range explicit {
		if id == "" {
			delete(out, disease)
			continue
		}
		mdl, ok := byID[id]
		switch {
		case !ok:
			bad[disease] = bindingError{msg: fmt.Sprintf("%s is bound to model %s, which is not registered", disease, id)}
		case mdl.Disease != disease:
			bad[disease] = bindingError{msg: fmt.Sprintf("%s is bound to model %s, which serves %s", disease, id, mdl.Disease)}
		default:
			out[disease] = id
			continue
		}
		delete(out, disease)
	}
	return out, bad
}
