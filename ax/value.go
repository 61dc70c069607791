// Copyright 2026 Asma Gulbaz

// Marshalling of raw driver values into domain values

package ax

import (
	"github.com/AsmaGulbaz/AXElements/axdriver"
)

// wrap converts a raw driver value into its domain form. Scalars and
// geometry pass through; nested handles become Elements; sequences are
// wrapped element-wise. Handles that fail to wrap (gone between the read and
// the wrap) are dropped from sequences and become nil scalars — the caller
// observes absence rather than an error, consistent with the read policy.
func (e *Element) wrap(raw axdriver.Value) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case axdriver.Handle:
		child, err := NewElement(e.drv, v)
		if err != nil {
			log().Debug("wrapping nested handle failed", "handle", v, "err", err)
			return nil, nil
		}
		return child, nil
	case []axdriver.Value:
		out := make([]any, 0, len(v))
		for _, item := range v {
			w, err := e.wrap(item)
			if err != nil {
				return nil, err
			}
			if w != nil {
				out = append(out, w)
			}
		}
		return out, nil
	default:
		return v, nil
	}
}

// unwrapValue converts a domain value back to its raw driver form for
// writes: Elements become their handles, everything else passes through.
func unwrapValue(v any) axdriver.Value {
	if el, ok := v.(*Element); ok {
		return el.handle
	}
	return v
}
