package collections

import (
	"github.com/corvidhx/hlbridge/internal/hlrt"
	"github.com/corvidhx/hlbridge/internal/types"
)

// IsAbstract reports whether d describes an abstract type. Abstracts
// are compile-time wrappers only; at runtime a value of an abstract
// type is indistinguishable from its underlying kind (spec.md §4.5).
func IsAbstract(d *types.Descriptor) bool {
	return d.Kind == hlrt.KindAbstract
}

// AbstractName returns an abstract type's declared name.
func AbstractName(d *types.Descriptor) string {
	return d.Name
}
