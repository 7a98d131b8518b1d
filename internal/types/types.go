// Package types implements spec.md §4.3 (C3): locating VM types and
// their members by name, and exposing introspection over the resolved
// descriptors. Types are found through a name-keyed map built once per
// module; fields and methods are found by a linear scan of the type's
// declared fields or vtable. Descriptors are cached for the lifetime of
// the module that produced them.
package types

import (
	"sync"

	"github.com/corvidhx/hlbridge/internal/errs"
	"github.com/corvidhx/hlbridge/internal/hlrt"
)

// Kind mirrors hlrt.Kind for callers that don't otherwise import hlrt.
type Kind = hlrt.Kind

// Descriptor is a resolved VM type: its name, type pointer and kind
// (spec.md §4.3's TypeDescriptor). It holds no member index; FindField
// and FindMethod walk the type's fields or vtable on every call.
type Descriptor struct {
	Name string
	Type hlrt.Type
	Kind Kind
}

// Field describes one instance field of a class descriptor.
type Field struct {
	Name string
	Kind Kind
}

// Method describes one vtable entry of a class descriptor.
type Method struct {
	Name string
}

// ConstructorSuffix is the fixed suffix of the synthesized name the VM
// gives every class constructor: not "new", but a method named after
// the sigil-prefixed class name with this suffix (spec.md §4.3/§9).
const ConstructorSuffix = "__constructor__"

// Resolver caches type descriptors for one loaded module. Safe for
// concurrent use; resolution results never change for the module's
// lifetime, so the cache never invalidates except on Reset (called
// after a hot reload swaps the module, spec.md §4.9).
type Resolver struct {
	mod hlrt.Module

	mu       sync.RWMutex
	byName   map[string]*Descriptor
	byHash   map[uint32]*Descriptor
	allTypes []*Descriptor
	loaded   bool
}

// NewResolver creates a resolver bound to mod. Callers build the name
// index lazily on first FindType/ListTypes call, not at construction,
// so VM instances that never introspect pay nothing for it.
func NewResolver(mod hlrt.Module) *Resolver {
	return &Resolver{mod: mod, byName: make(map[string]*Descriptor), byHash: make(map[uint32]*Descriptor)}
}

// Reset drops all cached descriptors and rebinds the resolver to a
// freshly reloaded module. Existing *Descriptor values handed out
// before the reload remain valid as Go values but now describe a
// superseded VmType; callers must re-resolve after a reload completes
// (spec.md §4.9's reload-safety requirement).
func (r *Resolver) Reset(mod hlrt.Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mod = mod
	r.byName = make(map[string]*Descriptor)
	r.byHash = make(map[uint32]*Descriptor)
	r.allTypes = nil
	r.loaded = false
}

func (r *Resolver) ensureLoaded() {
	r.mu.RLock()
	loaded := r.loaded
	r.mu.RUnlock()
	if loaded {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded {
		return
	}
	n := r.mod.TypeCount()
	for i := 0; i < n; i++ {
		t := r.mod.TypeAt(i)
		name := hlrt.TypeName(t)
		if name == "" {
			continue
		}
		d := &Descriptor{Name: name, Type: t, Kind: t.Kind()}
		r.byName[name] = d
		r.byHash[hlrt.HashName(name)] = d
		r.allTypes = append(r.allTypes, d)
	}
	r.loaded = true
}

// FindType resolves a fully-qualified, case-sensitive type name.
func (r *Resolver) FindType(name string) (*Descriptor, error) {
	r.ensureLoaded()
	r.mu.RLock()
	d, ok := r.byName[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errs.New(errs.TypeNotFound, "type %q not found", name)
	}
	return d, nil
}

// ListTypes invokes visit for every type known to the module, in
// bytecode declaration order. Stops early if visit returns false.
func (r *Resolver) ListTypes(visit func(*Descriptor) bool) {
	r.ensureLoaded()
	r.mu.RLock()
	all := r.allTypes
	r.mu.RUnlock()
	for _, d := range all {
		if !visit(d) {
			return
		}
	}
}

// Super returns d's declared superclass, or nil if it has none or is
// not a class.
func (r *Resolver) Super(d *Descriptor) *Descriptor {
	super, ok := hlrt.ClassSuper(d.Type)
	if !ok {
		return nil
	}
	name := hlrt.TypeName(super)
	if name == "" {
		return nil
	}
	r.ensureLoaded()
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[name]
}

// FieldCount returns the number of instance fields declared directly
// on d (not counting inherited fields).
func FieldCount(d *Descriptor) int {
	return hlrt.ClassFieldCount(d.Type)
}

// FieldAt returns d's nth directly-declared field.
func FieldAt(d *Descriptor, i int) Field {
	name, kind := hlrt.ClassFieldAt(d.Type, i)
	return Field{Name: name, Kind: kind}
}

// MethodCount returns the number of vtable entries on d.
func MethodCount(d *Descriptor) int {
	return hlrt.ClassMethodCount(d.Type)
}

// MethodAt returns the name of d's nth vtable entry.
func MethodAt(d *Descriptor, i int) Method {
	return Method{Name: hlrt.ClassMethodAt(d.Type, i)}
}

// ConstructorName returns the synthesized constructor method name for
// the class whose plain name is className; the sigil is prepended here
// (spec.md §4.3/§9 — "$<ClassName>.__constructor__", not "new").
func ConstructorName(className string) string {
	return "$" + className + "." + ConstructorSuffix
}

// FindMethod returns the vtable index of the method named name on d,
// or found=false if no such method exists.
func FindMethod(d *Descriptor, name string) (index int, found bool) {
	n := MethodCount(d)
	for i := 0; i < n; i++ {
		if MethodAt(d, i).Name == name {
			return i, true
		}
	}
	return 0, false
}

// FindField returns the index of the field named name on d, searching
// only fields declared directly on d (not inherited ones — callers
// walk Super themselves, matching how the VM lays out field offsets
// per class rather than flattening them).
func FindField(d *Descriptor, name string) (index int, kind Kind, found bool) {
	n := FieldCount(d)
	for i := 0; i < n; i++ {
		f := FieldAt(d, i)
		if f.Name == name {
			return i, f.Kind, true
		}
	}
	return 0, 0, false
}
