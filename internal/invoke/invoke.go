// Package invoke implements spec.md §4.4 (C4): the four call shapes —
// static methods, static fields, instance members, and the cached call
// fast path — built on top of internal/types resolution and
// internal/value marshalling.
package invoke

import (
	"github.com/corvidhx/hlbridge/internal/errs"
	"github.com/corvidhx/hlbridge/internal/handle"
	"github.com/corvidhx/hlbridge/internal/hlrt"
	"github.com/corvidhx/hlbridge/internal/types"
	"github.com/corvidhx/hlbridge/internal/value"
)

// Engine binds a type resolver, a handle registry, and the loaded
// module's entry-point state together — everything the four call
// shapes need.
type Engine struct {
	mod     hlrt.Module
	res     *types.Resolver
	handles *handle.Registry

	entryRan bool
}

// New creates an invocation engine over an already-loaded module.
func New(mod hlrt.Module, res *types.Resolver, handles *handle.Registry) *Engine {
	return &Engine{mod: mod, res: res, handles: handles}
}

// MarkEntryRan records that the module's entry point has executed, so
// static field access stops failing with NotInitialized.
func (e *Engine) MarkEntryRan() { e.entryRan = true }

func (e *Engine) requireEntry() error {
	if !e.entryRan {
		return errs.New(errs.NotInitialized, "module entry point has not run; static access unavailable")
	}
	return nil
}

func (e *Engine) resolveClass(className string) (*types.Descriptor, error) {
	return e.res.FindType(className)
}

// coerceArgs applies spec.md §4.2's implicit argument coercion before
// a call: a host-constructed byte value passed where fn declares a
// String parameter is promoted in place, the same rewrite a Haxe
// caller's own String literal already carries (spec.md §9 — otherwise
// the VM rejects the argument signature).
func coerceArgs(fn hlrt.Function, args []*handle.Handle) {
	params := hlrt.FunctionParamTypes(fn)
	for i, a := range args {
		if a == nil || a.IsNull() || i >= len(params) {
			continue
		}
		if !hlrt.IsStringType(params[i]) {
			continue
		}
		argType := hlrt.TypeOf(a.Value())
		if argType.Kind() == hlrt.KindBytes && !hlrt.IsStringType(argType) {
			value.PromoteBytesToString(a)
		}
	}
}

func (e *Engine) callSafe(fn hlrt.Function, args []*handle.Handle) (*handle.Handle, error) {
	coerceArgs(fn, args)
	raw := make([]hlrt.Value, len(args))
	for i, a := range args {
		if a != nil {
			raw[i] = a.Value()
		}
	}
	ret, exc := hlrt.SafeCall(fn, raw)
	if !exc.IsNull() {
		return nil, errs.New(errs.ExceptionThrown, "VM raised an exception during call")
	}
	return e.handles.WrapBorrowed(ret), nil
}

// CallStatic invokes a static method by class and method name.
func (e *Engine) CallStatic(className, methodName string, argv []*handle.Handle) (*handle.Handle, error) {
	cls, err := e.resolveClass(className)
	if err != nil {
		return nil, err
	}
	idx, found := types.FindMethod(cls, methodName)
	if !found {
		return nil, errs.New(errs.MethodNotFound, "static method %s.%s not found", className, methodName)
	}
	findex := hlrt.ClassMethodFindex(cls.Type, idx)
	fn := e.mod.FunctionAt(findex)
	return e.callSafe(fn, argv)
}

// GetStaticField reads a static field by class and field name.
func (e *Engine) GetStaticField(className, fieldName string) (*handle.Handle, error) {
	if err := e.requireEntry(); err != nil {
		return nil, err
	}
	cls, err := e.resolveClass(className)
	if err != nil {
		return nil, err
	}
	idx, kind, found := types.FindField(cls, fieldName)
	if !found {
		return nil, errs.New(errs.FieldNotFound, "static field %s.%s not found", className, fieldName)
	}
	global := e.mod.GlobalValue(cls.Type)
	if global.IsNull() {
		return nil, errs.New(errs.FieldNotFound, "class %s has no static storage", className)
	}
	offset, _, ok := hlrt.FieldLookup(cls.Type, hlrt.HashName(fieldName))
	if !ok {
		offset = idx
	}
	return e.handles.WrapBorrowed(hlrt.GetField(global, offset, kind)), nil
}

// SetStaticField writes a static field by class and field name.
func (e *Engine) SetStaticField(className, fieldName string, v *handle.Handle) error {
	if err := e.requireEntry(); err != nil {
		return err
	}
	cls, err := e.resolveClass(className)
	if err != nil {
		return err
	}
	idx, kind, found := types.FindField(cls, fieldName)
	if !found {
		return errs.New(errs.FieldNotFound, "static field %s.%s not found", className, fieldName)
	}
	global := e.mod.GlobalValue(cls.Type)
	if global.IsNull() {
		return errs.New(errs.FieldNotFound, "class %s has no static storage", className)
	}
	offset, _, ok := hlrt.FieldLookup(cls.Type, hlrt.HashName(fieldName))
	if !ok {
		offset = idx
	}
	hlrt.SetField(global, offset, kind, v.Value())
	return nil
}

// NewInstance allocates an object of className and runs its
// constructor (spec.md §4.3/§4.4 — the synthesized
// "$Class.__constructor__" method, not "new"). The returned handle is
// rooted automatically.
func (e *Engine) NewInstance(className string, argv []*handle.Handle) (*handle.Handle, error) {
	cls, err := e.resolveClass(className)
	if err != nil {
		return nil, err
	}
	ctorName := types.ConstructorName(className)
	idx, found := types.FindMethod(cls, ctorName)
	if !found {
		return nil, errs.New(errs.MethodNotFound, "constructor %s not found", ctorName)
	}
	findex := hlrt.ClassMethodFindex(cls.Type, idx)
	fn := e.mod.FunctionAt(findex)

	obj := hlrt.AllocObj(cls.Type)
	if len(argv) == 0 {
		hlrt.DirectCall0(fn)
	} else {
		full := make([]*handle.Handle, 0, len(argv)+1)
		self := e.handles.WrapBorrowed(obj)
		full = append(full, self)
		full = append(full, argv...)
		if _, err := e.callSafe(fn, full); err != nil {
			return nil, err
		}
	}
	return e.handles.WrapRooted(obj)
}

// GetField reads an instance field by name.
func (e *Engine) GetField(recv *handle.Handle, fieldName string) (*handle.Handle, error) {
	if recv == nil || recv.IsNull() {
		return nil, errs.New(errs.NullValue, "cannot read field on null receiver")
	}
	d, err := e.descriptorOf(recv)
	if err != nil {
		return nil, err
	}
	idx, kind, found := types.FindField(d, fieldName)
	if !found {
		return nil, errs.New(errs.FieldNotFound, "field %s not found on %s", fieldName, d.Name)
	}
	offset, _, ok := hlrt.FieldLookup(d.Type, hlrt.HashName(fieldName))
	if !ok {
		offset = idx
	}
	return e.handles.WrapBorrowed(hlrt.GetField(recv.Value(), offset, kind)), nil
}

// SetField writes an instance field by name.
func (e *Engine) SetField(recv *handle.Handle, fieldName string, v *handle.Handle) error {
	if recv == nil || recv.IsNull() {
		return errs.New(errs.NullValue, "cannot write field on null receiver")
	}
	d, err := e.descriptorOf(recv)
	if err != nil {
		return err
	}
	idx, kind, found := types.FindField(d, fieldName)
	if !found {
		return errs.New(errs.FieldNotFound, "field %s not found on %s", fieldName, d.Name)
	}
	offset, _, ok := hlrt.FieldLookup(d.Type, hlrt.HashName(fieldName))
	if !ok {
		offset = idx
	}
	hlrt.SetField(recv.Value(), offset, kind, v.Value())
	return nil
}

// CallMethod invokes an instance method by name, threading recv as the
// implicit first argument.
func (e *Engine) CallMethod(recv *handle.Handle, methodName string, argv []*handle.Handle) (*handle.Handle, error) {
	if recv == nil || recv.IsNull() {
		return nil, errs.New(errs.NullValue, "cannot call method on null receiver")
	}
	d, err := e.descriptorOf(recv)
	if err != nil {
		return nil, err
	}
	idx, found := findMethodInChain(e, d, methodName)
	if !found {
		return nil, errs.New(errs.MethodNotFound, "method %s not found on %s", methodName, d.Name)
	}
	findex := hlrt.ClassMethodFindex(d.Type, idx)
	fn := e.mod.FunctionAt(findex)

	full := make([]*handle.Handle, 0, len(argv)+1)
	full = append(full, recv)
	full = append(full, argv...)
	return e.callSafe(fn, full)
}

// IsInstanceOf walks recv's superclass chain, returning true if
// className appears anywhere in it.
func (e *Engine) IsInstanceOf(recv *handle.Handle, className string) bool {
	if recv == nil || recv.IsNull() {
		return false
	}
	d, err := e.descriptorOf(recv)
	if err != nil {
		return false
	}
	for cur := d; cur != nil; cur = e.res.Super(cur) {
		if cur.Name == className {
			return true
		}
	}
	return false
}

func (e *Engine) descriptorOf(recv *handle.Handle) (*types.Descriptor, error) {
	v := recv.Value()
	name := hlrt.TypeName(hlrt.TypeOf(v))
	d, err := e.res.FindType(name)
	if err != nil {
		return nil, errs.Wrap(errs.TypeNotFound, err, "receiver's runtime type %q not registered", name)
	}
	return d, nil
}

func findMethodInChain(e *Engine, d *types.Descriptor, name string) (int, bool) {
	for cur := d; cur != nil; cur = e.res.Super(cur) {
		if idx, found := types.FindMethod(cur, name); found {
			return idx, true
		}
	}
	return 0, false
}

// CachedCall is a pre-resolved static-method function value, rooted
// for repeated invocation, skipping name hashing on every call (spec.md
// §4.4 — roughly an order of magnitude cheaper than the uncached
// path).
type CachedCall struct {
	fn       hlrt.Function
	released bool
}

// CacheStatic resolves a static method once and roots its function
// value for reuse across many calls.
func (e *Engine) CacheStatic(className, methodName string) (*CachedCall, error) {
	cls, err := e.resolveClass(className)
	if err != nil {
		return nil, err
	}
	idx, found := types.FindMethod(cls, methodName)
	if !found {
		return nil, errs.New(errs.MethodNotFound, "static method %s.%s not found", className, methodName)
	}
	findex := hlrt.ClassMethodFindex(cls.Type, idx)
	cc := &CachedCall{fn: e.mod.FunctionAt(findex)}
	hlrt.RootFunction(&cc.fn)
	return cc, nil
}

// CallCached invokes a previously cached call, skipping all name
// resolution.
func (e *Engine) CallCached(cc *CachedCall, argv []*handle.Handle) (*handle.Handle, error) {
	if cc == nil || cc.released {
		return nil, errs.New(errs.InvalidArgument, "cached call already released or nil")
	}
	return e.callSafe(cc.fn, argv)
}

// ReleaseCached releases a cached call's rooted function value.
// Idempotent.
func (e *Engine) ReleaseCached(cc *CachedCall) {
	if cc == nil || cc.released {
		return
	}
	hlrt.UnrootFunction(&cc.fn)
	cc.released = true
}
