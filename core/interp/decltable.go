package interp

import (
	"github.com/mir-project/llvmmem/core/memory"
)

// Declaration carries an LLVM-level function signature, per spec §6: an
// exact LLVM symbol name, its return type, and its parameter types.
type Declaration struct {
	Name   string
	Ret    memory.DType
	Params []memory.DType
}

// DeclTable is the ordered (declaration, implementation) catalogue
// described in spec §6, grouped by category the way mir_gas_table.go groups
// its init() registrations by comment header. A client-provided table may
// extend the built-ins via Register.
type DeclTable struct {
	order []string
	decls map[string]Declaration
}

// NewDeclTable returns a DeclTable pre-populated with the built-in
// intrinsics' declarations for cfg (mirroring which names
// memory.NewIntrinsicTable registers for the same cfg), plus the memcpy
// declaration, which memory.Handler serves directly rather than through
// that table.
func NewDeclTable(cfg memory.Config) *DeclTable {
	t := &DeclTable{
		decls: make(map[string]Declaration),
	}

	// Float unary/binary builtins.
	t.Register(Declaration{Name: "llvm.fabs.f32", Ret: memory.FloatType(), Params: []memory.DType{memory.FloatType()}})
	t.Register(Declaration{Name: "llvm.fabs.f64", Ret: memory.DoubleType(), Params: []memory.DType{memory.DoubleType()}})
	t.Register(Declaration{Name: "llvm.maxnum.f32", Ret: memory.FloatType(), Params: []memory.DType{memory.FloatType(), memory.FloatType()}})
	t.Register(Declaration{Name: "llvm.maxnum.f64", Ret: memory.DoubleType(), Params: []memory.DType{memory.DoubleType(), memory.DoubleType()}})
	t.Register(Declaration{Name: "minimum.f32", Ret: memory.FloatType(), Params: []memory.DType{memory.FloatType(), memory.FloatType()}})
	t.Register(Declaration{Name: "llvm.minimum.f64", Ret: memory.DoubleType(), Params: []memory.DType{memory.DoubleType(), memory.DoubleType()}})
	if cfg.StrictIntrinsicNames {
		t.Register(Declaration{Name: "llvm.minimum.f32", Ret: memory.FloatType(), Params: []memory.DType{memory.FloatType(), memory.FloatType()}})
	}

	// Block-store-backed builtins.
	t.Register(Declaration{
		Name: "llvm.memcpy.p0i8.p0i8.i32",
		Ret:  memory.VoidType(),
		Params: []memory.DType{
			memory.PointerType(), memory.PointerType(),
			memory.IntType(32), memory.IntType(32), memory.IntType(1),
		},
	})

	return t
}

// Register adds decl to the catalogue, or replaces an existing declaration
// under the same name in place (preserving its position in Ordered).
func (t *DeclTable) Register(decl Declaration) {
	if _, ok := t.decls[decl.Name]; !ok {
		t.order = append(t.order, decl.Name)
	}
	t.decls[decl.Name] = decl
}

// Lookup returns the declaration registered under name.
func (t *DeclTable) Lookup(name string) (Declaration, bool) {
	d, ok := t.decls[name]
	return d, ok
}

// Declared reports whether name is registered.
func (t *DeclTable) Declared(name string) bool {
	_, ok := t.decls[name]
	return ok
}

// Ordered returns the catalogue's declarations in registration order.
func (t *DeclTable) Ordered() []Declaration {
	out := make([]Declaration, len(t.order))
	for i, name := range t.order {
		out[i] = t.decls[name]
	}
	return out
}
