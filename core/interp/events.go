// Package interp adapts the memory core (core/memory) to an interpreter
// collaborator, mirroring the shape of the teacher's MIRInterpreterAdapter:
// a thin struct wrapping the core engine, translating an external caller's
// calls into core operations and exposing Set*Hook-style injection points
// for observers.
package interp

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"

	"github.com/mir-project/llvmmem/core/memory"
)

// TraceHook observes every event dispatched through the Adapter, after the
// core has produced a result (or failed). Installed via SetTraceHook.
type TraceHook func(ev memory.Event, res memory.Result, err error)

// Adapter wraps a memory.Handler and memory.State the way
// MIRInterpreterAdapter wraps a compiler.MIRInterpreter and *EVM: it is the
// object an interpreter collaborator actually holds and calls into, per
// spec §6's "events consumed" list.
type Adapter struct {
	handler *memory.Handler
	state   memory.State
	decls   *DeclTable

	trace TraceHook
}

// NewAdapter returns an Adapter over a fresh empty memory state, wired with
// the built-in intrinsics and declared-intrinsics catalogue for cfg.
func NewAdapter(cfg memory.Config) *Adapter {
	return &Adapter{
		handler: memory.NewHandler(cfg),
		state:   memory.NewState(),
		decls:   NewDeclTable(cfg),
	}
}

// SetTraceHook installs a callback invoked after every dispatched event
// (testing/observability only), mirroring SetMIRGasProbe's pattern in the
// teacher adapter.
func (a *Adapter) SetTraceHook(hook TraceHook) { a.trace = hook }

// State returns the adapter's current memory state, for a caller that wants
// to snapshot or inspect it directly.
func (a *Adapter) State() memory.State { return a.state }

// Declarations returns the adapter's declared-intrinsics catalogue.
func (a *Adapter) Declarations() *DeclTable { return a.decls }

func (a *Adapter) dispatch(ev memory.Event) (memory.Result, error) {
	next, res, err := a.handler.Dispatch(a.state, ev)
	if a.trace != nil {
		a.trace(ev, res, err)
	}
	if err != nil {
		if _, isUB := err.(*memory.UB); isUB {
			log.Debug("interp: event signaled UB, state unchanged", "kind", ev.Kind)
		}
		return memory.Result{}, err
	}
	a.state = next
	return res, nil
}

// MemPush implements spec §6's MemPush.
func (a *Adapter) MemPush() error {
	_, err := a.dispatch(memory.Event{Kind: memory.EvMemPush})
	return err
}

// MemPop implements spec §6's MemPop.
func (a *Adapter) MemPop() error {
	_, err := a.dispatch(memory.Event{Kind: memory.EvMemPop})
	return err
}

// Alloca implements spec §6's Alloca(dtyp) -> address.
func (a *Adapter) Alloca(t memory.DType) (memory.Address, error) {
	res, err := a.dispatch(memory.Event{Kind: memory.EvAlloca, Type: t})
	if err != nil {
		return memory.Address{}, err
	}
	return res.Addr, nil
}

// Load implements spec §6's Load(dtyp, dvalue) -> uvalue.
func (a *Adapter) Load(t memory.DType, ptr memory.Address) (memory.UValue, error) {
	res, err := a.dispatch(memory.Event{Kind: memory.EvLoad, Type: t, Addr: ptr})
	if err != nil {
		return memory.UValue{}, err
	}
	return res.UValue, nil
}

// Store implements spec §6's Store(dvalue, dvalue) -> ().
func (a *Adapter) Store(ptr memory.Address, v memory.DValue) error {
	_, err := a.dispatch(memory.Event{Kind: memory.EvStore, Addr: ptr, Value: v})
	return err
}

// GEP implements spec §6's GEP(dtyp, dvalue, list<dvalue>) -> dvalue.
func (a *Adapter) GEP(t memory.DType, base memory.Address, indices []memory.DValue) (memory.Address, error) {
	res, err := a.dispatch(memory.Event{Kind: memory.EvGEP, Type: t, Addr: base, Indices: indices})
	if err != nil {
		return memory.Address{}, err
	}
	return res.Addr, nil
}

// ItoP implements spec §6's ItoP(dvalue) -> dvalue.
func (a *Adapter) ItoP(v memory.DValue) (memory.DValue, error) {
	res, err := a.dispatch(memory.Event{Kind: memory.EvItoP, Value: v})
	if err != nil {
		return memory.DValue{}, err
	}
	return res.DValue, nil
}

// PtoI implements spec §6's PtoI(dtyp, dvalue) -> dvalue.
func (a *Adapter) PtoI(t memory.DType, v memory.DValue) (memory.DValue, error) {
	res, err := a.dispatch(memory.Event{Kind: memory.EvPtoI, Type: t, Value: v})
	if err != nil {
		return memory.DValue{}, err
	}
	return res.DValue, nil
}

// Intrinsic implements spec §6's Intrinsic(dtyp, name, list<dvalue>) ->
// dvalue. The dtyp parameter is accepted for interface parity with the
// source signature but is not consulted: the implementation's return shape
// is determined by name, not by a caller-declared return type.
func (a *Adapter) Intrinsic(_ memory.DType, name string, args []memory.DValue) (memory.DValue, error) {
	if !a.decls.Declared(name) {
		return memory.DValue{}, &memory.Failure{Op: "intrinsic", Err: fmt.Errorf("%w: %q is not in the declared-intrinsics table", memory.ErrUnknownIntrinsic, name)}
	}
	res, err := a.dispatch(memory.Event{Kind: memory.EvIntrinsic, Name: name, Args: args})
	if err != nil {
		return memory.DValue{}, err
	}
	return res.DValue, nil
}
