package memory

import (
	"math"
	"testing"
)

func TestFabs32AndFabs64(t *testing.T) {
	tbl := NewIntrinsicTable(DefaultConfig)

	v, err := tbl.Call("llvm.fabs.f32", []DValue{DF32(-2.5)})
	if err != nil || v.F32 != 2.5 {
		t.Fatalf("fabs.f32(-2.5) = %+v, err %v", v, err)
	}
	v, err = tbl.Call("llvm.fabs.f64", []DValue{DF64(-3.5)})
	if err != nil || v.F64 != 3.5 {
		t.Fatalf("fabs.f64(-3.5) = %+v, err %v", v, err)
	}
}

func TestMaxnumPicksLarger(t *testing.T) {
	tbl := NewIntrinsicTable(DefaultConfig)
	v, err := tbl.Call("llvm.maxnum.f32", []DValue{DF32(1), DF32(2)})
	if err != nil || v.F32 != 2 {
		t.Fatalf("maxnum.f32(1,2) = %+v, err %v", v, err)
	}
	v, err = tbl.Call("llvm.maxnum.f64", []DValue{DF64(5), DF64(2)})
	if err != nil || v.F64 != 5 {
		t.Fatalf("maxnum.f64(5,2) = %+v, err %v", v, err)
	}
}

func TestMinimumPicksSmaller(t *testing.T) {
	tbl := NewIntrinsicTable(DefaultConfig)
	v, err := tbl.Call("minimum.f32", []DValue{DF32(1), DF32(2)})
	if err != nil || v.F32 != 1 {
		t.Fatalf("minimum.f32(1,2) = %+v, err %v", v, err)
	}
	v, err = tbl.Call("llvm.minimum.f64", []DValue{DF64(5), DF64(2)})
	if err != nil || v.F64 != 2 {
		t.Fatalf("minimum.f64(5,2) = %+v, err %v", v, err)
	}
}

func TestMaxnumNaNPayloadPreserved(t *testing.T) {
	tbl := NewIntrinsicTable(DefaultConfig)
	nan := math.Float32frombits(0x7fc00001)
	v, err := tbl.Call("llvm.maxnum.f32", []DValue{DF32(nan), DF32(1)})
	if err != nil {
		t.Fatalf("maxnum.f32: %v", err)
	}
	if !math.IsNaN(float64(v.F32)) {
		t.Fatalf("expected a NaN result, got %v", v.F32)
	}
	if math.Float32bits(v.F32) != math.Float32bits(nan) {
		t.Fatalf("expected the operand's NaN payload preserved, got bits %x", math.Float32bits(v.F32))
	}
}

func TestStrictIntrinsicNamesAddsCorrectedAlias(t *testing.T) {
	lenient := NewIntrinsicTable(DefaultConfig)
	if _, ok := lenient.Lookup("llvm.minimum.f32"); ok {
		t.Fatal("llvm.minimum.f32 should not be registered under the default config")
	}

	strict := NewIntrinsicTable(Config{StrictIntrinsicNames: true})
	if _, ok := strict.Lookup("llvm.minimum.f32"); !ok {
		t.Fatal("llvm.minimum.f32 should be registered under StrictIntrinsicNames")
	}
	if _, ok := strict.Lookup("minimum.f32"); !ok {
		t.Fatal("the source-faithful minimum.f32 name must still be registered under StrictIntrinsicNames")
	}
}

func TestUnknownIntrinsicFails(t *testing.T) {
	tbl := NewIntrinsicTable(DefaultConfig)
	_, err := tbl.Call("llvm.not.a.real.intrinsic", nil)
	if err == nil {
		t.Fatal("expected an error for an unregistered intrinsic")
	}
}

func TestIntrinsicArgTypeMismatch(t *testing.T) {
	tbl := NewIntrinsicTable(DefaultConfig)
	_, err := tbl.Call("llvm.fabs.f32", []DValue{DF64(1)})
	if err == nil {
		t.Fatal("expected an error for a wrongly-typed argument")
	}
}
