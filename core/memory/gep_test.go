package memory

import "testing"

func TestGEPNoIndicesIsIdentity(t *testing.T) {
	base := Address{Block: 1, Offset: 4}
	got, err := GEP(base, IntType(32), nil)
	if err != nil {
		t.Fatalf("GEP: %v", err)
	}
	if got != base {
		t.Fatalf("expected identity, got %+v", got)
	}
}

func TestGEPTopLevelStridesByElementSize(t *testing.T) {
	base := Address{Block: 1, Offset: 0}
	got, err := GEP(base, IntType(64), []DValue{DInt(KI32, 3)})
	if err != nil {
		t.Fatalf("GEP: %v", err)
	}
	if got.Offset != 3*Sizeof(IntType(64)) {
		t.Fatalf("expected offset %d, got %d", 3*Sizeof(IntType(64)), got.Offset)
	}
	if got.Block != base.Block {
		t.Fatalf("GEP must not change the block id, got %d", got.Block)
	}
}

func TestGEPCommutesWithAddition(t *testing.T) {
	base := Address{Block: 1, Offset: 0}
	elemTy := StructType(IntType(32), IntType(64))

	direct, err := GEP(base, elemTy, []DValue{DInt(KI32, 5)})
	if err != nil {
		t.Fatalf("GEP direct: %v", err)
	}

	stepped, err := GEP(base, elemTy, []DValue{DInt(KI32, 2)})
	if err != nil {
		t.Fatalf("GEP stepped: %v", err)
	}
	stepped, err = GEP(stepped, elemTy, []DValue{DInt(KI32, 3)})
	if err != nil {
		t.Fatalf("GEP stepped continuation: %v", err)
	}

	if direct.Offset != stepped.Offset {
		t.Fatalf("GEP(base, t, [5]) should equal GEP(GEP(base,t,[2]),t,[3]): %d != %d", direct.Offset, stepped.Offset)
	}
}

func TestGEPIntoStructField(t *testing.T) {
	st := StructType(IntType(32), IntType(64))
	base := Address{Block: 1, Offset: 0}

	addr0, err := GEP(base, st, []DValue{DInt(KI32, 0), DInt(KI32, 0)})
	if err != nil {
		t.Fatalf("GEP field 0: %v", err)
	}
	if addr0.Offset != 0 {
		t.Fatalf("expected field 0 at offset 0, got %d", addr0.Offset)
	}

	addr1, err := GEP(base, st, []DValue{DInt(KI32, 0), DInt(KI32, 1)})
	if err != nil {
		t.Fatalf("GEP field 1: %v", err)
	}
	if addr1.Offset != Sizeof(IntType(32)) {
		t.Fatalf("expected field 1 right after field 0's size, got %d", addr1.Offset)
	}
}

func TestGEPStructFieldOutOfRange(t *testing.T) {
	st := StructType(IntType(32), IntType(64))
	_, err := GEP(Address{Block: 1}, st, []DValue{DInt(KI32, 0), DInt(KI32, 2)})
	if err == nil {
		t.Fatal("expected an error for an out-of-range field index")
	}
}

func TestGEPTopLevelRejectsNonI32I64(t *testing.T) {
	_, err := GEP(Address{Block: 1}, IntType(32), []DValue{DInt(KI8, 1)})
	if err == nil {
		t.Fatal("expected an error for an i8 top-level index")
	}
}

func TestGEPInnerAcceptsI8(t *testing.T) {
	at := ArrayType(4, IntType(32))
	_, err := GEP(Address{Block: 1}, at, []DValue{DInt(KI32, 0), DInt(KI8, 2)})
	if err != nil {
		t.Fatalf("expected i8 to be accepted past the top level: %v", err)
	}
}

func TestGEPTopLevelIndexOverflowFails(t *testing.T) {
	base := Address{Block: 1, Offset: 0}
	_, err := GEP(base, IntType(64), []DValue{DInt(KI64, 1 << 62)})
	if err == nil {
		t.Fatal("expected an index*stride product that overflows 64 bits to fail")
	}
}

func TestGEPArrayElementStride(t *testing.T) {
	at := ArrayType(4, IntType(32))
	base := Address{Block: 1, Offset: 0}
	addr, err := GEP(base, at, []DValue{DInt(KI32, 0), DInt(KI32, 2)})
	if err != nil {
		t.Fatalf("GEP: %v", err)
	}
	if addr.Offset != 2*Sizeof(IntType(32)) {
		t.Fatalf("expected offset %d, got %d", 2*Sizeof(IntType(32)), addr.Offset)
	}
}
