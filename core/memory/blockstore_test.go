package memory

import "testing"

func TestNextLogicalKeyFreshness(t *testing.T) {
	mem := EmptyMemory()
	if got := nextLogicalKey(mem); got != 0 {
		t.Fatalf("expected first key 0, got %d", got)
	}
	mem = mem.addLogical(0, newLogicalBlock(8))
	mem = mem.addLogical(3, newLogicalBlock(8))
	if got := nextLogicalKey(mem); got != 4 {
		t.Fatalf("expected next key 4, got %d", got)
	}
}

func TestNextConcreteKeyNonOverlap(t *testing.T) {
	mem := EmptyMemory()
	if got := nextConcreteKey(mem); got != 1 {
		t.Fatalf("expected first base 1, got %d", got)
	}
	mem = mem.addConcrete(0, ConcreteBlock{Size: 16, LogicalID: 5})
	if got := nextConcreteKey(mem); got != 17 {
		t.Fatalf("expected next base 17, got %d", got)
	}
}

func TestAddAllIndexShadowsOverlap(t *testing.T) {
	m := make(map[int64]SByte)
	addAllIndex([]SByte{ByteOf(1), ByteOf(2), ByteOf(3)}, 0, m)
	addAllIndex([]SByte{ByteOf(9)}, 1, m)

	got := lookupAllIndex(0, 3, m, UndefByte())
	if got[0].B != 1 || got[1].B != 9 || got[2].B != 3 {
		t.Fatalf("expected the second write to shadow offset 1, got %v", got)
	}
}

func TestLookupAllIndexDefaultsMissingKeys(t *testing.T) {
	m := make(map[int64]SByte)
	m[5] = ByteOf(0x42)

	got := lookupAllIndex(4, 3, m, UndefByte())
	if got[0].Kind != SUndef || got[1].B != 0x42 || got[2].Kind != SUndef {
		t.Fatalf("unexpected lookup result: %v", got)
	}
}

func TestMemoryCloneIsIndependent(t *testing.T) {
	mem := EmptyMemory()
	mem = mem.addLogical(0, newLogicalBlock(8))
	block, _ := mem.getLogical(0)
	block.Bytes[0] = ByteOf(1)
	mem = mem.addLogical(0, block)

	clone := mem.Clone()
	cloned, _ := clone.getLogical(0)
	cloned.Bytes[0] = ByteOf(2)
	clone = clone.addLogical(0, cloned)

	original, _ := mem.getLogical(0)
	if original.Bytes[0].B != 1 {
		t.Fatalf("mutating the clone's block mutated the original")
	}
}
