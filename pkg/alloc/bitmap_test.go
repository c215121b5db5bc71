package alloc

import "testing"

func TestBitmapAlloc(t *testing.T) {
	type testCase struct {
		name     string
		size     uint64
		reserved []uint64
		start    uint64
		wanted   uint64
		ok       bool
	}

	testCases := []testCase{{
		name:   "empty",
		size:   16,
		wanted: 0,
		ok:     true,
	}, {
		name:     "skips full bytes",
		size:     16,
		reserved: []uint64{0, 1, 2, 3, 4, 5, 6, 7, 8},
		wanted:   9,
		ok:       true,
	}, {
		name:   "honors scan start",
		size:   16,
		start:  5,
		wanted: 5,
		ok:     true,
	}, {
		name:     "full",
		size:     3,
		reserved: []uint64{0, 1, 2},
		ok:       false,
	}, {
		name:     "ignores padding bits",
		size:     10,
		reserved: []uint64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		ok:       false,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bm := New(tc.size)
			bm.SetScanStart(tc.start)
			for _, r := range tc.reserved {
				bm.Reserve(r)
			}
			found, ok := bm.Alloc()
			if ok != tc.ok {
				t.Fatalf("Alloc(): wanted ok `%t`; found `%t`", tc.ok, ok)
			}
			if ok && found != tc.wanted {
				t.Fatalf("Alloc(): wanted `%d`; found `%d`", tc.wanted, found)
			}
			if ok && bm.IsFree(found) {
				t.Fatalf("Alloc(): slot `%d` still free after allocation", found)
			}
		})
	}
}

func TestBitmapBitOrder(t *testing.T) {
	bm := New(16)
	bm.Reserve(0)
	bm.Reserve(9)
	wanted := []byte{0b1000_0000, 0b0100_0000}
	found := bm.Bytes()
	for i := range wanted {
		if wanted[i] != found[i] {
			t.Fatalf(
				"Bytes()[%d]: wanted `%08b`; found `%08b`",
				i,
				wanted[i],
				found[i],
			)
		}
	}

	bm.Free(0)
	if !bm.IsFree(0) {
		t.Fatal("IsFree(0): wanted `true`; found `false`")
	}
	if found := bm.CountFree(0, 16); found != 15 {
		t.Fatalf("CountFree(0, 16): wanted `15`; found `%d`", found)
	}
}

func TestBitmapLoad(t *testing.T) {
	bm := Load(8, []byte{0b1010_0000})
	if bm.IsFree(0) || !bm.IsFree(1) || bm.IsFree(2) {
		t.Fatalf("Load(): unexpected bits `%08b`", bm.Bytes()[0])
	}
}
