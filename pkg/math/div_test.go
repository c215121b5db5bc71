package math

import "testing"

func TestDivRoundUp(t *testing.T) {
	for _, tc := range []struct {
		a, b, wanted int64
	}{
		{0, 1024, 0},
		{1, 1024, 1},
		{1024, 1024, 1},
		{1025, 1024, 2},
		{12, 1024, 1},
	} {
		if found := DivRoundUp(tc.a, tc.b); found != tc.wanted {
			t.Fatalf(
				"DivRoundUp(%d, %d): wanted `%d`; found `%d`",
				tc.a,
				tc.b,
				tc.wanted,
				found,
			)
		}
	}
}
