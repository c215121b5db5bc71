package io

import (
	"bytes"
	"errors"
	"testing"

	. "github.com/weberc2/mfs/pkg/types"
)

func TestBuffer(t *testing.T) {
	type testCase struct {
		name        string
		size        int
		writeOffset Byte
		write       []byte
		wantedErr   bool
	}

	testCases := []testCase{{
		name:        "start",
		size:        16,
		writeOffset: 0,
		write:       []byte("hello"),
	}, {
		name:        "exact end",
		size:        16,
		writeOffset: 11,
		write:       []byte("hello"),
	}, {
		name:        "past end",
		size:        16,
		writeOffset: 12,
		write:       []byte("hello"),
		wantedErr:   true,
	}, {
		name:        "negative offset",
		size:        16,
		writeOffset: -1,
		write:       []byte("hello"),
		wantedErr:   true,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := NewBuffer(make([]byte, tc.size))
			err := buf.WriteAt(tc.writeOffset, tc.write)
			if tc.wantedErr {
				if err == nil {
					t.Fatal("WriteAt(): wanted error; found `nil`")
				}
				if !bytes.Equal(buf.Bytes(), make([]byte, tc.size)) {
					t.Fatalf("WriteAt(): failed write mutated buffer: %x", buf.Bytes())
				}
				return
			}
			if err != nil {
				t.Fatalf("WriteAt(): unexpected err: %v", err)
			}

			found := make([]byte, len(tc.write))
			if err := buf.ReadAt(tc.writeOffset, found); err != nil {
				t.Fatalf("ReadAt(): unexpected err: %v", err)
			}
			if !bytes.Equal(found, tc.write) {
				t.Fatalf("ReadAt(): wanted `%s`; found `%s`", tc.write, found)
			}
		})
	}
}

func TestOffsetVolume(t *testing.T) {
	buf := NewBuffer(make([]byte, 32))
	window := NewOffsetVolume(buf, 8, 8)

	if err := window.WriteAt(4, []byte("abcd")); err != nil {
		t.Fatalf("WriteAt(): unexpected err: %v", err)
	}
	if found := string(buf.Bytes()[12:16]); found != "abcd" {
		t.Fatalf("underlying buffer: wanted `abcd`; found `%s`", found)
	}

	err := window.WriteAt(6, []byte("abcd"))
	if !errors.Is(err, RangeOutOfBoundsErr) {
		t.Fatalf("WriteAt() past window: wanted `%v`; found `%v`", RangeOutOfBoundsErr, err)
	}
}
