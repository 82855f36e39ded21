package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanonical(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 123456000, time.UTC)

	tests := []struct {
		name string
		vals []any
		want string
	}{
		{
			name: "string and int",
			vals: []any{"a", 1},
			want: `["a", 1]`,
		},
		{
			name: "empty tuple",
			vals: nil,
			want: `[]`,
		},
		{
			name: "fractional float keeps shortest form",
			vals: []any{0.95},
			want: `[0.95]`,
		},
		{
			name: "whole float keeps trailing point zero",
			vals: []any{2.0},
			want: `[2.0]`,
		},
		{
			name: "int and float of the same value differ",
			vals: []any{2},
			want: `[2]`,
		},
		{
			name: "bools",
			vals: []any{true, false},
			want: `[true, false]`,
		},
		{
			name: "timestamp uses microsecond layout",
			vals: []any{ts},
			want: `["2024-01-02T03:04:05.123456"]`,
		},
		{
			name: "nested tuple",
			vals: []any{"x", []any{"y", 2}},
			want: `["x", ["y", 2]]`,
		},
		{
			name: "blob reduces to byte length",
			vals: []any{Blob{Label: "pickle", Data: []byte("abcde")}},
			want: `[5]`,
		},
		{
			name: "nil renders null",
			vals: []any{nil},
			want: `[null]`,
		},
		{
			name: "non-ascii escapes to utf16 units",
			vals: []any{"héllo"},
			want: "[\"h\\u00e9llo\"]",
		},
		{
			name: "control characters use short escapes",
			vals: []any{"a\nb\t\"c\""},
			want: `["a\nb\t\"c\""]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonical(tt.vals...))
		})
	}
}

// Golden values pin the identity algorithm: MD5 over the canonical text,
// low four digest bytes big-endian, reinterpreted as signed 32-bit.
func TestHashGolden(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 123456000, time.UTC)

	tests := []struct {
		name string
		vals []any
		want int32
	}{
		{name: "single string", vals: []any{"hello"}, want: -612614134},
		{name: "string and int", vals: []any{"a", 1}, want: 1267879280},
		{name: "float", vals: []any{0.95}, want: 1629578404},
		{name: "project name", vals: []any{"alpha"}, want: 1446138024},
		{name: "whole float", vals: []any{2.0}, want: 1081553329},
		{name: "timestamp", vals: []any{ts}, want: -1941910143},
		{
			name: "model static tuple",
			vals: []any{Blob{Label: "pickle", Data: []byte("abcde")}, "proj", ts},
			want: -1396400081,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Hash(tt.vals...))
		})
	}
}

func TestHashDeterministic(t *testing.T) {
	ts := time.Now()
	a := Hash("proj", ts, 1.5)
	b := Hash("proj", ts, 1.5)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, Hash("proj", ts, 1.6))
}

func TestHashBlobSizeOnly(t *testing.T) {
	// Blobs canonicalize to their size, so equal-length payloads collide.
	a := Hash(Blob{Data: []byte("aaaa")})
	b := Hash(Blob{Data: []byte("bbbb")})
	c := Hash(Blob{Data: []byte("ccccc")})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestBlobSize(t *testing.T) {
	assert.Equal(t, 0, Blob{}.Size())
	assert.Equal(t, 3, Blob{Data: []byte{1, 2, 3}}.Size())
}
