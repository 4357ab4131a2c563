package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"Int", 42, 42},
		{"Int64", int64(7), 7},
		{"Float", 3.9, 3},
		{"String", " 12 ", 12},
		{"Bytes", []byte("5"), 5},
		{"Bool", true, 1},
		{"Nil", nil, 0},
		{"Garbage", "abc", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt(tt.in))
		})
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "1", ToString(float64(1)))
	assert.Equal(t, "1.5", ToString(1.5))
	assert.Equal(t, "abc", ToString([]byte("abc")))
	assert.Equal(t, "true", ToString(true))
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool("1"))
	assert.True(t, ToBool(float64(1)))
	assert.False(t, ToBool("yes"))
	assert.False(t, ToBool(nil))
	assert.False(t, ToBool(2))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(nil))
	assert.True(t, IsBlank("  \n"))
	assert.True(t, IsBlank([]any{}))
	assert.True(t, IsBlank(map[string]any{}))
	assert.False(t, IsBlank("x"))
	assert.False(t, IsBlank(0))
	assert.False(t, IsBlank(false))
	assert.False(t, IsBlank([]string{"a"}))
}
