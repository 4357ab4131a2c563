package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"user_name", []string{"user", "name"}},
		{"userName", []string{"user", "Name"}},
		{"HTTPServerID", []string{"HTTP", "Server", "ID"}},
		{"order-line.item", []string{"order", "line", "item"}},
		{"v2Model", []string{"v2", "Model"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitWords(tt.in))
		})
	}
}

func TestCaseConversions(t *testing.T) {
	tests := []struct {
		in        string
		pascal    string
		camel     string
		snake     string
		screaming string
	}{
		{"user_name", "UserName", "userName", "user_name", "USER_NAME"},
		{"fooBar", "FooBar", "fooBar", "foo_bar", "FOO_BAR"},
		{"OrderLine", "OrderLine", "orderLine", "order_line", "ORDER_LINE"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.pascal, PascalCase(tt.in))
			assert.Equal(t, tt.camel, CamelCase(tt.in))
			assert.Equal(t, tt.snake, SnakeCase(tt.in))
			assert.Equal(t, tt.screaming, ScreamingSnakeCase(tt.in))
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Hello", Capitalize("hello"))
	assert.Equal(t, "hello", Uncapitalize("Hello"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "Élan", Capitalize("élan"))
}
