package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeJSString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Hello world", want: "Hello world"},
		{name: "simple escapes", in: `a\nb\tc\\d`, want: "a\nb\tc\\d"},
		{name: "quotes", in: `it\'s \"quoted\"`, want: `it's "quoted"`},
		{name: "hex", in: `caf\xe9`, want: "caf\u00e9"},
		{name: "unicode", in: `caf\u00e9`, want: "caf\u00e9"},
		{name: "code point", in: `\u{1F600}`, want: "\U0001F600"},
		{name: "surrogate pair", in: `\ud83d\ude00`, want: "\U0001F600"},
		{name: "null", in: `a\0b`, want: "a\x00b"},
		{name: "line continuation", in: "one \\\ntwo", want: "one two"},
		{name: "crlf continuation", in: "one \\\r\ntwo", want: "one two"},
		{name: "raw crlf", in: "one\r\ntwo", want: "one\ntwo"},
		{name: "identity escape", in: `\q`, want: "q"},
		{name: "malformed hex", in: `\xZZ`, want: "xZZ"},
		{name: "malformed unicode", in: `\u12`, want: "u12"},
		{name: "trailing backslash", in: `abc\`, want: `abc\`},
		{name: "non-ascii", in: "h\u00e9llo \u4e16", want: "h\u00e9llo \u4e16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeJSString(tt.in))
		})
	}
}
