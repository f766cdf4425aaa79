package python

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnquote(t *testing.T) {
	tests := []struct {
		lit  string
		want string
		ok   bool
	}{
		{`"api"`, "api", true},
		{`'api'`, "api", true},
		{`"""api"""`, "api", true},
		{`r"a\b"`, `a\b`, true},
		{`u"api"`, "api", true},
		{`"it\'s"`, "it's", true},
		{`f"{x}"`, "", false},
		{`b"raw"`, "", false},
		{`"unterminated`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			got, ok := unquote(tt.lit)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
