package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripQuotes(t *testing.T) {
	tests := []struct{ in, want string }{
		{`"CERTIFIED"`, "CERTIFIED"},
		{`CERTIFIED`, "CERTIFIED"},
		{`""`, ""},
		{`"`, ""},
		{`"half`, "half"},
		{`half"`, "half"},
		{`""double""`, "double"},
		{`"ENGINEERS ""SR"""`, "ENGINEERS SR"},
		{`"SAN FRANCISCO, CA"`, "SAN FRANCISCO, CA"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripQuotes(tt.in), tt.in)
	}
}

func TestSplitLineIgnoresQuoting(t *testing.T) {
	assert.Equal(t, []string{`"A`, `B"`, "C"}, SplitLine(`"A;B";C`))
	assert.Equal(t, []string{""}, SplitLine(""))
	assert.Equal(t, []string{"A", "", ""}, SplitLine("A;;"))
}

func TestTrimEOL(t *testing.T) {
	assert.Equal(t, "a;b", trimEOL("a;b\n"))
	assert.Equal(t, "a;b", trimEOL("a;b\r\n"))
	assert.Equal(t, "a;b", trimEOL("a;b"))
	assert.Equal(t, "a;b ", trimEOL("a;b \n"))
}
