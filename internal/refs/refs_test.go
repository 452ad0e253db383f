// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package refs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "single reference",
			content: "#ref(./img/a.png,100x100);",
			want:    []string{"./img/a.png"},
		},
		{
			name:    "disabled reference",
			content: "#ref(./img/a.png,100x100);-",
			want:    nil,
		},
		{
			name:    "disabled with doubled semicolon",
			content: "#ref(./img/a.png,100x100);;-",
			want:    nil,
		},
		{
			name:    "disabled with spaced marker",
			content: "#ref(./img/a.png,100x100); ;-",
			want:    nil,
		},
		{
			name:    "marker elsewhere on the line disables it",
			content: "text ;- #ref(./img/a.png,100x100);",
			want:    nil,
		},
		{
			name:    "line order with duplicates",
			content: "intro\n#ref(./b.png,left);\ntext\n#ref(./a.png,50%);\n#ref(./b.png,left);\n",
			want:    []string{"./b.png", "./a.png", "./b.png"},
		},
		{
			name:    "reference embedded in text",
			content: "see #ref(./docs/manual.pdf,zoom); for details",
			want:    []string{"./docs/manual.pdf"},
		},
		{
			name:    "only first reference on a line",
			content: "#ref(./one.png,a); #ref(./two.png,b);",
			want:    []string{"./one.png"},
		},
		{
			name:    "absolute or page-relative refs ignored",
			content: "#ref(img.png,100x100);\n#ref(/abs/img.png,1);\n#ref(Other/img.png,1);",
			want:    nil,
		},
		{
			name:    "missing arguments ignored",
			content: "#ref(./img.png);\n#ref(./img.png,);",
			want:    nil,
		},
		{
			name:    "CRLF line endings",
			content: "#ref(./a.png,1);\r\n#ref(./b.png,2);\r\n",
			want:    []string{"./a.png", "./b.png"},
		},
		{
			name:    "empty content",
			content: "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.content))
		})
	}
}

func TestParse_LongLines(t *testing.T) {
	content := "#ref(./first.png,1);\n" +
		strings.Repeat("x", 2<<20) + "\n" +
		"#ref(./after.png,1);\n" +
		strings.Repeat("y", 200*1024) + "#ref(./inline.png,1);\n"
	assert.Equal(t, []string{"./first.png", "./after.png", "./inline.png"}, Parse(content))
}
