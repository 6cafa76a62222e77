package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterPattern(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{name: "empty", filter: Filter{}, want: "*"},
		{name: "single", filter: Filter{Extensions: []string{"md"}}, want: "*.md"},
		{name: "dotted and upper", filter: Filter{Extensions: []string{".MD"}}, want: "*.md"},
		{name: "several", filter: Filter{Extensions: []string{"md", "markdown"}}, want: "*.{md,markdown}"},
		{name: "blank entries dropped", filter: Filter{Extensions: []string{" ", "md"}}, want: "*.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Pattern())
		})
	}
}

func TestFilterMatches(t *testing.T) {
	md := Filter{Label: "Markdown", Extensions: []string{"md"}}

	assert.True(t, md.Matches("/home/user/notes/post.md"))
	assert.True(t, md.Matches(`C:\Users\me\POST.MD`))
	assert.False(t, md.Matches("/home/user/notes/post.txt"))
	assert.False(t, md.Matches("/home/user/notes/md"))

	both := Filter{Extensions: []string{"md", "markdown"}}
	assert.True(t, both.Matches("/tmp/readme.markdown"))

	assert.True(t, Filter{}.Matches("/tmp/anything.bin"))
}
