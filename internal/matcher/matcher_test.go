package matcher

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobMatcher_Match(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		path     string
		fullPath bool
		want     bool
	}{
		{
			name:    "simple extension match",
			pattern: "*.txt",
			path:    filepath.Join("some", "dir", "notes.txt"),
			want:    true,
		},
		{
			name:    "simple extension mismatch",
			pattern: "*.txt",
			path:    filepath.Join("some", "dir", "notes.log"),
			want:    false,
		},
		{
			name:    "question mark wildcard",
			pattern: "file?.go",
			path:    "file1.go",
			want:    true,
		},
		{
			name:    "character class",
			pattern: "report-[0-9].csv",
			path:    "report-7.csv",
			want:    true,
		},
		{
			name:     "name mode ignores parent directories",
			pattern:  "sub",
			path:     filepath.Join("sub", "c.txt"),
			fullPath: false,
			want:     false,
		},
		{
			name:     "full path mode with doublestar",
			pattern:  "**/c.txt",
			path:     filepath.Join("sub", "deeper", "c.txt"),
			fullPath: true,
			want:     true,
		},
		{
			name:     "full path mode mismatch",
			pattern:  "sub/*.log",
			path:     filepath.Join("sub", "c.txt"),
			fullPath: true,
			want:     false,
		},
		{
			name:    "match everything pattern",
			pattern: "*",
			path:    "anything.bin",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewGlobMatcher(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Match(tt.path, tt.fullPath))
		})
	}
}

func TestRegexMatcher_Match(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		path     string
		fullPath bool
		want     bool
	}{
		{
			name:    "anchored extension",
			pattern: `.*\.txt$`,
			path:    filepath.Join("sub", "c.txt"),
			want:    true,
		},
		{
			name:    "anchored extension mismatch",
			pattern: `.*\.txt$`,
			path:    "c.txt.bak",
			want:    false,
		},
		{
			name:     "full path matches directory component",
			pattern:  `sub[/\\]`,
			path:     filepath.Join("sub", "c.txt"),
			fullPath: true,
			want:     true,
		},
		{
			name:     "name mode hides directory component",
			pattern:  `sub[/\\]`,
			path:     filepath.Join("sub", "c.txt"),
			fullPath: false,
			want:     false,
		},
		{
			name:    "unanchored substring",
			pattern: "note",
			path:    "my-notes.md",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewRegexMatcher(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Match(tt.path, tt.fullPath))
		})
	}
}

func TestNew_InvalidPatterns(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		useRegex bool
	}{
		{name: "unclosed glob bracket", pattern: "[abc", useRegex: false},
		{name: "unclosed regex group", pattern: "(abc", useRegex: true},
		{name: "bad regex repetition", pattern: "*foo", useRegex: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.pattern, tt.useRegex)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPattern)
			assert.Nil(t, m)
		})
	}
}

func TestNew_SelectsVariant(t *testing.T) {
	glob, err := New("*.go", false)
	require.NoError(t, err)
	assert.IsType(t, &GlobMatcher{}, glob)

	re, err := New(`\.go$`, true)
	require.NoError(t, err)
	assert.IsType(t, &RegexMatcher{}, re)
}

func TestShouldInclude(t *testing.T) {
	tests := []struct {
		name      string
		mode      fs.FileMode
		filesOnly bool
		dirsOnly  bool
		want      bool
	}{
		{name: "no filter keeps file", mode: 0, want: true},
		{name: "no filter keeps dir", mode: fs.ModeDir, want: true},
		{name: "files only keeps file", mode: 0, filesOnly: true, want: true},
		{name: "files only drops dir", mode: fs.ModeDir, filesOnly: true, want: false},
		{name: "files only drops symlink", mode: fs.ModeSymlink, filesOnly: true, want: false},
		{name: "dirs only keeps dir", mode: fs.ModeDir, dirsOnly: true, want: true},
		{name: "dirs only drops file", mode: 0, dirsOnly: true, want: false},
		{name: "both filters drop everything", mode: 0, filesOnly: true, dirsOnly: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldInclude(tt.mode, tt.filesOnly, tt.dirsOnly))
		})
	}
}
