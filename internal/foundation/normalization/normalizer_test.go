package normalization

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type backend string

const (
	backendExec  backend = "exec"
	backendGoGit backend = "gogit"
)

func TestNormalizer(t *testing.T) {
	n := NewNormalizer(map[string]backend{
		"exec":  backendExec,
		"gogit": backendGoGit,
	}, backendExec)

	tests := []struct {
		name     string
		input    string
		expected backend
	}{
		{"exact match", "gogit", backendGoGit},
		{"case insensitive", "GoGit", backendGoGit},
		{"with spaces", "  exec  ", backendExec},
		{"unknown falls back", "libgit2", backendExec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_Parse(t *testing.T) {
	n := NewNormalizer(map[string]backend{"exec": backendExec, "gogit": backendGoGit}, backendExec)

	v, err := n.Parse("")
	require.NoError(t, err)
	require.Equal(t, backendExec, v)

	v, err = n.Parse(" GOGIT")
	require.NoError(t, err)
	require.Equal(t, backendGoGit, v)

	_, err = n.Parse("svn")
	require.ErrorContains(t, err, "valid options: [exec gogit]")
}
