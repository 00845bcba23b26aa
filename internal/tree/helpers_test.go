package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// mustTree decodes a JSON literal or fails the test.
func mustTree(t *testing.T, src string) *Node {
	t.Helper()
	n, err := Unmarshal([]byte(src))
	require.NoError(t, err)
	return n
}

// compact renders a data tree on one line for readable assertions.
func compact(t *testing.T, n *Node) string {
	t.Helper()
	var buf []byte
	var err error
	buf, err = Marshal(n, StyleData)
	require.NoError(t, err)
	out := make([]byte, 0, len(buf))
	for _, b := range buf {
		if b != ' ' && b != '\n' {
			out = append(out, b)
		}
	}
	return string(out)
}
