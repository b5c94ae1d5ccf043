package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteVersion(t *testing.T) {
	var buf bytes.Buffer
	writeVersion(&buf)
	require.Equal(t, "comicwatch dev\n", buf.String())

	commit, date = "abc1234", "2026-10-19"
	defer func() { commit, date = "", "" }()

	buf.Reset()
	writeVersion(&buf)
	require.Equal(t, "comicwatch dev\n  commit: abc1234\n  built:  2026-10-19\n", buf.String())
}
