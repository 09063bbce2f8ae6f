package commands_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqio/bytecp/cmd/bytecp/commands"
)

func TestVerifyCmd_Match(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("12345"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("54321"), 0644))

	cmd := commands.NewVerifyCmd(testOpts(t))
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{a, b})

	require.NoError(t, cmd.ExecuteContext(testContext(t)))
}

func TestVerifyCmd_Mismatch(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("1234567890"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("12345"), 0644))

	cmd := commands.NewVerifyCmd(testOpts(t))
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{a, b})

	err := cmd.ExecuteContext(testContext(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size mismatch")
}

func TestVerifyCmd_MissingFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(a, []byte("data"), 0644))

	cmd := commands.NewVerifyCmd(testOpts(t))
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{a, filepath.Join(dir, "ghost.txt")})

	err := cmd.ExecuteContext(testContext(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verifying sizes")
}
