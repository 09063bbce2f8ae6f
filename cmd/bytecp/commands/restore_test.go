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

func TestRestoreCmd_UndoesCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("fresh"), 0644))
	require.NoError(t, os.WriteFile(dst, []byte("previous"), 0644))

	ro := testOpts(t)
	require.NoError(t, commands.RunCopy(testContext(t), ro, []string{src, dst}))

	cmd := commands.NewRestoreCmd(ro)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{dst})

	require.NoError(t, cmd.ExecuteContext(testContext(t)))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data), "restore must bring back the pre-copy bytes")

	_, err = os.Stat(dst + ".backup")
	assert.True(t, os.IsNotExist(err), "restore should consume the snapshot")
}

func TestRestoreCmd_NoBackup(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(dst, []byte("data"), 0644))

	cmd := commands.NewRestoreCmd(testOpts(t))
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{dst})

	err := cmd.ExecuteContext(testContext(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no backup exists")
}
