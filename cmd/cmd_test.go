package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/skymkmk/domain-list-to-srs/component/srs"
	C "github.com/skymkmk/domain-list-to-srs/constant"
	"github.com/skymkmk/domain-list-to-srs/log"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	out := &bytes.Buffer{}
	RootCmd.SetOut(out)
	RootCmd.SetArgs(args)
	require.NoError(t, RootCmd.Execute())
	return out.String()
}

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("data-path: file-data\noutput-path: file-out\nconcurrency: 2\n"), 0o644))
	t.Setenv("OUTPUT_PATH", "env-out")
	t.Setenv("DATA_PATH", "")
	t.Setenv("CONCURRENCY", "")
	t.Setenv("LOG_LEVEL", "")

	cmd := &cobra.Command{}
	cmd.Flags().AddFlagSet(RootCmd.Flags())
	cmd.Flags().AddFlagSet(RootCmd.PersistentFlags())
	require.NoError(t, cmd.ParseFlags([]string{"-f", file, "-j", "6", "--log-level", "debug"}))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "file-data", cfg.DataPath)
	assert.Equal(t, "env-out", cfg.OutputPath)
	assert.Equal(t, 6, cfg.Concurrency)
	assert.Equal(t, log.DEBUG, cfg.LogLevel)
}

func TestInspectCommand(t *testing.T) {
	rule := C.NewRule()
	rule.DomainSuffix.Insert("example.com")
	rule.DomainKeyword.Insert("ads")
	path := filepath.Join(t.TempDir(), "example.srs")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, srs.Write(f, rule))
	require.NoError(t, f.Close())

	out := execute(t, "inspect", path)
	assert.Contains(t, out, "version 3, 1 section(s)")
	assert.Contains(t, out, "[0] Domain: 12 labels, 1 leaf words, 1 bitmap words")
	assert.Contains(t, out, "[0] DomainKeyword: 1 entries")
	assert.Contains(t, out, "[0] DomainFinal")
}

func TestCheckCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example")
	require.NoError(t, os.WriteFile(path, []byte("example.com\nkeyword:track @ads\n"), 0o644))

	out := execute(t, "check", path, "www.example.com", "tracker.io", "example.org")
	assert.Contains(t, out, "www.example.com\tDomain\n")
	assert.Contains(t, out, "tracker.io\tDomainKeyword\ttrack\n")
	assert.Contains(t, out, "example.org\tno match\n")

	out = execute(t, "check", "-r", "ads", path, "www.example.com")
	assert.Contains(t, out, "www.example.com\tno match\n")
}
