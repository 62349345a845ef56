package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gnames/gnfish/internal/iofs"
	"github.com/gnames/gnfish/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetRootCmd_Exists verifies getRootCmd returns
// a valid command.
func TestGetRootCmd_Exists(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd, "Root command should exist")
	assert.Equal(t, "gnfish", cmd.Use,
		"Command name should be gnfish")
}

// TestGetRootCmd_VersionFormat verifies -V prints version and build.
func TestGetRootCmd_VersionFormat(t *testing.T) {
	cmd := getRootCmd()
	cmd.Version = "version: v1.2.3\nbuild:   abc123"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-V"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "v1.2.3",
		"Version output should contain version")
	assert.Contains(t, output, "abc123",
		"Version output should contain build")
}

// TestGetRootCmd_HelpText verifies help text content.
func TestGetRootCmd_HelpText(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "gnfish",
		"Help should mention gnfish")
	assert.Contains(t, helpText, "GBIF",
		"Help should mention GBIF")
	assert.Contains(t, helpText, "IUCN",
		"Help should mention IUCN")
	assert.Contains(t, helpText, "GNFISH_IUCN_TOKEN",
		"Help should list environment variables")
}

// TestGetRootCmd_Subcommands verifies all subcommands are registered.
func TestGetRootCmd_Subcommands(t *testing.T) {
	cmd := getRootCmd()

	for _, name := range []string{
		"resolve", "batch", "refresh", "list", "taxon", "lookup", "serve",
	} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
		assert.NotNil(t, sub.RunE, name)
		assert.NotEmpty(t, sub.Short, name)
		assert.NotEmpty(t, sub.Long, name)
	}
}

// TestGetRootCmd_HasPreRun verifies bootstrap
// function is set.
func TestGetRootCmd_HasPreRun(t *testing.T) {
	cmd := getRootCmd()

	assert.NotNil(t, cmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
}

// TestGetRootCmd_ErrorSilencing verifies error and
// usage silencing.
func TestGetRootCmd_ErrorSilencing(t *testing.T) {
	cmd := getRootCmd()

	assert.True(t, cmd.SilenceErrors,
		"Errors should be silenced")
	assert.True(t, cmd.SilenceUsage,
		"Usage should be silenced on errors")
}

// TestGetRootCmd_VersionTemplate verifies custom version template.
func TestGetRootCmd_VersionTemplate(t *testing.T) {
	cmd := getRootCmd()
	cmd.Version = "test-version"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	// Should not have "gnfish version" prefix due to
	// custom template
	assert.NotContains(t, output, "gnfish version:",
		"Should use custom version template")
}

// TestGetRootCmd_InvalidCommand verifies error on
// invalid command.
func TestGetRootCmd_InvalidCommand(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"nonexistent-command"})

	err := cmd.Execute()

	assert.Error(t, err,
		"Should error on invalid command")
	output := buf.String()
	assert.True(t,
		strings.Contains(output, "unknown") ||
			strings.Contains(output, "invalid") ||
			strings.Contains(err.Error(), "unknown"),
		"Error should indicate unknown command")
}

// TestInitConfig_EnvOverride verifies environment variables take
// precedence over config.yaml.
func TestInitConfig_EnvOverride(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))
	require.NoError(t, iofs.EnsureConfigFile(home))

	t.Setenv("GNFISH_IUCN_TOKEN", "secret")
	t.Setenv("GNFISH_STORE_DRIVER", "postgres")
	t.Setenv("GNFISH_STORE_DATABASE_HOST", "db.example.org")
	t.Setenv("GNFISH_GBIF_TIMEOUT", "2s")
	t.Setenv("GNFISH_JOBS_NUMBER", "7")

	res, err := initConfig(home)
	require.NoError(t, err)

	c := config.New()
	c.Update(res.ToOptions())
	assert.Equal(t, "secret", c.IUCN.Token)
	assert.Equal(t, "postgres", c.Store.Driver)
	assert.Equal(t, "db.example.org", c.Store.Database.Host)
	assert.Equal(t, 2*time.Second, c.GBIF.Timeout)
	assert.Equal(t, 7, c.JobsNumber)
}

// TestInitConfig_MissingFile verifies a missing config file is an error.
func TestInitConfig_MissingFile(t *testing.T) {
	_, err := initConfig(t.TempDir())
	assert.Error(t, err)
}
