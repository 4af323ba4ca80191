package commands

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/mkserver/internal/config"
)

func TestCreate(t *testing.T) {
	cmd := Create()

	require.NotNil(t, cmd)
	assert.Equal(t, "create", cmd.Use)
	assert.Equal(t, "Create servers", cmd.Short)
	assert.NotNil(t, cmd.RunE, "Create command should have RunE function")
}

func TestCreate_Flags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{"name", "n", ""},
		{"flavour", "f", ""},
		{"image", "i", ""},
		{"keypair", "p", ""},
		{"network", "k", ""},
		{"ips", "s", "[]"},
		{"count", "c", "1"},
		{"attempts", "a", "6"},
		{"retry-delay", "d", "10"},
		{"wait-time", "w", "120"},
		{"verbose", "v", "false"},
		{"labels", "", "[]"},
		{"log-json", "", "false"},
		{"metrics-file", "", ""},
		{"config", "", ""},
		{"env-file", "", ""},
	}

	cmd := Create()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag, "%s flag should exist", tt.name)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestCreate_FloatingIPsAlias(t *testing.T) {
	cmd := Create()

	require.NoError(t, cmd.ParseFlags([]string{"--floating-ips", "203.0.113.1,203.0.113.2"}))

	ips, err := cmd.Flags().GetStringSlice("ips")
	require.NoError(t, err)
	assert.Equal(t, []string{"203.0.113.1", "203.0.113.2"}, ips)
	assert.True(t, cmd.Flags().Changed("ips"))
}

func TestCreate_Shorthands(t *testing.T) {
	cmd := Create()

	require.NoError(t, cmd.ParseFlags([]string{
		"-n", "web", "-f", "cx22", "-i", "ubuntu-24.04", "-p", "deploy",
		"-k", "backend", "-s", "203.0.113.1", "-a", "3", "-d", "5", "-w", "60", "-v",
	}))

	f := cmd.Flags()
	for name, want := range map[string]string{
		"name":        "web",
		"flavour":     "cx22",
		"image":       "ubuntu-24.04",
		"keypair":     "deploy",
		"network":     "backend",
		"attempts":    "3",
		"retry-delay": "5",
		"wait-time":   "60",
		"verbose":     "true",
	} {
		assert.Equal(t, want, f.Lookup(name).Value.String(), name)
	}
	assert.False(t, f.Changed("count"))
}

func TestCreate_RejectsArgs(t *testing.T) {
	cmd := Create()
	assert.ErrorContains(t, cmd.Args(cmd, []string{"extra"}), "unexpected arguments")
}

func TestCreate_SpaceSeparatedIPs(t *testing.T) {
	cmd := Create()

	require.NoError(t, cmd.ParseFlags([]string{
		"-n", "gw", "-f", "cx22", "-i", "img", "-p", "k", "-s", "203.0.113.1", "203.0.113.2",
	}))

	args := cmd.Flags().Args()
	assert.Equal(t, []string{"203.0.113.2"}, args)
	assert.NoError(t, cmd.Args(cmd, args))
}

func TestCreate_ExecuteWithSpaceSeparatedIPs(t *testing.T) {
	t.Setenv(config.EnvHCloudToken, "")

	cmd := Create()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{
		"-n", "gw", "-f", "cx22", "-i", "img", "-p", "k", "-c", "2", "-s", "203.0.113.1", "203.0.113.2",
	})

	err := cmd.Execute()

	// the run reaches validation, which rejects addresses with count 2
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "unknown command")
	assert.NotContains(t, err.Error(), "unexpected arguments")
	assert.Contains(t, err.Error(), "ips: can only be assigned when count is 1")
}

func TestRoot_RejectsStrayArgs(t *testing.T) {
	cmd := Root()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"-n", "gw", "stray"})

	assert.ErrorContains(t, cmd.Execute(), "unexpected arguments")
}
