package main

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("devserver", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parseConfig(newFlagSet(), nil)
	require.NoError(t, err)
	assert.Equal(t, ":8087", cfg.Addr)
	assert.Equal(t, "memory", cfg.Backend)
	assert.Equal(t, "/api/v1", cfg.APIPath)
}

func TestParseConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("EIGHTYSEVEN_DEV_ADDR", ":9000")
	t.Setenv("EIGHTYSEVEN_DEV_BACKEND", "sqlite")

	cfg, err := parseConfig(newFlagSet(), []string{"-addr", "127.0.0.1:9999", "-user", "alice", "-password", "pw"})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.Addr)
	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, "alice", cfg.Username)
}

func TestParseConfig_UserNeedsPassword(t *testing.T) {
	_, err := parseConfig(newFlagSet(), []string{"-user", "alice"})
	assert.Error(t, err)
}

func TestParseConfig_UnknownFlag(t *testing.T) {
	_, err := parseConfig(newFlagSet(), []string{"-nope"})
	assert.Error(t, err)
}
