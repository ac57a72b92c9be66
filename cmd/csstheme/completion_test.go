package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func complete(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	rootCmd.SetArgs(append([]string{"__complete"}, args...))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCompletion_FlagValues(t *testing.T) {
	out := complete(t, "generate", "--theme-keys", "")
	assert.Contains(t, out, "scope\n")
	assert.Contains(t, out, "literal\n")

	out = complete(t, "check", "--format", "")
	assert.Contains(t, out, "text\n")
	assert.Contains(t, out, "json\n")
}

func TestCompletion_CheckArgs(t *testing.T) {
	assert.Contains(t, complete(t, "check", ""), "css\n")
}

func TestCompletion_Script(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, rootCmd.GenBashCompletionV2(&out, true))
	assert.Contains(t, out.String(), "csstheme")
}
