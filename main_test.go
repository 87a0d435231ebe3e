package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportFlagsAreRequired(t *testing.T) {
	for _, name := range []string{"ltp", "afe"} {
		f := reportCmd.Flags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, []string{"true"}, f.Annotations[cobra.BashCompOneRequiredFlag], name)
	}
}

func TestResolveConfigPath(t *testing.T) {
	assert.Equal(t, "custom.yaml", resolveConfigPath("custom.yaml"))
}
