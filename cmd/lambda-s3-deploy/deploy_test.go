package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDeploy_MissingHandlerFile(t *testing.T) {
	// O erro precisa acontecer antes de qualquer chamada AWS: nenhuma
	// credencial está configurada neste teste.
	opts := &deployOptions{
		bucket:   "reports",
		function: "ingest",
		file:     filepath.Join(t.TempDir(), "lambda_function.py"),
	}

	err := runDeploy(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing "+opts.file)
}

func TestNewDeployCmd_Defaults(t *testing.T) {
	cmd := newDeployCmd()

	for flag, want := range map[string]string{
		"file":               "lambda_function.py",
		"runtime":            "python3.12",
		"handler":            "lambda_function.lambda_handler",
		"memory":             "256",
		"timeout":            "30",
		"log-retention-days": "14",
	} {
		f := cmd.Flags().Lookup(flag)
		require.NotNil(t, f, "flag %s", flag)
		assert.Equal(t, want, f.DefValue, "flag %s", flag)
	}
}
