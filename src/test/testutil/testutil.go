// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

// Package testutil provides global testing helper functions
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/extpack-dev/extpack/src/pkg/logger"
)

// TestContext takes a testing.T and returns a context carrying a test logger
// that is attached to the test by t.Cleanup()
func TestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	l, err := logger.New(logger.Config{Level: logger.Debug, Format: logger.FormatNone})
	require.NoError(t, err)
	return logger.WithContext(ctx, l)
}
