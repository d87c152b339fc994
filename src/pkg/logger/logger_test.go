// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tt := []struct {
		name    string
		in      string
		want    Level
		wantErr bool
	}{
		{name: "info", in: "info", want: Info},
		{name: "case insensitive", in: "WARN", want: Warn},
		{name: "debug", in: "debug", want: Debug},
		{name: "error", in: "error", want: Error},
		{name: "unknown level errors", in: "loud", wantErr: true},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseLevel(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(Config{Level: Level(42)})
	require.Error(t, err)

	_, err = New(Config{Format: Format("carrier-pigeon")})
	require.Error(t, err)
}

func TestJSONFormatWrites(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: Info, Format: FormatJSON, Destination: &buf})
	require.NoError(t, err)
	l.Info("hello")
	require.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestFromContext(t *testing.T) {
	// A bare context returns a usable discarding logger instead of nil.
	require.NotNil(t, From(context.Background()))

	l, err := New(ConfigDefault())
	require.NoError(t, err)
	ctx := WithContext(context.Background(), l)
	require.Same(t, l, From(ctx))
}
