// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package forge_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/pkix-forge/src/internal/forge"
)

func TestTamperOnce(t *testing.T) {
	pattern := []byte("AAAAAAAA")
	replacement := []byte("BBBBBBBB")

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Single Occurrence Is Overwritten In Place",
			testFunc: func(t *testing.T) {
				blob := []byte("prefix AAAAAAAA suffix")
				require.NoError(t, forge.TamperOnce(blob, pattern, replacement))
				assert.Equal(t, []byte("prefix BBBBBBBB suffix"), blob)
			},
		},
		{
			name: "Zero Occurrences",
			testFunc: func(t *testing.T) {
				blob := []byte("nothing to see here")
				assert.ErrorIs(t, forge.TamperOnce(blob, pattern, replacement),
					forge.ErrInvalidArgs)
			},
		},
		{
			name: "Multiple Occurrences",
			testFunc: func(t *testing.T) {
				blob := []byte("AAAAAAAA and again AAAAAAAA")
				assert.ErrorIs(t, forge.TamperOnce(blob, pattern, replacement),
					forge.ErrInvalidArgs)
			},
		},
		{
			name: "Pattern Too Short",
			testFunc: func(t *testing.T) {
				blob := []byte("AAAAAAA")
				assert.ErrorIs(t, forge.TamperOnce(blob, []byte("AAAAAAA"),
					[]byte("BBBBBBB")), forge.ErrInvalidArgs)
			},
		},
		{
			name: "Length Mismatch",
			testFunc: func(t *testing.T) {
				blob := []byte("prefix AAAAAAAA suffix")
				assert.ErrorIs(t, forge.TamperOnce(blob, pattern,
					[]byte("BBBBBBBBB")), forge.ErrInvalidArgs)
			},
		},
		{
			name: "Nil Arguments",
			testFunc: func(t *testing.T) {
				assert.ErrorIs(t, forge.TamperOnce(nil, pattern, replacement),
					forge.ErrInvalidArgs)
				assert.ErrorIs(t, forge.TamperOnce([]byte("x"), nil, replacement),
					forge.ErrInvalidArgs)
				assert.ErrorIs(t, forge.TamperOnce([]byte("x"), pattern, nil),
					forge.ErrInvalidArgs)
			},
		},
		{
			name: "Partial Match Prefix Does Not Count",
			testFunc: func(t *testing.T) {
				blob := []byte("AAAAAAA- and then AAAAAAAA")
				require.NoError(t, forge.TamperOnce(blob, pattern, replacement))
				assert.True(t, bytes.Contains(blob, replacement))
				assert.False(t, bytes.Contains(blob, pattern))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) { tt.testFunc(t) })
	}
}

func TestTamperOnceOnForgedCertificate(t *testing.T) {
	_, fctx := newTestContext(t)

	certDER, _, err := fctx.CreateCert("CN=Tamper Target Root",
		"CN=Tamper Target Root", true, nil)
	require.NoError(t, err)

	from := []byte("Tamper Target Root")
	to := []byte("Tamper TARGET Root")

	// The name appears twice (issuer and subject), so an exact pair of
	// occurrences is rejected and the blob stays intact.
	backup := append([]byte(nil), certDER...)
	assert.ErrorIs(t, forge.TamperOnce(certDER, from, to), forge.ErrInvalidArgs)
	assert.Equal(t, backup, certDER)
}
