// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs_test

import (
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/pkix-forge/src/internal/asn1/der"
	"github.com/H0llyW00dzZ/pkix-forge/src/internal/forge"
	"github.com/H0llyW00dzZ/pkix-forge/src/internal/helper/gc"
	x509certs "github.com/H0llyW00dzZ/pkix-forge/src/internal/x509/certs"
)

// forgeTestCert produces one self-signed DER certificate to feed the loader.
func forgeTestCert(t *testing.T, name string) []byte {
	t.Helper()
	arena := gc.NewArena()
	t.Cleanup(arena.Release)

	fctx := forge.NewContext(arena, der.YMDHMS(2026, 8, 6, 12, 0, 0))
	certDER, _, err := fctx.CreateCert(name, name, true, nil)
	require.NoError(t, err)
	return append([]byte(nil), certDER...)
}

func TestLoaderOperations(t *testing.T) {
	certDER := forgeTestCert(t, "CN=Loader Root")
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER})

	tests := []struct {
		name     string
		testFunc func(t *testing.T, loader *x509certs.Loader)
	}{
		{
			name: "Decode Bare DER",
			testFunc: func(t *testing.T, loader *x509certs.Loader) {
				decoded, err := loader.Decode(certDER)
				require.NoError(t, err)
				assert.Equal(t, certDER, decoded)
			},
		},
		{
			name: "Decode PEM Wrapped",
			testFunc: func(t *testing.T, loader *x509certs.Loader) {
				decoded, err := loader.Decode(certPEM)
				require.NoError(t, err)
				assert.Equal(t, certDER, decoded)
			},
		},
		{
			name: "Decode Multiple From PEM Bundle",
			testFunc: func(t *testing.T, loader *x509certs.Loader) {
				bundle := append(append([]byte(nil), certPEM...), certPEM...)
				decoded, err := loader.DecodeMultiple(bundle)
				require.NoError(t, err)
				require.Len(t, decoded, 2)
				assert.Equal(t, certDER, decoded[0])
				assert.Equal(t, certDER, decoded[1])
			},
		},
		{
			name: "Decode Multiple From Concatenated DER",
			testFunc: func(t *testing.T, loader *x509certs.Loader) {
				bundle := append(append([]byte(nil), certDER...), certDER...)
				decoded, err := loader.DecodeMultiple(bundle)
				require.NoError(t, err)
				assert.Len(t, decoded, 2)
			},
		},
		{
			name: "Reject Wrong PEM Block Type",
			testFunc: func(t *testing.T, loader *x509certs.Loader) {
				wrongType := pem.EncodeToMemory(&pem.Block{
					Type: "PRIVATE KEY", Bytes: certDER,
				})
				_, err := loader.Decode(wrongType)
				assert.ErrorIs(t, err, x509certs.ErrInvalidBlockType)
			},
		},
		{
			name: "Reject Garbage",
			testFunc: func(t *testing.T, loader *x509certs.Loader) {
				_, err := loader.Decode([]byte{0xde, 0xad, 0xbe, 0xef})
				assert.ErrorIs(t, err, x509certs.ErrParsePKCS7)
			},
		},
		{
			name: "Subject Summary",
			testFunc: func(t *testing.T, loader *x509certs.Loader) {
				subject, err := loader.Subject(certDER)
				require.NoError(t, err)
				assert.Contains(t, subject, "Loader Root")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t, x509certs.New())
		})
	}
}

func TestIsPEM(t *testing.T) {
	certDER := forgeTestCert(t, "CN=PEM Check")
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER})

	loader := x509certs.New()
	assert.True(t, loader.IsPEM(certPEM))
	assert.False(t, loader.IsPEM(certDER))
}
