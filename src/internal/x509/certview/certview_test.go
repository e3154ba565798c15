// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/pkix-forge/src/internal/asn1/der"
	"github.com/H0llyW00dzZ/pkix-forge/src/internal/forge"
	"github.com/H0llyW00dzZ/pkix-forge/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/pkix-forge/src/internal/x509/certview"
)

var testNow = der.YMDHMS(2026, 8, 6, 12, 0, 0)

func TestParseRoundTripsForgedFields(t *testing.T) {
	arena := gc.NewArena()
	defer arena.Release()
	fctx := forge.NewContext(arena, testNow)

	issuerDER, err := forge.ASCIIToDERName(arena, "CN=Issuing CA,O=Forge")
	require.NoError(t, err)
	subjectDER, err := forge.ASCIIToDERName(arena, "CN=subject.test")
	require.NoError(t, err)
	serial, err := fctx.NextSerialNumber()
	require.NoError(t, err)

	pathLen := 2
	basicConstraints, err := forge.CreateEncodedBasicConstraints(arena, true,
		&pathLen, forge.Critical)
	require.NoError(t, err)
	eku, err := forge.CreateEncodedEKUExtension(arena,
		[]der.OIDTag{der.OIDKPServerAuth}, forge.NotCritical)
	require.NoError(t, err)

	certDER, key, err := forge.CreateEncodedCertificate(arena, fctx.Random,
		&forge.CertificateContext{
			Version:      forge.VersionV3,
			SerialNumber: serial,
			IssuerDER:    issuerDER,
			NotBefore:    fctx.NotBefore,
			NotAfter:     fctx.NotAfter,
			SubjectDER:   subjectDER,
			Extensions:   [][]byte{basicConstraints, eku},
		})
	require.NoError(t, err)

	cert, err := certview.Parse(certDER)
	require.NoError(t, err)

	// Every supplied field comes back exactly.
	assert.Equal(t, 2, cert.Version)
	assert.Equal(t, der.Input(serial), cert.SerialNumber)
	assert.Equal(t, der.Input(issuerDER), cert.Issuer)
	assert.Equal(t, der.Input(subjectDER), cert.Subject)
	assert.Equal(t, fctx.NotBefore, cert.NotBefore)
	assert.Equal(t, fctx.NotAfter, cert.NotAfter)

	spki, err := key.SubjectPublicKeyInfo()
	require.NoError(t, err)
	assert.Equal(t, der.Input(spki), cert.SPKI)

	assert.True(t, cert.HasBasicConstraints)
	assert.True(t, cert.BasicConstraintsCritical)
	assert.True(t, cert.IsCA)
	assert.Equal(t, 2, cert.PathLen)

	assert.True(t, cert.HasEKU)
	serverAuth, _ := der.OIDContents(der.OIDKPServerAuth)
	assert.True(t, cert.HasEKUPurpose(serverAuth))
	clientAuth, _ := der.OIDContents(der.OIDKPClientAuth)
	assert.False(t, cert.HasEKUPurpose(clientAuth))

	assert.False(t, cert.SelfIssued())
}

func TestParseMinimalCertificate(t *testing.T) {
	arena := gc.NewArena()
	defer arena.Release()
	fctx := forge.NewContext(arena, testNow)

	certDER, _, err := fctx.CreateCert("CN=Bare", "CN=Bare", false, nil)
	require.NoError(t, err)

	cert, err := certview.Parse(certDER)
	require.NoError(t, err)

	assert.False(t, cert.HasBasicConstraints)
	assert.False(t, cert.IsCA)
	assert.Equal(t, -1, cert.PathLen)
	assert.False(t, cert.HasEKU)
	assert.True(t, cert.SelfIssued())
}

func TestParseExposesSignatureEnvelope(t *testing.T) {
	arena := gc.NewArena()
	defer arena.Release()
	fctx := forge.NewContext(arena, testNow)

	certDER, _, err := fctx.CreateCert("CN=Signed", "CN=Signed", true, nil)
	require.NoError(t, err)

	cert, err := certview.Parse(certDER)
	require.NoError(t, err)

	// TBS is a prefix region of the certificate starting at its inner
	// SEQUENCE; the signature covers exactly those bytes.
	require.NotEmpty(t, cert.TBS)
	assert.Equal(t, byte(0x30), cert.TBS[0])
	assert.Len(t, cert.Signature, 256, "RSA-2048 signatures are 256 bytes")

	// AlgorithmIdentifier is sha256WithRSAEncryption with NULL parameters.
	assert.Equal(t, der.Input{
		0x30, 0x0d,
		0x06, 0x09, 0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x01, 0x01, 0x0b,
		0x05, 0x00,
	}, cert.SignatureAlgorithm)
}

func TestParseRejectsMalformedInput(t *testing.T) {
	arena := gc.NewArena()
	defer arena.Release()
	fctx := forge.NewContext(arena, testNow)

	certDER, _, err := fctx.CreateCert("CN=Donor", "CN=Donor", true, nil)
	require.NoError(t, err)

	tests := []struct {
		name  string
		input []byte
	}{
		{"Empty", nil},
		{"Not A Sequence", []byte{0x04, 0x02, 0x01, 0x02}},
		{"Truncated", certDER[:len(certDER)/2]},
		{"Trailing Garbage", append(append([]byte(nil), certDER...), 0x00)},
		{"Inner Noise", []byte{0x30, 0x03, 0x02, 0x01, 0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := certview.Parse(tt.input)
			assert.Error(t, err)
		})
	}
}
