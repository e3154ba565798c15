// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package forge_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ocsp"

	"github.com/H0llyW00dzZ/pkix-forge/src/internal/forge"
	"github.com/H0llyW00dzZ/pkix-forge/src/internal/helper/gc"
)

// ocspFixture forges the issuer material one response needs.
type ocspFixture struct {
	arena      *gc.Arena
	rootDER    []byte
	rootKey    *forge.KeyPair
	rootName   []byte
	certID     forge.CertID
	eeSerial   int64
	producedAt time.Time
}

func newOCSPFixture(t *testing.T) *ocspFixture {
	t.Helper()
	arena, fctx := newTestContext(t)

	rootDER, rootKey, err := fctx.CreateCert("CN=Root CA", "CN=Root CA", true, nil)
	require.NoError(t, err)

	rootName, err := forge.ASCIIToDERName(arena, "CN=Root CA")
	require.NoError(t, err)
	rootSPKI, err := rootKey.SubjectPublicKeyInfo()
	require.NoError(t, err)

	eeSerial, err := fctx.NextSerialNumber()
	require.NoError(t, err)

	return &ocspFixture{
		arena:    arena,
		rootDER:  rootDER,
		rootKey:  rootKey,
		rootName: rootName,
		certID: forge.CertID{
			IssuerDER:    rootName,
			IssuerSPKI:   rootSPKI,
			SerialNumber: eeSerial,
		},
		eeSerial:   2,
		producedAt: time.Date(2026, 8, 6, 12, 0, 0, 0, time.UTC),
	}
}

// contentStart returns the offset of the first byte of a DER value's
// contents, tolerating every definite length form the encoder emits.
func contentStart(t *testing.T, encoded []byte) int {
	t.Helper()
	require.Greater(t, len(encoded), 2)
	switch {
	case encoded[1] < 0x80:
		return 2
	default:
		return 2 + int(encoded[1]&0x7f)
	}
}

func TestOCSPGoodResponse(t *testing.T) {
	fixture := newOCSPFixture(t)

	octx := forge.NewOCSPResponseContext(fixture.arena, fixture.certID, testNow)
	octx.SignerKey = fixture.rootKey

	response, err := forge.CreateEncodedOCSPResponse(octx)
	require.NoError(t, err)

	t.Run("Raw Layout", func(t *testing.T) {
		start := contentStart(t, response)
		// ENUMERATED successful comes first inside the response SEQUENCE.
		assert.Equal(t, []byte{0x0a, 0x01, 0x00}, response[start:start+3])
		// CertStatus good is a two-byte [0] IMPLICIT NULL.
		assert.True(t, bytes.Contains(response, []byte{0x80, 0x00}))
		// producedAt is ASCII GeneralizedTime.
		assert.True(t, bytes.Contains(response, []byte("20260806120000Z")))
	})

	t.Run("Parses As Good", func(t *testing.T) {
		parsed, err := ocsp.ParseResponse(response, nil)
		require.NoError(t, err)

		assert.Equal(t, ocsp.Good, parsed.Status)
		assert.Equal(t, fixture.eeSerial, parsed.SerialNumber.Int64())
		assert.True(t, parsed.ProducedAt.Equal(fixture.producedAt))
		assert.True(t, parsed.ThisUpdate.Equal(fixture.producedAt))
		assert.True(t, parsed.NextUpdate.Equal(fixture.producedAt.Add(10*time.Second)))
	})
}

func TestOCSPRevokedResponse(t *testing.T) {
	fixture := newOCSPFixture(t)

	octx := forge.NewOCSPResponseContext(fixture.arena, fixture.certID, testNow)
	octx.SignerKey = fixture.rootKey
	octx.CertStatus = forge.CertStatusRevoked
	octx.RevocationTime = testNow - 3600

	response, err := forge.CreateEncodedOCSPResponse(octx)
	require.NoError(t, err)

	expectedRevokedAt := time.Date(2026, 8, 6, 11, 0, 0, 0, time.UTC)

	t.Run("Raw Layout", func(t *testing.T) {
		// [1] EXPLICIT SEQUENCE-shaped RevokedInfo holding one GeneralizedTime.
		revokedInfo := append([]byte{0xa1, 0x11, 0x18, 0x0f},
			[]byte("20260806110000Z")...)
		assert.True(t, bytes.Contains(response, revokedInfo))
	})

	t.Run("Parses As Revoked", func(t *testing.T) {
		parsed, err := ocsp.ParseResponse(response, nil)
		require.NoError(t, err)

		assert.Equal(t, ocsp.Revoked, parsed.Status)
		assert.True(t, parsed.RevokedAt.Equal(expectedRevokedAt))
	})
}

func TestOCSPUnknownResponse(t *testing.T) {
	fixture := newOCSPFixture(t)

	octx := forge.NewOCSPResponseContext(fixture.arena, fixture.certID, testNow)
	octx.SignerKey = fixture.rootKey
	octx.CertStatus = forge.CertStatusUnknown

	response, err := forge.CreateEncodedOCSPResponse(octx)
	require.NoError(t, err)

	parsed, err := ocsp.ParseResponse(response, nil)
	require.NoError(t, err)
	assert.Equal(t, ocsp.Unknown, parsed.Status)
}

func TestOCSPSkipResponseBytes(t *testing.T) {
	fixture := newOCSPFixture(t)

	octx := forge.NewOCSPResponseContext(fixture.arena, fixture.certID, testNow)
	octx.SkipResponseBytes = true
	octx.ResponseStatus = forge.OCSPTryLater
	// No signer key is needed when the response carries no ResponseBytes.

	response, err := forge.CreateEncodedOCSPResponse(octx)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x30, 0x03, 0x0a, 0x01, 0x03}, response)
}

func TestOCSPSignerRequired(t *testing.T) {
	fixture := newOCSPFixture(t)

	octx := forge.NewOCSPResponseContext(fixture.arena, fixture.certID, testNow)
	_, err := forge.CreateEncodedOCSPResponse(octx)
	assert.ErrorIs(t, err, forge.ErrInvalidArgs)
}

func TestOCSPResponderByName(t *testing.T) {
	fixture := newOCSPFixture(t)

	octx := forge.NewOCSPResponseContext(fixture.arena, fixture.certID, testNow)
	octx.SignerKey = fixture.rootKey
	octx.SignerNameDER = fixture.rootName

	response, err := forge.CreateEncodedOCSPResponse(octx)
	require.NoError(t, err)

	parsed, err := ocsp.ParseResponse(response, nil)
	require.NoError(t, err)
	assert.Equal(t, fixture.rootName, parsed.RawResponderName)
	assert.Empty(t, parsed.ResponderKeyHash)
}

func TestOCSPResponderByKeyHash(t *testing.T) {
	fixture := newOCSPFixture(t)

	octx := forge.NewOCSPResponseContext(fixture.arena, fixture.certID, testNow)
	octx.SignerKey = fixture.rootKey

	response, err := forge.CreateEncodedOCSPResponse(octx)
	require.NoError(t, err)

	expectedKeyHash, err := fixture.rootKey.KeyHash()
	require.NoError(t, err)

	parsed, err := ocsp.ParseResponse(response, nil)
	require.NoError(t, err)
	assert.Equal(t, expectedKeyHash, parsed.ResponderKeyHash)
}

func TestOCSPWithoutNextUpdate(t *testing.T) {
	fixture := newOCSPFixture(t)

	octx := forge.NewOCSPResponseContext(fixture.arena, fixture.certID, testNow)
	octx.SignerKey = fixture.rootKey
	octx.IncludeNextUpdate = false

	response, err := forge.CreateEncodedOCSPResponse(octx)
	require.NoError(t, err)

	parsed, err := ocsp.ParseResponse(response, nil)
	require.NoError(t, err)
	assert.True(t, parsed.NextUpdate.IsZero())
}

func TestOCSPEmbeddedCertSignature(t *testing.T) {
	fixture := newOCSPFixture(t)

	t.Run("Good Signature Verifies Against Embedded Cert", func(t *testing.T) {
		octx := forge.NewOCSPResponseContext(fixture.arena, fixture.certID, testNow)
		octx.SignerKey = fixture.rootKey
		octx.Certs = [][]byte{fixture.rootDER}

		response, err := forge.CreateEncodedOCSPResponse(octx)
		require.NoError(t, err)

		_, err = ocsp.ParseResponse(response, nil)
		assert.NoError(t, err)
	})

	t.Run("Bad Signature Is Rejected", func(t *testing.T) {
		octx := forge.NewOCSPResponseContext(fixture.arena, fixture.certID, testNow)
		octx.SignerKey = fixture.rootKey
		octx.Certs = [][]byte{fixture.rootDER}
		octx.BadSignature = true

		response, err := forge.CreateEncodedOCSPResponse(octx)
		require.NoError(t, err)

		_, err = ocsp.ParseResponse(response, nil)
		assert.Error(t, err)
	})
}

func TestOCSPExtensionsBlock(t *testing.T) {
	fixture := newOCSPFixture(t)

	// id-pkix-ocsp-nonce, as a complete OBJECT IDENTIFIER element.
	nonceOID := []byte{0x06, 0x09, 0x2b, 0x06, 0x01, 0x05, 0x05, 0x07, 0x30, 0x01, 0x02}
	nonce := []byte{0x04, 0x08, 1, 2, 3, 4, 5, 6, 7, 8}

	octx := forge.NewOCSPResponseContext(fixture.arena, fixture.certID, testNow)
	octx.SignerKey = fixture.rootKey
	octx.Extensions = []forge.OCSPResponseExtension{
		{ID: nonceOID, Critical: true, Value: nonce},
	}

	response, err := forge.CreateEncodedOCSPResponse(octx)
	require.NoError(t, err)

	// Extension ::= SEQUENCE { extnID, critical TRUE, extnValue }.
	assert.True(t, bytes.Contains(response, nonceOID))
	assert.True(t, bytes.Contains(response, []byte{0x01, 0x01, 0xff}))
	assert.True(t, bytes.Contains(response, append([]byte{0x04, 0x0a}, nonce...)))
}
