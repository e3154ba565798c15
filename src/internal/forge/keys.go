// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package forge

import (
	"bytes"
	"crypto"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/cryptobyte"
	cryptobyte_asn1 "golang.org/x/crypto/cryptobyte/asn1"

	"github.com/H0llyW00dzZ/pkix-forge/src/internal/asn1/der"
)

const (
	// rsaKeyBits is the modulus size of every key the engine generates.
	rsaKeyBits = 2048

	// maxKeyGenRetries bounds the entropy-starvation retry loop.
	maxKeyGenRetries = 10
)

var (
	// ErrKeyGeneration indicates that key generation failed even after
	// re-seeding and retrying.
	ErrKeyGeneration = errors.New("forge: key generation failed")

	// ErrMalformedSPKI indicates SubjectPublicKeyInfo bytes that do not
	// parse as SEQUENCE { AlgorithmIdentifier, BIT STRING }.
	ErrMalformedSPKI = errors.New("forge: malformed SubjectPublicKeyInfo")
)

// KeyPair wraps the single asymmetric scheme the engine signs with.
// Keys have their own lifetime: a key must outlive every arena holding
// signatures it produced.
type KeyPair struct {
	Private *rsa.PrivateKey
}

// Since these keys only sign throwaway test artifacts, they don't need to be
// good, random keys. https://xkcd.com/221/
var reseed = [8]byte{4, 4, 4, 4, 4, 4, 4, 4}

// GenerateKeyPair generates a fresh RSA-2048 keypair from random. Generation
// can transiently fail when the source runs dry, so it retries up to
// maxKeyGenRetries times, mixing a fixed seed back into the stream between
// attempts.
func GenerateKeyPair(random io.Reader) (*KeyPair, error) {
	var lastErr error
	for retries := 0; retries < maxKeyGenRetries; retries++ {
		key, err := rsa.GenerateKey(random, rsaKeyBits)
		if err == nil {
			return &KeyPair{Private: key}, nil
		}
		lastErr = err
		random = io.MultiReader(bytes.NewReader(reseed[:]), random)
	}
	return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, lastErr)
}

// SubjectPublicKeyInfo derives the DER SubjectPublicKeyInfo of the public
// half. Pure function of the key.
func (k *KeyPair) SubjectPublicKeyInfo() ([]byte, error) {
	return x509.MarshalPKIXPublicKey(&k.Private.PublicKey)
}

// KeyHash returns the SHA-1 digest of the subjectPublicKey BIT STRING
// payload (tag, length and unused-bits octet stripped), the form OCSP's
// byKey ResponderID and CertID issuerKeyHash require.
func (k *KeyPair) KeyHash() ([]byte, error) {
	spki, err := k.SubjectPublicKeyInfo()
	if err != nil {
		return nil, err
	}
	return SPKIKeyHash(spki)
}

// SPKIKeyHash digests the subjectPublicKey bits of an encoded
// SubjectPublicKeyInfo under SHA-1.
func SPKIKeyHash(spki []byte) ([]byte, error) {
	bits, err := spkiPublicKeyBytes(spki)
	if err != nil {
		return nil, err
	}
	sum := sha1.Sum(bits)
	return sum[:], nil
}

// spkiPublicKeyBytes extracts the BIT STRING payload from an encoded
// SubjectPublicKeyInfo, dropping the unused-bits octet.
func spkiPublicKeyBytes(spki []byte) ([]byte, error) {
	input := cryptobyte.String(spki)
	var inner, algID cryptobyte.String
	var bits cryptobyte.String
	if !input.ReadASN1(&inner, cryptobyte_asn1.SEQUENCE) ||
		!inner.ReadASN1(&algID, cryptobyte_asn1.SEQUENCE) ||
		!inner.ReadASN1(&bits, cryptobyte_asn1.BIT_STRING) ||
		len(bits) < 1 {
		return nil, ErrMalformedSPKI
	}
	return []byte(bits[1:]), nil
}

// SignData signs tbs with key under hashAlg using PKCS#1 v1.5. The returned
// signature is freshly allocated; callers copy it into an arena when it has
// to share an artifact's lifetime.
func SignData(key *KeyPair, tbs []byte, hashAlg der.HashAlg) ([]byte, error) {
	h, err := cryptoHash(hashAlg)
	if err != nil {
		return nil, err
	}
	hasher := h.New()
	hasher.Write(tbs)
	return rsa.SignPKCS1v15(nil, key.Private, h, hasher.Sum(nil))
}

func cryptoHash(hashAlg der.HashAlg) (crypto.Hash, error) {
	switch hashAlg {
	case der.SHA1:
		return crypto.SHA1, nil
	case der.SHA256:
		return crypto.SHA256, nil
	case der.SHA384:
		return crypto.SHA384, nil
	case der.SHA512:
		return crypto.SHA512, nil
	}
	return 0, der.ErrUnknownHashAlgorithm
}
