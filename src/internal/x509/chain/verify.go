// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"bytes"
	"crypto"
	"crypto/rsa"
	"crypto/x509"

	"golang.org/x/crypto/cryptobyte"
	cryptobyte_asn1 "golang.org/x/crypto/cryptobyte/asn1"

	"github.com/H0llyW00dzZ/pkix-forge/src/internal/asn1/der"
)

// minRSAModulusBits is the smallest RSA modulus CheckPublicKey accepts.
const minRSAModulusBits = 2048

// VerifySignedData checks one chain edge: the signature over signedData.Data
// under the public key in spki, with the hash named by the edge's signature
// AlgorithmIdentifier. Trust domains that want real cryptography delegate
// here.
func VerifySignedData(signedData SignedDataWithSignature, spki der.Input) error {
	hash, err := signatureHash(signedData.AlgorithmID)
	if err != nil {
		return err
	}
	pub, err := rsaPublicKey(spki)
	if err != nil {
		return err
	}
	hasher := hash.New()
	hasher.Write(signedData.Data)
	if rsa.VerifyPKCS1v15(pub, hash, hasher.Sum(nil), signedData.Signature) != nil {
		return ErrBadSignature
	}
	return nil
}

// CheckPublicKey accepts RSA SubjectPublicKeyInfos with a modulus of at
// least minRSAModulusBits. Anything else is cryptographically unacceptable
// and fails like an unverifiable signature would.
func CheckPublicKey(spki der.Input) error {
	if _, err := rsaPublicKey(spki); err != nil {
		return err
	}
	return nil
}

func rsaPublicKey(spki der.Input) (*rsa.PublicKey, error) {
	pub, err := x509.ParsePKIXPublicKey(spki)
	if err != nil {
		return nil, ErrBadSignature
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok || rsaPub.N.BitLen() < minRSAModulusBits {
		return nil, ErrBadSignature
	}
	return rsaPub, nil
}

// signatureHash maps an encoded signature AlgorithmIdentifier to the digest
// it prescribes. Only the PKCS#1 v1.5 RSA family is recognised.
func signatureHash(algorithmID der.Input) (crypto.Hash, error) {
	input := cryptobyte.String(algorithmID)
	var algID, oid cryptobyte.String
	if !input.ReadASN1(&algID, cryptobyte_asn1.SEQUENCE) ||
		!algID.ReadASN1(&oid, cryptobyte_asn1.OBJECT_IDENTIFIER) {
		return 0, ErrBadSignature
	}

	for _, candidate := range []struct {
		tag  der.OIDTag
		hash crypto.Hash
	}{
		{der.OIDSHA1WithRSAEncryption, crypto.SHA1},
		{der.OIDSHA256WithRSAEncryption, crypto.SHA256},
		{der.OIDSHA384WithRSAEncryption, crypto.SHA384},
		{der.OIDSHA512WithRSAEncryption, crypto.SHA512},
	} {
		contents, _ := der.OIDContents(candidate.tag)
		if bytes.Equal(oid, contents) {
			return candidate.hash, nil
		}
	}
	return 0, ErrBadSignature
}
