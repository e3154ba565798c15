// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto/x509"
	"encoding/pem"
	"errors"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
)

var (
	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block.
	ErrInvalidPEMBlock = errors.New("x509certs: invalid PEM block")

	// ErrInvalidBlockType indicates that the PEM block type is not the expected certificate type.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates a failure to parse the certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrParsePKCS7 indicates a failure to parse PKCS7 formatted data.
	ErrParsePKCS7 = errors.New("x509certs: failed to parse PKCS7 data")

	// ErrNoCertificatesInPKCS indicates that no certificates were found in the PKCS7 data.
	ErrNoCertificatesInPKCS = errors.New("x509certs: no certificates found in PKCS7 data")
)

// Loader reads certificate input files into the raw DER the chain builder
// and trust domains consume. The engine itself speaks only DER; Loader is
// the boundary that also tolerates PEM-wrapped and PKCS7-bundled inputs so
// externally produced files can seed a trust pool.
type Loader struct {
	certBlockType string
}

// New creates a new Loader with default settings.
func New() *Loader {
	return &Loader{
		certBlockType: "CERTIFICATE",
	}
}

// IsPEM checks if the data is in PEM format.
func (l *Loader) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// decodePEMBlock decodes a PEM block and checks its type.
func (l *Loader) decodePEMBlock(data []byte) (*pem.Block, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEMBlock
	}
	if block.Type != l.certBlockType {
		return nil, ErrInvalidBlockType
	}
	return block, nil
}

// Decode reads a single certificate from data and returns its DER bytes.
// PEM input is unwrapped first; bare input is tried as a certificate and
// then as a PKCS7 bundle, from which the first certificate is taken.
func (l *Loader) Decode(data []byte) ([]byte, error) {
	if l.IsPEM(data) {
		block, err := l.decodePEMBlock(data)
		if err != nil {
			return nil, err
		}
		data = block.Bytes
	}

	cert, err := x509.ParseCertificate(data)
	if err == nil {
		return cert.Raw, nil
	}

	// Attempt to parse as PKCS7 using Cloudflare's library
	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, ErrParsePKCS7
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificatesInPKCS
	}
	return p.Content.SignedData.Certificates[0].Raw, nil
}

// DecodeMultiple reads one or more certificates from data, returning each
// one's DER bytes. PEM bundles yield one certificate per block; bare input
// may be concatenated DER certificates or a PKCS7 bundle.
func (l *Loader) DecodeMultiple(data []byte) ([][]byte, error) {
	if l.IsPEM(data) {
		var ders [][]byte

		for len(data) > 0 {
			block, rest := pem.Decode(data)
			if block == nil {
				break
			}
			if block.Type != l.certBlockType {
				return nil, ErrInvalidBlockType
			}

			cert, err := x509.ParseCertificate(block.Bytes)
			if err != nil {
				return nil, ErrParseCertificate
			}

			ders = append(ders, cert.Raw)
			data = rest
		}

		return ders, nil
	}

	certs, err := x509.ParseCertificates(data)
	if err == nil {
		ders := make([][]byte, 0, len(certs))
		for _, cert := range certs {
			ders = append(ders, cert.Raw)
		}
		return ders, nil
	}

	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, ErrParseCertificate
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificatesInPKCS
	}
	ders := make([][]byte, 0, len(p.Content.SignedData.Certificates))
	for _, cert := range p.Content.SignedData.Certificates {
		ders = append(ders, cert.Raw)
	}
	return ders, nil
}

// Subject returns the printable subject of a DER certificate, for summary
// output.
func (l *Loader) Subject(derBytes []byte) (string, error) {
	cert, err := x509.ParseCertificate(derBytes)
	if err != nil {
		return "", ErrParseCertificate
	}
	return cert.Subject.String(), nil
}
