// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/H0llyW00dzZ/pkix-forge/src/internal/asn1/der"
	"github.com/H0llyW00dzZ/pkix-forge/src/internal/forge"
	"github.com/H0llyW00dzZ/pkix-forge/src/internal/helper/gc"
	x509chain "github.com/H0llyW00dzZ/pkix-forge/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/pkix-forge/src/logger"
)

// ekuOIDByName maps profile spellings to the OID registry for encoding.
var ekuOIDByName = map[string]der.OIDTag{
	"server_auth":  der.OIDKPServerAuth,
	"client_auth":  der.OIDKPClientAuth,
	"code_signing": der.OIDKPCodeSigning,
	"ocsp_signing": der.OIDKPOCSPSigning,
}

// execForge forges the chain a profile describes, writes every artifact to
// the output directory, and runs the builder over the result as a sanity
// check.
func execForge(log logger.Logger) error {
	profile, err := LoadProfile(profilePath)
	if err != nil {
		return err
	}
	t, err := resolveTime()
	if err != nil {
		return err
	}
	// Pin the forge time once so every artifact of this run agrees on "now".
	clock := forge.NewClock(t)
	now := clock.Now()

	arena := gc.NewArena()
	defer arena.Release()

	fctx := forge.NewContext(arena, now)
	if profile.Validity.NotBeforeOffset != 0 {
		fctx.NotBefore = now + der.Time(profile.Validity.NotBeforeOffset)
	}
	if profile.Validity.NotAfterOffset != 0 {
		fctx.NotAfter = now + der.Time(profile.Validity.NotAfterOffset)
	}

	count := len(profile.Chain)
	certs := make([][]byte, 0, count)
	keys := make([]*forge.KeyPair, 0, count)
	serials := make([][]byte, 0, count)
	nameDERs := make([][]byte, 0, count)

	for i, entry := range profile.Chain {
		issuerIndex := 0
		if i > 0 {
			issuerIndex = i - 1
		}
		issuerName := profile.Chain[issuerIndex].Name

		issuerDER, err := forge.ASCIIToDERName(arena, issuerName)
		if err != nil {
			return fmt.Errorf("cli: bad issuer name %q: %w", issuerName, err)
		}
		subjectDER, err := forge.ASCIIToDERName(arena, entry.Name)
		if err != nil {
			return fmt.Errorf("cli: bad subject name %q: %w", entry.Name, err)
		}

		var extensions [][]byte
		if !entry.EndEntity {
			basicConstraints, err := forge.CreateEncodedBasicConstraints(arena,
				true, entry.PathLen, forge.Critical)
			if err != nil {
				return err
			}
			extensions = append(extensions, basicConstraints)
		}
		if len(entry.EKU) > 0 {
			tags := make([]der.OIDTag, 0, len(entry.EKU))
			for _, eku := range entry.EKU {
				tags = append(tags, ekuOIDByName[eku])
			}
			ekuExtension, err := forge.CreateEncodedEKUExtension(arena, tags,
				forge.NotCritical)
			if err != nil {
				return err
			}
			extensions = append(extensions, ekuExtension)
		}

		serial, err := fctx.NextSerialNumber()
		if err != nil {
			return err
		}

		var issuerKey *forge.KeyPair
		if i > 0 {
			issuerKey = keys[i-1]
		}
		certDER, key, err := forge.CreateEncodedCertificate(arena, fctx.Random,
			&forge.CertificateContext{
				Version:          forge.VersionV3,
				SerialNumber:     serial,
				IssuerDER:        issuerDER,
				NotBefore:        fctx.NotBefore,
				NotAfter:         fctx.NotAfter,
				SubjectDER:       subjectDER,
				Extensions:       extensions,
				IssuerKey:        issuerKey,
				CorruptSignature: entry.CorruptSignature,
			})
		if err != nil {
			return fmt.Errorf("cli: forging %q: %w", entry.Name, err)
		}

		filename := filepath.Join(outputDir,
			fmt.Sprintf("%02d-%s.der", i, slugify(entry.Name)))
		if err := os.WriteFile(filename, certDER, 0644); err != nil {
			return err
		}
		log.Printf("wrote %s (%d bytes)", filename, len(certDER))

		certs = append(certs, certDER)
		keys = append(keys, key)
		serials = append(serials, serial)
		nameDERs = append(nameDERs, subjectDER)
	}

	if profile.OCSP != nil {
		if err := forgeOCSP(log, arena, profile, now, certs, keys, serials,
			nameDERs); err != nil {
			return err
		}
	}

	log.Println(renderChainTable(reverse(certs)))
	checkForgedChain(log, profile, now, certs)
	return nil
}

// forgeOCSP encodes the profile's OCSP response for the last chain entry.
func forgeOCSP(log logger.Logger, arena *gc.Arena, profile *Profile,
	now der.Time, certs [][]byte, keys []*forge.KeyPair,
	serials, nameDERs [][]byte) error {
	subject := len(certs) - 1
	issuer := subject
	if subject > 0 {
		issuer = subject - 1
	}

	issuerSPKI, err := keys[issuer].SubjectPublicKeyInfo()
	if err != nil {
		return err
	}

	octx := forge.NewOCSPResponseContext(arena, forge.CertID{
		IssuerDER:    nameDERs[issuer],
		IssuerSPKI:   issuerSPKI,
		SerialNumber: serials[subject],
	}, now)
	octx.SignerKey = keys[issuer]
	octx.BadSignature = profile.OCSP.BadSignature
	octx.SkipResponseBytes = profile.OCSP.SkipResponseBytes
	if profile.OCSP.ByName {
		octx.SignerNameDER = nameDERs[issuer]
	}
	switch profile.OCSP.Status {
	case "revoked":
		octx.CertStatus = forge.CertStatusRevoked
		ago := profile.OCSP.RevokedSecondsAgo
		if ago == 0 {
			ago = 3600
		}
		octx.RevocationTime = now - der.Time(ago)
	case "unknown":
		octx.CertStatus = forge.CertStatusUnknown
	}

	response, err := forge.CreateEncodedOCSPResponse(octx)
	if err != nil {
		return fmt.Errorf("cli: forging OCSP response: %w", err)
	}
	filename := filepath.Join(outputDir, "ocsp.der")
	if err := os.WriteFile(filename, response, 0644); err != nil {
		return err
	}
	log.Printf("wrote %s (%d bytes)", filename, len(response))
	return nil
}

// checkForgedChain runs the path builder over the freshly forged pool and
// reports the outcome. Profiles that deliberately forge broken material
// (corrupt signatures, expired windows) are a feature, so the result is
// informational and never fails the command.
func checkForgedChain(log logger.Logger, profile *Profile, now der.Time,
	certs [][]byte) {
	domain := x509chain.NewMemoryTrustDomain()
	if err := domain.AddAnchor(certs[0]); err != nil {
		log.Printf("forged chain does not validate: %v", err)
		return
	}
	for _, cert := range certs[1:] {
		if err := domain.AddCert(cert); err != nil {
			log.Printf("forged chain does not validate: %v", err)
			return
		}
	}

	role := x509chain.MustBeCA
	if profile.Chain[len(profile.Chain)-1].EndEntity {
		role = x509chain.MustBeEndEntity
	}
	target := certs[len(certs)-1]

	chain, err := x509chain.BuildCertChain(domain, target, now, role,
		x509chain.NoParticularKeyUsageRequired, x509chain.AnyPurpose,
		x509chain.AnyPolicy, nil)
	if err != nil {
		log.Printf("forged chain does not validate: %v", err)
		return
	}
	log.Printf("forged chain validates: %d certificate(s)", len(chain))
}

// slugify turns a distinguished name into a safe file-name fragment.
func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

// reverse returns the chain end-entity-first, the order the builder reports.
func reverse(certs [][]byte) [][]byte {
	out := make([][]byte, len(certs))
	for i, cert := range certs {
		out[len(certs)-1-i] = cert
	}
	return out
}

// readFile slurps one file through the pooled buffer.
func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err := buf.ReadFrom(file); err != nil {
		return nil, fmt.Errorf("cli: reading %s: %w", path, err)
	}
	return append([]byte(nil), buf.Bytes()...), nil
}
