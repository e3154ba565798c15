// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	x509chain "github.com/H0llyW00dzZ/pkix-forge/src/internal/x509/chain"
)

var (
	// ErrEmptyProfile indicates a profile without any chain entries.
	ErrEmptyProfile = errors.New("cli: profile has no chain entries")

	// ErrBadProfile indicates a profile that parsed but cannot be forged.
	ErrBadProfile = errors.New("cli: invalid profile")
)

// Profile describes one chain to forge. The first entry is the self-signed
// root and trust anchor; every later entry is issued by its predecessor.
type Profile struct {
	Chain    []ProfileCert `yaml:"chain"`
	Validity struct {
		// Offsets in seconds relative to the forge time; zero values fall
		// back to one day either side.
		NotBeforeOffset int64 `yaml:"not_before_offset"`
		NotAfterOffset  int64 `yaml:"not_after_offset"`
	} `yaml:"validity"`
	OCSP *ProfileOCSP `yaml:"ocsp"`
}

// ProfileCert is one certificate in the chain.
type ProfileCert struct {
	// Name is an ASCII distinguished name such as "CN=Intermediate CA,O=Test".
	Name string `yaml:"name"`
	// EndEntity marks the leaf; only the last entry may set it.
	EndEntity bool `yaml:"end_entity"`
	// PathLen adds a pathLenConstraint to the CA's BasicConstraints.
	PathLen *int `yaml:"path_len"`
	// EKU lists purposes: server_auth, client_auth, code_signing, ocsp_signing.
	EKU []string `yaml:"eku"`
	// CorruptSignature flips one bit in the signature after signing.
	CorruptSignature bool `yaml:"corrupt_signature"`
}

// ProfileOCSP asks for an OCSP response covering the last chain entry.
type ProfileOCSP struct {
	// Status is good, revoked or unknown; good is the default.
	Status string `yaml:"status"`
	// RevokedSecondsAgo places the revocation time for status revoked.
	RevokedSecondsAgo int64 `yaml:"revoked_seconds_ago"`
	// SkipResponseBytes truncates the response after its status.
	SkipResponseBytes bool `yaml:"skip_response_bytes"`
	// ByName uses the signer's name as ResponderID instead of its key hash.
	ByName bool `yaml:"by_name"`
	// BadSignature flips one bit in the response signature.
	BadSignature bool `yaml:"bad_signature"`
}

// LoadProfile reads and validates a YAML profile file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseProfile(data)
}

// ParseProfile parses and validates YAML profile bytes.
func ParseProfile(data []byte) (*Profile, error) {
	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadProfile, err)
	}
	if len(profile.Chain) == 0 {
		return nil, ErrEmptyProfile
	}
	for i, entry := range profile.Chain {
		if entry.Name == "" {
			return nil, fmt.Errorf("%w: chain entry %d has no name", ErrBadProfile, i)
		}
		if entry.EndEntity && i != len(profile.Chain)-1 {
			return nil, fmt.Errorf("%w: only the last entry may be an end entity", ErrBadProfile)
		}
		for _, eku := range entry.EKU {
			if _, ok := ekuByName[eku]; !ok {
				return nil, fmt.Errorf("%w: unknown EKU %q", ErrBadProfile, eku)
			}
		}
	}
	if profile.OCSP != nil {
		switch profile.OCSP.Status {
		case "", "good", "revoked", "unknown":
		default:
			return nil, fmt.Errorf("%w: unknown OCSP status %q", ErrBadProfile,
				profile.OCSP.Status)
		}
	}
	return &profile, nil
}

// ekuByName maps profile and flag spellings to purposes.
var ekuByName = map[string]x509chain.KeyPurposeID{
	"any":          x509chain.AnyPurpose,
	"server_auth":  x509chain.IDKPServerAuth,
	"client_auth":  x509chain.IDKPClientAuth,
	"code_signing": x509chain.IDKPCodeSigning,
	"ocsp_signing": x509chain.IDKPOCSPSigning,
}
