// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/pkix-forge/src/internal/asn1/der"
	x509certs "github.com/H0llyW00dzZ/pkix-forge/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/pkix-forge/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/pkix-forge/src/logger"
)

var (
	profilePath string
	outputDir   string
	anchorFiles []string
	atTime      string
	roleName    string
	ekuName     string
)

// Execute runs the root command, handling any errors that occur during
// execution.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	rootCmd := &cobra.Command{
		Use:           "pkix-forge",
		Short:         "X.509 test chain forge and path builder",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	forgeCmd := &cobra.Command{
		Use:   "forge",
		Short: "forge a certificate chain (and optional OCSP response) from a YAML profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execForge(log)
		},
	}
	forgeCmd.Flags().StringVarP(&profilePath, "profile", "p", "", "chain profile YAML file")
	forgeCmd.Flags().StringVarP(&outputDir, "out", "o", ".", "directory for the forged .der files")
	forgeCmd.Flags().StringVar(&atTime, "now", "", "forge time as RFC 3339 (default: current time)")
	_ = forgeCmd.MarkFlagRequired("profile")

	verifyCmd := &cobra.Command{
		Use:   "verify CERT_FILE [ISSUER_FILE...]",
		Short: "build and validate a chain for a certificate against anchors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execVerify(log, args)
		},
	}
	verifyCmd.Flags().StringArrayVarP(&anchorFiles, "anchor", "a", nil, "trust anchor file (repeatable)")
	verifyCmd.Flags().StringVar(&atTime, "time", "", "verification time as RFC 3339 (default: current time)")
	verifyCmd.Flags().StringVar(&roleName, "role", "end-entity", "role of the target: end-entity or ca")
	verifyCmd.Flags().StringVar(&ekuName, "eku", "server_auth", "required extended key usage")
	_ = verifyCmd.MarkFlagRequired("anchor")

	rootCmd.AddCommand(forgeCmd, verifyCmd)
	return rootCmd.ExecuteContext(ctx)
}

// resolveTime parses the shared time flag, defaulting to the wall clock.
func resolveTime() (der.Time, error) {
	if atTime == "" {
		return der.FromUnix(time.Now().UTC().Unix()), nil
	}
	parsed, err := time.Parse(time.RFC3339, atTime)
	if err != nil {
		return 0, fmt.Errorf("cli: invalid time %q: %w", atTime, err)
	}
	return der.FromUnix(parsed.Unix()), nil
}

// execVerify loads the target and issuer certificates, seeds a memory trust
// domain with the anchors, and runs the chain builder.
func execVerify(log logger.Logger, args []string) error {
	t, err := resolveTime()
	if err != nil {
		return err
	}

	role := x509chain.MustBeEndEntity
	switch roleName {
	case "end-entity":
	case "ca":
		role = x509chain.MustBeCA
	default:
		return fmt.Errorf("cli: unknown role %q", roleName)
	}
	eku, ok := ekuByName[ekuName]
	if !ok {
		return fmt.Errorf("cli: unknown EKU %q", ekuName)
	}

	loader := x509certs.New()
	domain := x509chain.NewMemoryTrustDomain()
	for _, anchorFile := range anchorFiles {
		ders, err := loadCertFile(loader, anchorFile)
		if err != nil {
			return err
		}
		for _, anchor := range ders {
			if err := domain.AddAnchor(anchor); err != nil {
				return fmt.Errorf("cli: bad anchor in %s: %w", anchorFile, err)
			}
		}
	}
	for _, issuerFile := range args[1:] {
		ders, err := loadCertFile(loader, issuerFile)
		if err != nil {
			return err
		}
		for _, issuer := range ders {
			if err := domain.AddCert(issuer); err != nil {
				return fmt.Errorf("cli: bad certificate in %s: %w", issuerFile, err)
			}
		}
	}

	targets, err := loadCertFile(loader, args[0])
	if err != nil {
		return err
	}
	target := targets[0]

	chain, err := x509chain.BuildCertChain(domain, target, t, role,
		x509chain.NoParticularKeyUsageRequired, eku, x509chain.AnyPolicy, nil)
	if err != nil {
		log.Printf("chain building failed: %v", err)
		return err
	}

	ders := make([][]byte, len(chain))
	for i, link := range chain {
		ders[i] = link
	}
	log.Println(renderChainTable(ders))
	log.Printf("chain valid: %d certificate(s) up to trust anchor", len(chain))
	return nil
}

// loadCertFile slurps one file through the pooled buffer and decodes every
// certificate in it.
func loadCertFile(loader *x509certs.Loader, path string) ([][]byte, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	ders, err := loader.DecodeMultiple(data)
	if err != nil {
		return nil, fmt.Errorf("cli: decoding %s: %w", path, err)
	}
	if len(ders) == 0 {
		return nil, fmt.Errorf("cli: no certificates in %s", path)
	}
	return ders, nil
}
