// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"crypto/x509"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// renderChainTable renders a chain of DER certificates as a markdown table,
// ordered as given (end entity first when the builder produced it).
func renderChainTable(ders [][]byte) string {
	if len(ders) == 0 {
		return "No certificates to display"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"#", "Subject", "Issuer", "Serial", "CA", "Valid Until"})

	var rows [][]string
	for i, derBytes := range ders {
		subject := "(unparseable)"
		issuer := ""
		serial := ""
		isCA := ""
		validUntil := ""
		if cert, err := x509.ParseCertificate(derBytes); err == nil {
			subject = cert.Subject.String()
			issuer = cert.Issuer.String()
			serial = cert.SerialNumber.String()
			isCA = fmt.Sprintf("%t", cert.IsCA)
			validUntil = cert.NotAfter.Format("2006-01-02 15:04:05")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			subject,
			issuer,
			serial,
			isCA,
			validUntil,
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}
