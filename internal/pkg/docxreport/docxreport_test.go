package docxreport

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"
)

func buildDocument(t *testing.T, report string) []byte {
	t.Helper()
	payload, err := Build(report, "lease.txt", time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	return payload
}

func documentXML(t *testing.T, payload []byte) string {
	t.Helper()
	reader, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		t.Fatalf("exported payload is not a zip container: %v", err)
	}
	for _, f := range reader.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open document.xml failed: %v", err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read document.xml failed: %v", err)
		}
		return string(content)
	}
	t.Fatalf("word/document.xml missing from the container")
	return ""
}

func TestBuild_ProducesDocxContainer(t *testing.T) {
	payload := buildDocument(t, "2. RISK LEVEL: Medium")

	if !bytes.HasPrefix(payload, []byte("PK")) {
		t.Fatalf("document must start with the zip signature")
	}
	if _, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload))); err != nil {
		t.Fatalf("document must be a readable zip container: %v", err)
	}
}

func TestBuild_CarriesReportAndDisclaimer(t *testing.T) {
	report := "1. EXECUTIVE SUMMARY: short lease.\n2. RISK LEVEL: Medium\n4. RECOMMENDATION: Negotiate"
	xml := documentXML(t, buildDocument(t, report))

	for _, want := range []string{
		"Legal Report: lease.txt",
		"2. RISK LEVEL: Medium",
		"4. RECOMMENDATION: Negotiate",
		"Analysis date: 2025-03-14 10:30",
		"does not constitute binding legal advice",
	} {
		if !strings.Contains(xml, want) {
			t.Fatalf("document body missing %q", want)
		}
	}
}
