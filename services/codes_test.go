package services

import (
	"bytes"
	"strings"
	"testing"
)

func TestRandomCodeLengthAndCharset(t *testing.T) {
	gen := NewCodeGenerator()

	code, err := gen.RandomCode(8)
	if err != nil {
		t.Fatalf("RandomCode: %v", err)
	}
	if len(code) != 8 {
		t.Fatalf("code length = %d, want 8", len(code))
	}
	for _, r := range code {
		if !strings.ContainsRune(codeCharset, r) {
			t.Errorf("code %q contains %q outside the charset", code, r)
		}
	}
}

func TestCatalogCodeIsDeterministicWithFixedSource(t *testing.T) {
	gen := NewCodeGeneratorWithSource(bytes.NewReader([]byte{0, 1, 2, 3, 4, 5, 6, 7}))

	code, err := gen.CatalogCode()
	if err != nil {
		t.Fatalf("CatalogCode: %v", err)
	}
	if code != "ABCDEFGH" {
		t.Fatalf("code = %q, want ABCDEFGH", code)
	}
}

func TestVoucherCodeFormat(t *testing.T) {
	gen := NewCodeGeneratorWithSource(bytes.NewReader(make([]byte, 6)))

	code, err := gen.VoucherCode(7, 3)
	if err != nil {
		t.Fatalf("VoucherCode: %v", err)
	}
	if code != "7-3-AAAAAA" {
		t.Fatalf("code = %q, want 7-3-AAAAAA", code)
	}
}

func TestRandomCodeExhaustedSource(t *testing.T) {
	gen := NewCodeGeneratorWithSource(bytes.NewReader([]byte{1, 2}))

	if _, err := gen.RandomCode(6); err == nil {
		t.Fatal("expected error when the source runs dry")
	}
}
