package services

import (
	"crypto/rand"
	"fmt"
	"io"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeGenerator produces the short random codes used for catalog coupons
// and redemption vouchers. The byte source is injectable so tests can use
// a deterministic one; by default it reads crypto/rand.
type CodeGenerator struct {
	source io.Reader
}

func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{source: rand.Reader}
}

// NewCodeGeneratorWithSource is meant for tests.
func NewCodeGeneratorWithSource(source io.Reader) *CodeGenerator {
	return &CodeGenerator{source: source}
}

// RandomCode returns an uppercase alphanumeric code of the given length.
func (g *CodeGenerator) RandomCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := io.ReadFull(g.source, buf); err != nil {
		return "", fmt.Errorf("error al generar código: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeCharset[int(b)%len(codeCharset)]
	}
	return string(buf), nil
}

// CatalogCode is the 8-character code encoded into a coupon's catalog QR.
func (g *CodeGenerator) CatalogCode() (string, error) {
	return g.RandomCode(8)
}

// VoucherCode builds the per-redemption code: user id, coupon id and a
// 6-character random suffix.
func (g *CodeGenerator) VoucherCode(userID, couponID uint) (string, error) {
	suffix, err := g.RandomCode(6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d-%d-%s", userID, couponID, suffix), nil
}
