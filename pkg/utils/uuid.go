package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	slugStrip    = regexp.MustCompile("[^a-z0-9-]")
	slugCollapse = regexp.MustCompile("-+")
)

// Slugify turns a shop name into a URL-safe slug: lowercase, hyphen-separated,
// alphanumerics only.
func Slugify(s string) string {
	s = strings.ReplaceAll(strings.ToLower(s), " ", "-")
	s = slugStrip.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func docNumber(prefix string) string {
	return prefix + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateBillNo builds a bill number from the tenant's prefix and a random
// suffix.
func GenerateBillNo(prefix string) string {
	return docNumber(prefix)
}

// GenerateInvoiceNo builds an invoice number from the tenant's prefix and a
// random suffix.
func GenerateInvoiceNo(prefix string) string {
	return docNumber(prefix)
}
