package form4

import (
	"log/slog"
	"regexp"

	"edgarcli/pkg/contracts/domain"
)

// Identity fields are singular: first occurrence wins.
var (
	reIssuerName = regexp.MustCompile(`<issuerName[^>]*>([^<]+)`)
	reSymbol     = regexp.MustCompile(`<issuerTradingSymbol[^>]*>([^<]+)`)
	reOwnerName  = regexp.MustCompile(`<rptOwnerName[^>]*>([^<]+)`)
	reOwnerCIK   = regexp.MustCompile(`<rptOwnerCik[^>]*>([^<]+)`)
)

// Transaction fields are captured as parallel lists, one per field.
var (
	reDate   = regexp.MustCompile(`(?s)<transactionDate[^>]*>.*?<value[^>]*>([^<]+)`)
	reCode   = regexp.MustCompile(`<transactionCode[^>]*>\s*([A-Z])`)
	reShares = regexp.MustCompile(`(?s)<transactionShares[^>]*>.*?<value[^>]*>([0-9,.\-]+)`)
	rePrice  = regexp.MustCompile(`(?s)<transactionPricePerShare[^>]*>.*?<value[^>]*>([0-9,.\-]+)`)
)

// PatternExtractor recovers transactions from raw filing text with
// regular expressions. It is the degraded tier behind the same
// extraction interface as StructuralExtractor, invoked only when
// structural extraction yields zero transactions, never in parallel
// with it.
//
// The four per-field capture lists are zipped up to the length of the
// shortest list; surplus captures are silently dropped. When a
// document's elements are not strictly interleaved one-to-one this can
// mispair values — a documented limitation of best-effort recovery.
type PatternExtractor struct {
	logger *slog.Logger
}

// NewPatternExtractor returns a pattern extractor logging through the
// given logger.
func NewPatternExtractor(logger *slog.Logger) *PatternExtractor {
	return &PatternExtractor{logger: logger.With(slog.String("component", "pattern_extractor"))}
}

// Name identifies the strategy in logs and stats.
func (e *PatternExtractor) Name() string { return "pattern" }

// Extract scans the document's raw text. Like the structural tier it
// never fails; unmatched fields stay empty.
func (e *PatternExtractor) Extract(doc *Document) Extraction {
	ext := Extraction{Issuer: defaultIssuer(), Owner: defaultOwner()}
	if doc == nil || doc.Text == "" {
		return ext
	}
	text := doc.Text

	if m := reIssuerName.FindStringSubmatch(text); m != nil {
		ext.Issuer.Name = m[1]
	}
	if m := reSymbol.FindStringSubmatch(text); m != nil {
		ext.Issuer.TradingSymbol = m[1]
	}
	if m := reOwnerName.FindStringSubmatch(text); m != nil {
		ext.Owner.Name = m[1]
	}
	if m := reOwnerCIK.FindStringSubmatch(text); m != nil {
		ext.Owner.CIK = m[1]
	}

	dates := captures(reDate, text)
	codes := captures(reCode, text)
	shares := captures(reShares, text)
	prices := captures(rePrice, text)

	n := min(len(dates), len(codes), len(shares), len(prices))
	for i := 0; i < n; i++ {
		ext.Transactions = append(ext.Transactions, RawTransaction{
			Kind:   domain.KindNonDerivative,
			Date:   dates[i],
			Code:   codes[i],
			Shares: shares[i],
			Price:  prices[i],
		})
	}

	e.logger.Debug("pattern recovery complete",
		slog.Int("dates", len(dates)),
		slog.Int("codes", len(codes)),
		slog.Int("shares", len(shares)),
		slog.Int("prices", len(prices)),
		slog.Int("recovered", n))

	return ext
}

func captures(re *regexp.Regexp, text string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out
}
