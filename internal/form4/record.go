package form4

import (
	"edgarcli/pkg/contracts/domain"
)

// RawTransaction holds one transaction container's fields exactly as
// extracted, before numeric normalization. Values stay strings here
// because filings mix formats; normalization happens once, in
// BuildRecord. Never mutated after creation.
type RawTransaction struct {
	Kind          domain.TransactionKind
	Date          string
	Code          string
	Shares        string
	Price         string
	OwnershipType string
	SecurityTitle string
}

// Extraction is the per-document result either strategy produces.
type Extraction struct {
	Issuer       domain.IssuerInfo
	Owner        domain.OwnerInfo
	Transactions []RawTransaction
}

// Extractor is the strategy interface over structural and pattern
// extraction. Implementations never fail: a document they cannot read
// yields an empty Extraction.
type Extractor interface {
	Name() string
	Extract(doc *Document) Extraction
}

// BuildRecord assembles an unscored output record from an extraction's
// parts. It returns false when the transaction has no positive share
// count, which marks a cancelled or zero row rather than a real trade.
// An absent ownership flag defaults to "A": by filing convention,
// absence implies acquisition.
func BuildRecord(issuer domain.IssuerInfo, owner domain.OwnerInfo, raw RawTransaction, sourceFile string) (domain.TransactionRecord, bool) {
	shares := Normalize(raw.Shares)
	if shares <= 0 {
		return domain.TransactionRecord{}, false
	}
	price := Normalize(raw.Price)

	ownership := raw.OwnershipType
	if ownership == "" {
		ownership = "A"
	}

	return domain.TransactionRecord{
		CompanyName:     issuer.Name,
		Ticker:          issuer.TradingSymbol,
		IssuerCIK:       issuer.CIK,
		InsiderName:     owner.Name,
		InsiderCIK:      owner.CIK,
		TransactionDate: raw.Date,
		TransactionCode: raw.Code,
		Shares:          shares,
		PricePerShare:   price,
		TotalValue:      shares * price,
		OwnershipType:   ownership,
		SecurityTitle:   raw.SecurityTitle,
		TransactionType: raw.Kind,
		SourceFile:      sourceFile,
	}, true
}

func defaultIssuer() domain.IssuerInfo {
	return domain.IssuerInfo{Name: domain.UnknownName, TradingSymbol: domain.UnknownName}
}

func defaultOwner() domain.OwnerInfo {
	return domain.OwnerInfo{Name: domain.UnknownName}
}
