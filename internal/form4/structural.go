package form4

import (
	"log/slog"

	"github.com/beevik/etree"

	"edgarcli/pkg/contracts/domain"
)

// StructuralExtractor walks a parsed ownership document tree and pulls
// issuer identity, the first reporting owner, and every transaction
// container from both tables. It is a pure read of the tree: no state
// survives between documents. Multi-owner filings take the first owner
// found; this is a documented limitation of the format support, not a
// bug.
type StructuralExtractor struct {
	logger *slog.Logger
}

// NewStructuralExtractor returns a structural extractor logging through
// the given logger.
func NewStructuralExtractor(logger *slog.Logger) *StructuralExtractor {
	return &StructuralExtractor{logger: logger.With(slog.String("component", "structural_extractor"))}
}

// Name identifies the strategy in logs and stats.
func (e *StructuralExtractor) Name() string { return "structural" }

// Extract never fails: a malformed document yields an empty extraction
// with sentinel issuer/owner values.
func (e *StructuralExtractor) Extract(doc *Document) Extraction {
	ext := Extraction{Issuer: defaultIssuer(), Owner: defaultOwner()}
	if doc == nil || doc.Root == nil {
		return ext
	}
	root := doc.Root

	ext.Issuer = e.extractIssuer(root)
	ext.Owner = e.extractOwner(root)

	nonDeriv := allContainers(root, nonDerivativeContainerSteps)
	deriv := allContainers(root, derivativeContainerSteps)
	e.logger.Debug("found transaction containers",
		slog.Int("non_derivative", len(nonDeriv)),
		slog.Int("derivative", len(deriv)))

	for _, container := range nonDeriv {
		ext.Transactions = append(ext.Transactions, e.parseTransaction(container, domain.KindNonDerivative))
	}
	for _, container := range deriv {
		ext.Transactions = append(ext.Transactions, e.parseTransaction(container, domain.KindDerivative))
	}

	// Containers without a parsable positive share count are not real
	// transactions (cancelled or zero rows) and are dropped here so the
	// fallback trigger sees a genuinely empty result.
	kept := ext.Transactions[:0]
	for _, txn := range ext.Transactions {
		if Normalize(txn.Shares) > 0 {
			kept = append(kept, txn)
		}
	}
	ext.Transactions = kept

	return ext
}

func (e *StructuralExtractor) extractIssuer(root *etree.Element) domain.IssuerInfo {
	info := defaultIssuer()

	// Scope field lookups to the issuer block when one exists; fall back
	// to the whole document for flattened filings.
	scope := firstContainer(root, issuerContainerSteps)
	if scope == nil {
		scope = root
	}

	if name := Locate(scope, issuerNamePaths); name != "" {
		info.Name = name
	}
	if symbol := Locate(scope, issuerSymbolPaths); symbol != "" {
		info.TradingSymbol = symbol
	}
	info.CIK = Locate(scope, issuerCIKPaths)
	return info
}

func (e *StructuralExtractor) extractOwner(root *etree.Element) domain.OwnerInfo {
	info := defaultOwner()

	scope := firstContainer(root, ownerContainerSteps)
	if scope == nil {
		scope = root
	}

	if name := Locate(scope, ownerNamePaths); name != "" {
		info.Name = name
	}
	info.CIK = Locate(scope, ownerCIKPaths)
	return info
}

func (e *StructuralExtractor) parseTransaction(container *etree.Element, kind domain.TransactionKind) RawTransaction {
	return RawTransaction{
		Kind:          kind,
		Date:          Locate(container, transactionDatePaths),
		Code:          Locate(container, transactionCodePaths),
		Shares:        Locate(container, sharesPaths),
		Price:         Locate(container, pricePaths),
		OwnershipType: Locate(container, ownershipPaths),
		SecurityTitle: Locate(container, securityTitlePaths),
	}
}
