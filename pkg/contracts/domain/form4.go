package domain

// TransactionKind distinguishes the two Form 4 transaction tables.
type TransactionKind string

const (
	KindNonDerivative TransactionKind = "non_derivative"
	KindDerivative    TransactionKind = "derivative"
)

// Signal is the discrete trading signal derived from a conviction score.
type Signal string

const (
	SignalStrongBuy Signal = "Strong Buy"
	SignalBuy       Signal = "Buy"
	SignalWeakBuy   Signal = "Weak Buy"
	SignalHold      Signal = "Hold"
	SignalSell      Signal = "Sell"
)

// IssuerInfo identifies the company whose securities were transacted.
// Extracted once per filing and shared read-only by every transaction
// from that filing.
type IssuerInfo struct {
	Name          string `json:"company_name"`
	TradingSymbol string `json:"ticker"`
	CIK           string `json:"issuer_cik"`
}

// OwnerInfo identifies the reporting insider. Only the first reporting
// owner of a filing is captured; multi-owner filings are not supported.
type OwnerInfo struct {
	Name string `json:"insider_name"`
	CIK  string `json:"insider_cik"`
}

// UnknownName is the sentinel used when an issuer or owner name cannot
// be located in a filing.
const UnknownName = "UNKNOWN"

// TransactionRecord is one scored row of the output table. Immutable
// once scored; the table is rebuilt from scratch on every run.
type TransactionRecord struct {
	CompanyName     string          `json:"company_name" validate:"required"`
	Ticker          string          `json:"ticker" validate:"required"`
	IssuerCIK       string          `json:"issuer_cik"`
	InsiderName     string          `json:"insider_name" validate:"required"`
	InsiderCIK      string          `json:"insider_cik"`
	TransactionDate string          `json:"transaction_date"`
	TransactionCode string          `json:"transaction_code"`
	CodeDescription string          `json:"code_description"`
	Shares          float64         `json:"shares" validate:"gt=0"`
	PricePerShare   float64         `json:"price_per_share" validate:"gte=0"`
	TotalValue      float64         `json:"total_value" validate:"gte=0"`
	OwnershipType   string          `json:"ownership_type" validate:"oneof=A D I"`
	SecurityTitle   string          `json:"security_title"`
	TransactionType TransactionKind `json:"transaction_type" validate:"oneof=non_derivative derivative"`
	ConvictionScore float64         `json:"conviction_score" validate:"gte=0,lte=5"`
	Signal          Signal          `json:"signal"`
	SourceFile      string          `json:"source_file"`
}

// CSVHeader is the canonical column order of the exported table.
var CSVHeader = []string{
	"company_name", "ticker", "issuer_cik", "insider_name", "insider_cik",
	"transaction_date", "transaction_code", "shares", "price_per_share",
	"total_value", "ownership_type", "security_title", "transaction_type",
	"conviction_score", "signal", "source_file",
}
