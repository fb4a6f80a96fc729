package domain

// FinancialSentiment is the keyword-model verdict for a transcript.
type FinancialSentiment string

const (
	SentimentBullish FinancialSentiment = "Bullish"
	SentimentBearish FinancialSentiment = "Bearish"
	SentimentNeutral FinancialSentiment = "Neutral"
)

// Transcript holds one earnings-call transcript as already-fetched text.
type Transcript struct {
	Ticker      string `json:"ticker"`
	CompanyName string `json:"company_name"`
	Quarter     string `json:"quarter"`
	Year        int    `json:"year"`
	Date        string `json:"date"`
	Text        string `json:"-"`
	URL         string `json:"url"`
}

// SentimentScore is the analyzer output for one transcript.
type SentimentScore struct {
	Ticker     string             `json:"ticker"`
	Date       string             `json:"date"`
	Sentiment  FinancialSentiment `json:"financial_sentiment"`
	Confidence float64            `json:"confidence"`
	KeyPhrases []string           `json:"key_phrases"`
}

// Alignment describes how an insider trade relates to transcript sentiment.
type Alignment string

const (
	AlignedPositive     Alignment = "Aligned Positive"
	AlignedNegative     Alignment = "Aligned Negative"
	ContrarianSentiment Alignment = "Contrarian (Positive Sentiment, Negative Trade)"
	ContrarianTrade     Alignment = "Contrarian (Negative Sentiment, Positive Trade)"
)

// Correlation joins one insider transaction with one transcript sentiment
// observed within the correlation window.
type Correlation struct {
	Ticker           string             `json:"ticker"`
	SentimentDate    string             `json:"sentiment_date"`
	TransactionDate  string             `json:"transaction_date"`
	DaysFromEarnings int                `json:"days_from_earnings"`
	Sentiment        FinancialSentiment `json:"financial_sentiment"`
	Confidence       float64            `json:"confidence"`
	InsiderName      string             `json:"insider_name"`
	TransactionCode  string             `json:"transaction_code"`
	TotalValue       float64            `json:"total_value"`
	ConvictionScore  float64            `json:"conviction_score"`
	Signal           Signal             `json:"signal"`
	Alignment        Alignment          `json:"alignment"`
	KeyPhrases       string             `json:"key_phrases"`
}
