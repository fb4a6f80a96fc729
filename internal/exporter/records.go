package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"edgarcli/pkg/contracts/domain"
)

// TransactionRows renders scored records in the canonical column order.
func TransactionRows(records []domain.TransactionRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.CompanyName,
			rec.Ticker,
			rec.IssuerCIK,
			rec.InsiderName,
			rec.InsiderCIK,
			rec.TransactionDate,
			rec.TransactionCode,
			strconv.FormatFloat(rec.Shares, 'f', -1, 64),
			strconv.FormatFloat(rec.PricePerShare, 'f', 2, 64),
			strconv.FormatFloat(rec.TotalValue, 'f', 2, 64),
			rec.OwnershipType,
			rec.SecurityTitle,
			string(rec.TransactionType),
			strconv.FormatFloat(rec.ConvictionScore, 'f', 1, 64),
			string(rec.Signal),
			rec.SourceFile,
		})
	}
	return rows
}

// WriteTransactions writes the full scored table.
func (w *CSVWriter) WriteTransactions(filePath string, records []domain.TransactionRecord) error {
	return w.WriteSimpleCSV(filePath, domain.CSVHeader, TransactionRows(records))
}

// WriteHighConviction writes the filtered subset of records whose score
// is at or above the cutoff.
func (w *CSVWriter) WriteHighConviction(filePath string, records []domain.TransactionRecord, cutoff float64) (int, error) {
	var filtered []domain.TransactionRecord
	for _, rec := range records {
		if rec.ConvictionScore >= cutoff {
			filtered = append(filtered, rec)
		}
	}
	if len(filtered) == 0 {
		return 0, nil
	}
	return len(filtered), w.WriteTransactions(filePath, filtered)
}

// CorrelationHeader is the column order of the sentiment correlation
// report.
var CorrelationHeader = []string{
	"ticker", "sentiment_date", "transaction_date", "days_from_earnings",
	"financial_sentiment", "confidence", "insider_name", "transaction_code",
	"total_value", "conviction_score", "signal", "alignment", "key_phrases",
}

// WriteCorrelations writes the sentiment/insider correlation table.
func (w *CSVWriter) WriteCorrelations(filePath string, correlations []domain.Correlation) error {
	rows := make([][]string, 0, len(correlations))
	for _, c := range correlations {
		rows = append(rows, []string{
			c.Ticker,
			c.SentimentDate,
			c.TransactionDate,
			strconv.Itoa(c.DaysFromEarnings),
			string(c.Sentiment),
			strconv.FormatFloat(c.Confidence, 'f', 2, 64),
			c.InsiderName,
			c.TransactionCode,
			strconv.FormatFloat(c.TotalValue, 'f', 2, 64),
			strconv.FormatFloat(c.ConvictionScore, 'f', 1, 64),
			string(c.Signal),
			string(c.Alignment),
			c.KeyPhrases,
		})
	}
	return w.WriteSimpleCSV(filePath, CorrelationHeader, rows)
}

// ReadTransactions reads a previously exported table back into records.
// Used by the correlator and the signals API, which consume the CSV
// rather than re-running extraction.
func ReadTransactions(filePath string) ([]domain.TransactionRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open transactions file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range domain.CSVHeader {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("transactions file missing column %q", required)
		}
	}

	var records []domain.TransactionRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		records = append(records, domain.TransactionRecord{
			CompanyName:     row[col["company_name"]],
			Ticker:          row[col["ticker"]],
			IssuerCIK:       row[col["issuer_cik"]],
			InsiderName:     row[col["insider_name"]],
			InsiderCIK:      row[col["insider_cik"]],
			TransactionDate: row[col["transaction_date"]],
			TransactionCode: row[col["transaction_code"]],
			Shares:          parseFloat(row[col["shares"]]),
			PricePerShare:   parseFloat(row[col["price_per_share"]]),
			TotalValue:      parseFloat(row[col["total_value"]]),
			OwnershipType:   row[col["ownership_type"]],
			SecurityTitle:   row[col["security_title"]],
			TransactionType: domain.TransactionKind(row[col["transaction_type"]]),
			ConvictionScore: parseFloat(row[col["conviction_score"]]),
			Signal:          domain.Signal(row[col["signal"]]),
			SourceFile:      row[col["source_file"]],
		})
	}
	return records, nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
