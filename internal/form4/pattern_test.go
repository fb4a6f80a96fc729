package form4

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// truncatedFiling cuts off mid-document, which defeats the XML parser
// but leaves one complete transaction recoverable by pattern matching.
const truncatedFiling = `<?xml version="1.0"?>
<ownershipDocument>
    <issuer>
        <issuerName>Apple Inc.</issuerName>
        <issuerTradingSymbol>AAPL</issuerTradingSymbol>
    </issuer>
    <reportingOwner>
        <rptOwnerCik>0001767094</rptOwnerCik>
        <rptOwnerName>O'BRIEN DEIRDRE</rptOwnerName>
    </reportingOwner>
    <nonDerivativeTransaction>
        <transactionDate><value>2024-10-15</value></transactionDate>
        <transactionCoding><transactionCode>S</transactionCode></transactionCoding>
        <transactionShares><value>32,000</value></transactionShares>
        <transactionPricePerShare><value>242.83</value></transactionPricePerShare>
    </nonDerivativeTransaction>
    <nonDerivativeTransaction>
        <transactionDate><value>2024-10-16</value></transactionDate>
        <transactionCoding><transactionCode>P</transac`

func TestPatternExtractorTruncatedDocument(t *testing.T) {
	extractor := NewPatternExtractor(testLogger())
	doc := ParseDocument(truncatedFiling)
	require.True(t, doc.Malformed())

	ext := extractor.Extract(doc)

	assert.Equal(t, "Apple Inc.", ext.Issuer.Name)
	assert.Equal(t, "AAPL", ext.Issuer.TradingSymbol)
	assert.Equal(t, "O'BRIEN DEIRDRE", ext.Owner.Name)
	assert.Equal(t, "0001767094", ext.Owner.CIK)

	// The second transaction lacks shares and price captures, so the
	// zip stops after the first complete tuple.
	require.Len(t, ext.Transactions, 1)
	txn := ext.Transactions[0]
	assert.Equal(t, "2024-10-15", txn.Date)
	assert.Equal(t, "S", txn.Code)
	assert.Equal(t, "32,000", txn.Shares)
	assert.Equal(t, "242.83", txn.Price)
}

func TestPatternExtractorNoMatches(t *testing.T) {
	extractor := NewPatternExtractor(testLogger())
	ext := extractor.Extract(ParseDocument("this is not a filing at all"))

	assert.Empty(t, ext.Transactions)
	assert.Equal(t, "UNKNOWN", ext.Issuer.Name)
}

func TestPatternExtractorNilDocument(t *testing.T) {
	extractor := NewPatternExtractor(testLogger())
	ext := extractor.Extract(nil)
	assert.Empty(t, ext.Transactions)
}
