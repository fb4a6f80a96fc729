package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edgarcli/internal/config"
	"edgarcli/internal/conviction"
	"edgarcli/internal/files"
	"edgarcli/pkg/contracts/domain"
)

const sampleFiling = `<?xml version="1.0"?>
<ownershipDocument>
    <issuer>
        <issuerCik>0000320193</issuerCik>
        <issuerName>Apple Inc.</issuerName>
        <issuerTradingSymbol>AAPL</issuerTradingSymbol>
    </issuer>
    <reportingOwner>
        <reportingOwnerId>
            <rptOwnerCik>0001767094</rptOwnerCik>
            <rptOwnerName>O'BRIEN DEIRDRE</rptOwnerName>
        </reportingOwnerId>
    </reportingOwner>
    <nonDerivativeTable>
        <nonDerivativeTransaction>
            <securityTitle><value>Common Stock</value></securityTitle>
            <transactionDate><value>2024-10-15</value></transactionDate>
            <transactionCoding><transactionCode>S</transactionCode></transactionCoding>
            <transactionAmounts>
                <transactionShares><value>32,000</value></transactionShares>
                <transactionPricePerShare><value>242.83</value></transactionPricePerShare>
            </transactionAmounts>
            <ownershipNature>
                <directOrIndirectOwnership><value>D</value></directOrIndirectOwnership>
            </ownershipNature>
        </nonDerivativeTransaction>
    </nonDerivativeTable>
</ownershipDocument>`

const truncatedFiling = `<?xml version="1.0"?>
<ownershipDocument>
    <issuer>
        <issuerName>Broken Corp</issuerName>
        <issuerTradingSymbol>BRK</issuerTradingSymbol>
    </issuer>
    <rptOwnerName>DOE JANE</rptOwnerName>
    <nonDerivativeTransaction>
        <transactionDate><value>2024-11-01</value></transactionDate>
        <transactionCoding><transactionCode>P</transactionCode></transactionCoding>
        <transactionShares><value>1000</value></transactionShares>
        <transactionPricePerShare><value>10.00</value></transactionPricePerShare>
    </nonDeriv`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPipelineConfig() config.PipelineConfig {
	return config.PipelineConfig{
		Parallelism:            1,
		HighConvictionCutoff:   4.0,
		MinFilingSizeBytes:     100,
		SummaryTopTransactions: 10,
	}
}

func writeBatch(t *testing.T, filings map[string]string) []files.FileInfo {
	t.Helper()
	dir := t.TempDir()
	for name, content := range filings {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	batch, err := files.NewDiscovery(dir).FindFilingFiles(".")
	require.NoError(t, err)
	return batch
}

func newTestPipeline(cfg config.PipelineConfig) *Pipeline {
	scorer := conviction.NewScorer(conviction.DefaultWeights())
	return New(cfg, scorer, nil, testLogger())
}

func TestPipelineProcessMixedBatch(t *testing.T) {
	batch := writeBatch(t, map[string]string{
		"a_sample.xml":    sampleFiling,
		"b_truncated.xml": truncatedFiling,
		"c_empty.xml":     "",
		"d_garbage.xml":   "this file is large enough to pass the size screen but holds no recognizable filing content at all, structural or otherwise",
	})

	pipe := newTestPipeline(testPipelineConfig())
	result, err := pipe.Process(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Stats.TotalFiles)
	assert.Equal(t, 2, result.Stats.ProcessedFiles)
	assert.Equal(t, 2, result.Stats.SkippedFiles)
	assert.Equal(t, 0, result.Stats.ErrorFiles)
	assert.Equal(t, 2, result.Stats.TotalTransactions)
	assert.Equal(t, 1, result.Stats.PatternFallbacks)
	assert.NotEmpty(t, result.RunID)

	require.Len(t, result.Records, 2)

	sale := result.Records[0]
	assert.Equal(t, "AAPL", sale.Ticker)
	assert.Equal(t, "O'BRIEN DEIRDRE", sale.InsiderName)
	assert.Equal(t, "S", sale.TransactionCode)
	assert.Equal(t, "Sale", sale.CodeDescription)
	assert.InDelta(t, 7_770_560.0, sale.TotalValue, 0.01)
	assert.InDelta(t, 0.5, sale.ConvictionScore, 0.001)
	assert.Equal(t, domain.SignalSell, sale.Signal)
	assert.Equal(t, "a_sample.xml", sale.SourceFile)

	recovered := result.Records[1]
	assert.Equal(t, "BRK", recovered.Ticker)
	assert.Equal(t, "P", recovered.TransactionCode)
	assert.Equal(t, 1000.0, recovered.Shares)

	reasons := make(map[string]string)
	for _, s := range result.Skipped {
		reasons[s.Name] = s.Reason
	}
	assert.Equal(t, "empty file", reasons["c_empty.xml"])
	assert.Equal(t, "no transactions found", reasons["d_garbage.xml"])
}

func TestPipelineProcessEmptyBatch(t *testing.T) {
	pipe := newTestPipeline(testPipelineConfig())
	result, err := pipe.Process(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, result.Stats.TotalFiles)
	assert.Empty(t, result.Records)
}

func TestPipelineProcessIdempotent(t *testing.T) {
	batch := writeBatch(t, map[string]string{"sample.xml": sampleFiling})
	pipe := newTestPipeline(testPipelineConfig())

	first, err := pipe.Process(context.Background(), batch)
	require.NoError(t, err)
	second, err := pipe.Process(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, first.Records, second.Records)
	assert.Equal(t, first.Stats, second.Stats)
}

func TestPipelineParallelMatchesSequential(t *testing.T) {
	batch := writeBatch(t, map[string]string{
		"a.xml": sampleFiling,
		"b.xml": truncatedFiling,
		"c.xml": sampleFiling,
	})

	seqCfg := testPipelineConfig()
	parCfg := testPipelineConfig()
	parCfg.Parallelism = 4

	seq, err := newTestPipeline(seqCfg).Process(context.Background(), batch)
	require.NoError(t, err)
	par, err := newTestPipeline(parCfg).Process(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, seq.Records, par.Records)
	assert.Equal(t, seq.Stats, par.Stats)
}

func TestPipelineProcessCancelled(t *testing.T) {
	batch := writeBatch(t, map[string]string{"sample.xml": sampleFiling})
	pipe := newTestPipeline(testPipelineConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pipe.Process(ctx, batch)
	assert.Error(t, err)
}

func TestPipelineRepeatInsiderBonus(t *testing.T) {
	batch := writeBatch(t, map[string]string{
		"one.xml": sampleFiling,
		"two.xml": sampleFiling,
	})

	pipe := newTestPipeline(testPipelineConfig())
	result, err := pipe.Process(context.Background(), batch)
	require.NoError(t, err)

	require.Len(t, result.Records, 2)
	// Same insider twice in the batch earns the repeat bonus on both.
	assert.InDelta(t, 1.5, result.Records[0].ConvictionScore, 0.001)
	assert.InDelta(t, 1.5, result.Records[1].ConvictionScore, 0.001)
}
