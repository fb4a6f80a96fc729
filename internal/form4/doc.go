// Package form4 extracts insider-transaction data from SEC Form 4
// ownership filings.
//
// Filings in the wild disagree on structure: some qualify every tag
// with a namespace prefix, some declare no namespace at all, and the
// same field may appear nested under a value wrapper or flattened.
// The package therefore locates each semantic field through an ordered
// list of candidate path expressions (most specific first, local-name
// wildcard last) and falls back to regex recovery when a document
// parses but yields no transaction containers.
//
// Extraction never fails a batch: malformed or empty documents produce
// an empty extraction, and unparsable field values degrade to empty
// strings or zero.
package form4
