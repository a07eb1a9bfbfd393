package persona

import "errors"

// Errors that may surface to callers. Network and disk trouble during corpus
// resolution is recovered inside the degradation chain and never appears here.
var (
	// ErrInvalidConfig indicates unusable configuration, fatal at construction.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInvalidInput indicates a malformed argument, such as an unparseable URL.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownCrawler indicates a crawler kind the registry does not know.
	ErrUnknownCrawler = errors.New("unknown crawler kind")
	// ErrCorpusExhausted indicates a dataset whose total weight is zero.
	ErrCorpusExhausted = errors.New("corpus exhausted")
	// ErrClosed indicates an operation on an engine after Close.
	ErrClosed = errors.New("engine is closed")
)
