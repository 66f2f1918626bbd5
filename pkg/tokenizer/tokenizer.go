// Package tokenizer provides approximate token counting for conversation
// accounting. Counts use the cl100k_base encoding and are estimates: the
// agent's own tokenizer may differ.
package tokenizer

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const encodingName = "cl100k_base"

type Tokenizer interface {
	CountTokens(text string) (int, error)
	CountJSONTokens(v any) (int, error)
}

var (
	once   sync.Once
	shared Tokenizer
)

// Get returns the process-wide tokenizer. The encoding is loaded lazily on
// first use and reused afterwards.
func Get() Tokenizer {
	once.Do(func() {
		enc, err := tiktoken.GetEncoding(encodingName)
		if err != nil {
			shared = &failedTokenizer{err: err}
			return
		}
		shared = &tiktokenTokenizer{enc: enc}
	})
	return shared
}

type tiktokenTokenizer struct {
	enc *tiktoken.Tiktoken
}

func (t *tiktokenTokenizer) CountTokens(text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	return len(t.enc.Encode(text, nil, nil)), nil
}

func (t *tiktokenTokenizer) CountJSONTokens(v any) (int, error) {
	if v == nil {
		return 0, nil
	}
	serialized, err := json.Marshal(v)
	if err != nil {
		return 0, fmt.Errorf("serializing value for token counting: %w", err)
	}
	return t.CountTokens(string(serialized))
}

// failedTokenizer surfaces the encoding-load error on every call instead of
// panicking at Get time.
type failedTokenizer struct {
	err error
}

func (t *failedTokenizer) CountTokens(string) (int, error) {
	return 0, fmt.Errorf("tokenizer unavailable: %w", t.err)
}

func (t *failedTokenizer) CountJSONTokens(any) (int, error) {
	return 0, fmt.Errorf("tokenizer unavailable: %w", t.err)
}
