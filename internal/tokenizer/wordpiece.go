// Package tokenizer implements the BERT WordPiece tokenizer used to feed
// sequence-classification models exported to ONNX.
package tokenizer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	tokenCLS = "[CLS]"
	tokenSEP = "[SEP]"
	tokenPAD = "[PAD]"
	tokenUNK = "[UNK]"

	maxCharsPerWord = 100
)

// WordPiece tokenizes text against a fixed vocabulary.
type WordPiece struct {
	vocab     map[string]int64
	lowercase bool
	cls, sep  int64
	pad, unk  int64
}

// Encoding is a model-ready token sequence. All slices have equal length.
type Encoding struct {
	InputIDs      []int64
	AttentionMask []int64
	TokenTypeIDs  []int64
}

// LoadVocabFile reads a vocab.txt (one token per line, id = line number).
func LoadVocabFile(path string, lowercase bool) (*WordPiece, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocab: %w", err)
	}
	defer f.Close()
	return LoadVocab(f, lowercase)
}

// LoadVocab reads a vocabulary from r.
func LoadVocab(r io.Reader, lowercase bool) (*WordPiece, error) {
	vocab := make(map[string]int64)
	sc := bufio.NewScanner(r)
	var id int64
	for sc.Scan() {
		tok := strings.TrimRight(sc.Text(), "\r")
		if _, dup := vocab[tok]; !dup {
			vocab[tok] = id
		}
		id++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read vocab: %w", err)
	}
	wp := &WordPiece{vocab: vocab, lowercase: lowercase}
	for _, sp := range []struct {
		tok string
		dst *int64
	}{{tokenCLS, &wp.cls}, {tokenSEP, &wp.sep}, {tokenPAD, &wp.pad}, {tokenUNK, &wp.unk}} {
		v, ok := vocab[sp.tok]
		if !ok {
			return nil, fmt.Errorf("vocab missing special token %s", sp.tok)
		}
		*sp.dst = v
	}
	return wp, nil
}

// Size returns the vocabulary size.
func (w *WordPiece) Size() int { return len(w.vocab) }

// Tokenize splits text into WordPiece tokens (no special tokens).
func (w *WordPiece) Tokenize(text string) []string {
	var out []string
	for _, word := range w.basicTokenize(text) {
		out = append(out, w.wordPiece(word)...)
	}
	return out
}

// Encode produces [CLS] tokens [SEP], truncated to maxLen (>= 2) tokens.
func (w *WordPiece) Encode(text string, maxLen int) Encoding {
	if maxLen < 2 {
		maxLen = 2
	}
	toks := w.Tokenize(text)
	if len(toks) > maxLen-2 {
		toks = toks[:maxLen-2]
	}
	n := len(toks) + 2
	enc := Encoding{
		InputIDs:      make([]int64, 0, n),
		AttentionMask: make([]int64, n),
		TokenTypeIDs:  make([]int64, n),
	}
	enc.InputIDs = append(enc.InputIDs, w.cls)
	for _, t := range toks {
		enc.InputIDs = append(enc.InputIDs, w.id(t))
	}
	enc.InputIDs = append(enc.InputIDs, w.sep)
	for i := range enc.AttentionMask {
		enc.AttentionMask[i] = 1
	}
	return enc
}

func (w *WordPiece) id(tok string) int64 {
	if v, ok := w.vocab[tok]; ok {
		return v
	}
	return w.unk
}

// basicTokenize cleans text, optionally lowercases and strips accents, and
// splits on whitespace and punctuation.
func (w *WordPiece) basicTokenize(text string) []string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r == 0 || r == unicode.ReplacementChar || (unicode.IsControl(r) && !unicode.IsSpace(r)):
			continue
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		case isCJK(r):
			b.WriteRune(' ')
			b.WriteRune(r)
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	var out []string
	for _, word := range strings.Fields(b.String()) {
		if w.lowercase {
			word = stripAccents(strings.ToLower(word))
		}
		out = append(out, splitPunct(word)...)
	}
	return out
}

// wordPiece applies greedy longest-match-first subword splitting.
func (w *WordPiece) wordPiece(word string) []string {
	chars := []rune(word)
	if len(chars) > maxCharsPerWord {
		return []string{tokenUNK}
	}
	var pieces []string
	for start := 0; start < len(chars); {
		end := len(chars)
		var cur string
		for start < end {
			sub := string(chars[start:end])
			if start > 0 {
				sub = "##" + sub
			}
			if _, ok := w.vocab[sub]; ok {
				cur = sub
				break
			}
			end--
		}
		if cur == "" {
			return []string{tokenUNK}
		}
		pieces = append(pieces, cur)
		start = end
	}
	return pieces
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func stripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

func splitPunct(word string) []string {
	var out []string
	var cur []rune
	for _, r := range word {
		if isPunct(r) {
			if len(cur) > 0 {
				out = append(out, string(cur))
				cur = cur[:0]
			}
			out = append(out, string(r))
			continue
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}

// isPunct treats all non-alphanumeric ASCII as punctuation, as BERT does.
func isPunct(r rune) bool {
	if (r >= 33 && r <= 47) || (r >= 58 && r <= 64) || (r >= 91 && r <= 96) || (r >= 123 && r <= 126) {
		return true
	}
	return unicode.IsPunct(r)
}

func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || (r >= 0x3400 && r <= 0x4DBF) ||
		(r >= 0x20000 && r <= 0x2A6DF) || (r >= 0xF900 && r <= 0xFAFF) ||
		(r >= 0x2F800 && r <= 0x2FA1F)
}
