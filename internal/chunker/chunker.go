// Package chunker splits document text into overlapping, size-bounded
// chunks using recursive separator splitting: paragraph breaks first,
// then line breaks, sentence boundaries, whitespace, and finally raw
// character positions.
package chunker

import (
	"errors"
	"strings"
)

// DefaultSeparators is ordered from coarsest to finest granularity. The
// empty string means "split anywhere" and guarantees every piece can be
// reduced below the chunk size.
var DefaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

var (
	// ErrChunkSize indicates a non-positive chunk size.
	ErrChunkSize = errors.New("chunker: chunk size must be positive")
	// ErrOverlap indicates an overlap that would never let a chunk grow.
	ErrOverlap = errors.New("chunker: chunk overlap must be non-negative and smaller than chunk size")
)

// Chunk is one ordered segment of a document. Text is always a contiguous
// substring of the input; Start and End are its byte offsets. Consecutive
// chunks share Options.ChunkOverlap bytes where the preceding chunk is long
// enough to supply them.
type Chunk struct {
	Index int
	Text  string
	Start int
	End   int
}

// Options controls segmentation. Separators defaults to DefaultSeparators
// when nil.
type Options struct {
	ChunkSize    int
	ChunkOverlap int
	Separators   []string
}

// Split segments text into chunks of at most opts.ChunkSize bytes. The only
// exception is a piece that no configured separator can divide; it is kept
// whole. Splitting is deterministic and side-effect free; empty input yields
// no chunks.
func Split(text string, opts Options) ([]Chunk, error) {
	if opts.ChunkSize <= 0 {
		return nil, ErrChunkSize
	}
	if opts.ChunkOverlap < 0 || opts.ChunkOverlap >= opts.ChunkSize {
		return nil, ErrOverlap
	}
	if text == "" {
		return nil, nil
	}

	seps := opts.Separators
	if seps == nil {
		seps = DefaultSeparators
	}

	pieces := splitRecursive(text, opts.ChunkSize, seps)
	return merge(pieces, opts.ChunkSize, opts.ChunkOverlap), nil
}

// splitRecursive reduces text to pieces of at most size bytes, trying each
// separator in order and descending to finer ones only for pieces that are
// still too long. Separators stay attached to the piece they terminate, so
// concatenating the returned pieces reproduces text exactly.
func splitRecursive(text string, size int, seps []string) []string {
	if len(text) <= size {
		return []string{text}
	}
	if len(seps) == 0 {
		// No separator can divide this piece; keep it whole.
		return []string{text}
	}

	sep, rest := seps[0], seps[1:]
	if sep == "" {
		return splitEvery(text, size)
	}
	if !strings.Contains(text, sep) {
		return splitRecursive(text, size, rest)
	}

	var out []string
	for _, piece := range splitKeep(text, sep) {
		if len(piece) <= size {
			out = append(out, piece)
		} else {
			out = append(out, splitRecursive(piece, size, rest)...)
		}
	}
	return out
}

// splitKeep splits on sep, keeping the separator at the end of each piece.
func splitKeep(text, sep string) []string {
	parts := strings.SplitAfter(text, sep)
	if n := len(parts); n > 0 && parts[n-1] == "" {
		parts = parts[:n-1]
	}
	return parts
}

// splitEvery cuts text into runs of at most size bytes.
func splitEvery(text string, size int) []string {
	out := make([]string, 0, len(text)/size+1)
	for len(text) > size {
		out = append(out, text[:size])
		text = text[size:]
	}
	if text != "" {
		out = append(out, text)
	}
	return out
}

// merge greedily packs pieces into chunks of at most size bytes, seeding
// each new chunk with the trailing overlap bytes of the previous one. The
// size bound takes precedence: if a piece cannot share a chunk with the
// seed, the seed is dropped for that chunk.
func merge(pieces []string, size, overlap int) []Chunk {
	var chunks []Chunk
	var b strings.Builder

	pos := 0     // offset of the next piece in the original text
	start := 0   // start offset of the chunk being built
	seedLen := 0 // bytes of b that are overlap carried from the previous chunk

	emit := func() {
		chunks = append(chunks, Chunk{
			Index: len(chunks),
			Text:  b.String(),
			Start: start,
			End:   start + b.Len(),
		})
	}

	for _, piece := range pieces {
		if b.Len() > seedLen && b.Len()+len(piece) > size {
			emit()

			seed := b.String()
			if len(seed) > overlap {
				seed = seed[len(seed)-overlap:]
			}
			b.Reset()
			if overlap > 0 && len(seed)+len(piece) <= size {
				b.WriteString(seed)
				seedLen = b.Len()
				start = pos - seedLen
			} else {
				seedLen = 0
				start = pos
			}
		}
		if b.Len() == 0 {
			start = pos
		}
		b.WriteString(piece)
		pos += len(piece)
	}
	if b.Len() > 0 {
		emit()
	}
	return chunks
}

// Texts returns just the chunk texts, in order.
func Texts(chunks []Chunk) []string {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	return texts
}
