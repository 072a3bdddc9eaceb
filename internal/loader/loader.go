// Package loader reads documents from disk and extracts their plain text.
// Dispatch is by file extension; unsupported extensions fail closed.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound indicates the document path does not exist.
	ErrNotFound = errors.New("loader: document not found")
	// ErrUnsupportedType indicates an extension with no registered handler.
	ErrUnsupportedType = errors.New("loader: unsupported file type")
	// ErrParse indicates the file exists but its content could not be
	// extracted (corrupted or encrypted PDF, unreadable file).
	ErrParse = errors.New("loader: failed to parse document")
)

// Document is a loaded document: raw text plus its source path. It is
// immutable once loaded and is discarded after chunking.
type Document struct {
	Path string
	Text string
}

// SupportedExtensions lists the extensions Load can handle.
var SupportedExtensions = []string{".txt", ".md", ".markdown", ".pdf"}

// Load reads the document at path and extracts its plain text.
func Load(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: stat %s: %v", ErrParse, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnsupportedType, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var (
		text    string
		loadErr error
	)
	switch ext {
	case ".txt":
		text, loadErr = loadText(path)
	case ".md", ".markdown":
		text, loadErr = loadMarkdown(path)
	case ".pdf":
		text, loadErr = loadPDF(path)
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedType, ext, strings.Join(SupportedExtensions, ", "))
	}
	if loadErr != nil {
		return nil, loadErr
	}

	return &Document{Path: path, Text: text}, nil
}

func loadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", ErrParse, path, err)
	}
	return string(data), nil
}
