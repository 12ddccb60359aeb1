package lsp

import (
	"strings"
	"sync"
)

// Document is one editor buffer mirrored into the server.
type Document struct {
	URI     string
	Content string
	Version int
	Lines   []int // byte offset of each line start, always at least [0]
}

// DocumentStore holds the open documents, keyed by URI. All methods are
// safe for concurrent use.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*Document
}

// NewDocumentStore creates an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{documents: make(map[string]*Document)}
}

// Open mirrors a document into the store, replacing any previous entry for
// the URI.
func (s *DocumentStore) Open(uri string, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[uri] = &Document{
		URI:     uri,
		Content: content,
		Version: version,
		Lines:   computeLineOffsets(content),
	}
}

// Update replaces the content of an open document. URIs that were never
// opened are ignored; only the client creates documents.
func (s *DocumentStore) Update(uri string, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[uri]
	if !ok {
		return
	}
	doc.Content = content
	doc.Version = version
	doc.Lines = computeLineOffsets(content)
}

// Close drops a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, uri)
}

// Get returns the document for uri, or nil when it is not open.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.documents[uri]
}

// List returns the URIs of every open document, in map order.
func (s *DocumentStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	uris := make([]string, 0, len(s.documents))
	for uri := range s.documents {
		uris = append(uris, uri)
	}
	return uris
}

// computeLineOffsets records where each line starts. The empty document has
// one line starting at zero.
func computeLineOffsets(content string) []int {
	offsets := []int{0}
	for pos := 0; ; {
		nl := strings.IndexByte(content[pos:], '\n')
		if nl < 0 {
			return offsets
		}
		pos += nl + 1
		offsets = append(offsets, pos)
	}
}

// LineCount reports the number of lines; nil documents have none.
func (d *Document) LineCount() int {
	if d == nil {
		return 0
	}
	return len(d.Lines)
}

// GetLine returns one zero-based line without its newline. Out-of-range
// lines come back empty. CR from CRLF content is trimmed so callers see the
// logical line.
func (d *Document) GetLine(line int) string {
	if d == nil || line < 0 || line >= len(d.Lines) {
		return ""
	}
	start := d.Lines[line]
	end := len(d.Content)
	if next := line + 1; next < len(d.Lines) {
		end = d.Lines[next] - 1 // drop the newline
		if end < start {
			end = start
		}
	}
	return strings.TrimSuffix(d.Content[start:end], "\r")
}

// URIToPath strips the file scheme from a URI. Non-file URIs pass through
// unchanged.
func URIToPath(uri string) string {
	if path, ok := strings.CutPrefix(uri, "file://"); ok {
		return path
	}
	return uri
}

// PathToURI prefixes a filesystem path with the file scheme, leaving
// already-formed URIs alone.
func PathToURI(path string) string {
	if strings.HasPrefix(path, "file://") {
		return path
	}
	return "file://" + path
}
