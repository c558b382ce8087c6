package viewer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/xtruder/json-bookmarks-viewer/internal/bookmarks"
	"github.com/xtruder/json-bookmarks-viewer/internal/loader"
)

var (
	ErrNoDocument    = errors.New("no bookmarks document loaded")
	ErrStaleDocument = errors.New("bookmarks document has been replaced")
)

// DocumentLoader loads bookmarks documents
type DocumentLoader interface {
	Load(ctx context.Context, location string) (*loader.Document, error)
	Read(name string, r io.Reader) (*loader.Document, error)
}

// Controller owns the viewer state: the loaded document and the folder
// currently open. A failed load leaves both untouched.
type Controller struct {
	loader   DocumentLoader
	searches *lru.Cache[string, bookmarks.SearchResult]

	mu      sync.RWMutex
	doc     *loader.Document
	current bookmarks.Path
}

// New creates a controller that memoizes up to searchCacheSize search
// results of the loaded document
func New(l DocumentLoader, searchCacheSize int) (*Controller, error) {
	searches, err := lru.New[string, bookmarks.SearchResult](searchCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create search cache: %w", err)
	}

	return &Controller{
		loader:   l,
		searches: searches,
	}, nil
}

// Load replaces the current document with the one at location
func (c *Controller) Load(ctx context.Context, location string) (*loader.Document, error) {
	doc, err := c.loader.Load(ctx, location)
	if err != nil {
		slog.Warn("failed to load bookmarks", "location", location, "error", err)
		return nil, err
	}

	c.replace(doc)
	return doc, nil
}

// Upload replaces the current document with one read from r
func (c *Controller) Upload(name string, r io.Reader) (*loader.Document, error) {
	doc, err := c.loader.Read(name, r)
	if err != nil {
		slog.Warn("failed to read uploaded bookmarks", "name", name, "error", err)
		return nil, err
	}

	c.replace(doc)
	return doc, nil
}

func (c *Controller) replace(doc *loader.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.doc = doc
	c.current = bookmarks.Path{}
	c.searches.Purge()
}

// Document returns the loaded document
func (c *Controller) Document() (*loader.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.doc == nil {
		return nil, ErrNoDocument
	}
	return c.doc, nil
}

// Root lists the top-level folders of the loaded document, together with
// the document that produced them
func (c *Controller) Root() (*loader.Document, []bookmarks.Folder, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.doc == nil {
		return nil, nil, ErrNoDocument
	}

	folders, err := c.doc.Source.Root()
	if err != nil {
		return nil, nil, err
	}
	return c.doc, folders, nil
}

// Open resolves path in the loaded document and makes it the current
// folder. When documentID is not empty it must match the loaded document,
// since paths are only meaningful within the document that produced them.
func (c *Controller) Open(documentID string, path bookmarks.Path) (*loader.Document, bookmarks.FolderView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.doc == nil {
		return nil, bookmarks.FolderView{}, ErrNoDocument
	}
	if documentID != "" && documentID != c.doc.ID {
		return nil, bookmarks.FolderView{}, ErrStaleDocument
	}

	view, err := c.doc.Source.Folder(path)
	if err != nil {
		return nil, bookmarks.FolderView{}, err
	}

	c.current = slices.Clone(path)
	return c.doc, view, nil
}

// Current returns the path of the folder opened last
func (c *Controller) Current() (bookmarks.Path, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.doc == nil {
		return nil, ErrNoDocument
	}
	return slices.Clone(c.current), nil
}

// Up makes the parent of the current folder current and returns its path.
// An empty path stands for the root listing.
func (c *Controller) Up() (bookmarks.Path, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.doc == nil {
		return nil, ErrNoDocument
	}

	c.current = c.current.Parent()
	return slices.Clone(c.current), nil
}

// Search searches the loaded document
func (c *Controller) Search(query string) (bookmarks.SearchResult, error) {
	doc, err := c.Document()
	if err != nil {
		return bookmarks.SearchResult{}, err
	}

	key := doc.ID + "\x00" + query
	if result, ok := c.searches.Get(key); ok {
		slog.Debug("using cached search result", "query", query)
		return result, nil
	}

	result := doc.Source.Search(query)
	c.searches.Add(key, result)

	slog.Debug("searched bookmarks", "query", query, "matches", result.Count)
	return result, nil
}
