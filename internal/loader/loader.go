// Bookmarks document loading from URLs, local files and uploads

package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/xtruder/json-bookmarks-viewer/internal/bookmarks"
	"github.com/xtruder/json-bookmarks-viewer/internal/detect"
)

var (
	ErrUnsupportedFile = errors.New("only JSON files are supported")
	ErrInvalidJSON     = errors.New("invalid JSON")
)

// Document is a loaded bookmarks document. Every successful load gets a new
// ID, so path handles can be tied to the document they came from.
type Document struct {
	ID       string
	Location string
	Format   bookmarks.Format
	Source   bookmarks.Source
	LoadedAt time.Time
}

// Loader reads bookmarks documents and wraps them in a matching source
type Loader struct {
	client *retryablehttp.Client
}

// New creates a loader fetching remote documents with client
func New(client *retryablehttp.Client) *Loader {
	return &Loader{client: client}
}

// Load reads a document from an http(s) URL or a local .json file
func (l *Loader) Load(ctx context.Context, location string) (*Document, error) {
	var raw []byte
	var err error
	if IsURL(location) {
		raw, err = l.fetch(ctx, location)
	} else {
		raw, err = readFile(location)
	}
	if err != nil {
		return nil, err
	}

	return open(location, raw)
}

// Read loads a document from r, name is the original file name
func (l *Loader) Read(name string, r io.Reader) (*Document, error) {
	if !isJSONFile(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, name)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	return open(name, raw)
}

func (l *Loader) fetch(ctx context.Context, location string) ([]byte, error) {
	slog.Debug("fetching bookmarks", "url", location)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookmarks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch bookmarks: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	return body, nil
}

func readFile(path string) ([]byte, error) {
	if !isJSONFile(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return raw, nil
}

func open(location string, raw []byte) (*Document, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("failed to parse JSON from %s: %w", location, ErrInvalidJSON)
	}

	src, err := detect.Open(raw)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		ID:       uuid.NewString(),
		Location: location,
		Format:   src.Format(),
		Source:   src,
		LoadedAt: time.Now(),
	}

	slog.Info("loaded bookmarks",
		"location", location,
		"format", doc.Format,
		"id", doc.ID)
	return doc, nil
}

// IsURL reports whether location is an http(s) URL
func IsURL(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func isJSONFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".json")
}
