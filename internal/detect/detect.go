// Format detection for exported bookmarks documents

package detect

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/xtruder/json-bookmarks-viewer/internal/bookmarks"
	"github.com/xtruder/json-bookmarks-viewer/internal/firefox"
	"github.com/xtruder/json-bookmarks-viewer/internal/webkit"
)

// Format inspects the top-level fields of raw and reports which exporter
// produced it. Firefox is checked before WebKit.
func Format(raw []byte) bookmarks.Format {
	if !gjson.ValidBytes(raw) {
		return bookmarks.FormatUnknown
	}

	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return bookmarks.FormatUnknown
	}

	if isMozilla(doc) {
		return bookmarks.FormatMozilla
	}
	if isWebKit(doc) {
		return bookmarks.FormatWebKit
	}

	return bookmarks.FormatUnknown
}

// Open detects the format of raw and decodes it into the matching source
func Open(raw []byte) (bookmarks.Source, error) {
	switch Format(raw) {
	case bookmarks.FormatMozilla:
		src, err := firefox.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", bookmarks.ErrMalformedTree, err)
		}
		return src, nil
	case bookmarks.FormatWebKit:
		src, err := webkit.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", bookmarks.ErrMalformedTree, err)
		}
		return src, nil
	}

	return nil, bookmarks.ErrUnknownFormat
}

func isMozilla(doc gjson.Result) bool {
	root := doc.Get("root")
	return truthy(doc.Get("guid")) &&
		root.Type == gjson.String && root.Str == firefox.PlacesRoot &&
		isOne(doc.Get("id"))
}

func isWebKit(doc gjson.Result) bool {
	return truthy(doc.Get("checksum")) &&
		truthy(doc.Get("roots")) &&
		isOne(doc.Get("version"))
}

func isOne(r gjson.Result) bool {
	return r.Type == gjson.Number && r.Num == 1
}

// truthy treats false, null, 0, "" and missing values as false
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.True, gjson.JSON:
		return true
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	}
	return false
}
