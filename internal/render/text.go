// Plain text rendering of folder listings and search results for the CLI

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/xtruder/json-bookmarks-viewer/internal/bookmarks"
)

type Renderer struct {
	w io.Writer
}

func New(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Folders writes one line per folder with its path handle and counts
func (r *Renderer) Folders(folders []bookmarks.Folder) {
	for _, f := range folders {
		fmt.Fprintf(r.w, "%-8s %s (%d bookmarks, %d folders)\n",
			f.Path.String(), f.Title, f.Count.Bookmarks, f.Count.Folders)
	}
}

// Folder writes the breadcrumb, subfolders and bookmarks of a folder
func (r *Renderer) Folder(view bookmarks.FolderView) {
	fmt.Fprintf(r.w, "# %s\n", Breadcrumb(view.Path))
	if len(view.Folders) > 0 {
		fmt.Fprintln(r.w)
		r.Folders(view.Folders)
	}
	if len(view.Bookmarks) > 0 {
		fmt.Fprintln(r.w)
		r.bookmarks(view.Bookmarks)
	}
}

// Search writes the matches grouped by folder
func (r *Renderer) Search(query string, result bookmarks.SearchResult) {
	fmt.Fprintf(r.w, "%d matches for %q\n", result.Count, query)
	for _, group := range result.Folders {
		fmt.Fprintf(r.w, "\n## %s\n", Breadcrumb(group.Path))
		r.bookmarks(group.Items)
	}
}

func (r *Renderer) bookmarks(items []bookmarks.Bookmark) {
	for _, b := range items {
		title := b.Title
		if title == "" {
			title = b.URI
		}
		if domain := extractDomain(b.URI); domain != "" {
			fmt.Fprintf(r.w, "- [%s](%s) %s\n", title, b.URI, domain)
		} else {
			fmt.Fprintf(r.w, "- [%s](%s)\n", title, b.URI)
		}
	}
}

// Breadcrumb joins folder titles for display
func Breadcrumb(path []string) string {
	if len(path) == 0 {
		return "/"
	}
	return strings.Join(path, " / ")
}

// extractDomain extracts domain from URL
func extractDomain(url string) string {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return ""
	}
	url = strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
	domain := strings.Split(url, "/")[0]
	domain = strings.TrimPrefix(domain, "www.")
	if colonIndex := strings.Index(domain, ":"); colonIndex != -1 {
		domain = domain[:colonIndex]
	}
	return domain
}
