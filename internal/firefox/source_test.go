package firefox

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtruder/json-bookmarks-viewer/internal/bookmarks"
)

func loadPlaces(t *testing.T) *Source {
	t.Helper()

	data, err := os.ReadFile("testdata/places.json")
	require.NoError(t, err)

	src, err := Parse(data)
	require.NoError(t, err)
	return src
}

func TestClassify(t *testing.T) {
	src := New(Node{})

	tests := []struct {
		name string
		node Node
		want bookmarks.Kind
	}{
		{name: "bookmark", node: Node{Title: "Go", URI: "https://go.dev"}, want: bookmarks.KindBookmark},
		{name: "folder", node: Node{Title: "Menu", Children: []Node{}}, want: bookmarks.KindFolder},
		{name: "separator", node: Node{Type: TypeSeparator}, want: bookmarks.KindSeparator},
		{name: "untitled bookmark", node: Node{URI: "https://go.dev"}, want: bookmarks.KindOther},
		{name: "untitled folder", node: Node{Children: []Node{}}, want: bookmarks.KindOther},
		{name: "container without children", node: Node{Title: "Empty", Type: TypeContainer}, want: bookmarks.KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, src.Classify(tt.node))
		})
	}
}

func TestCountChildren(t *testing.T) {
	src := loadPlaces(t)
	menu := src.root.Children[0]

	count, err := src.CountChildren(menu)
	require.NoError(t, err)
	assert.Equal(t, bookmarks.Count{Bookmarks: 1, Folders: 1}, count)
	assert.Less(t, count.Bookmarks+count.Folders, len(menu.Children))

	_, err = src.CountChildren(Node{Title: "Go", URI: "https://go.dev"})
	assert.ErrorIs(t, err, bookmarks.ErrMalformedTree)
}

func TestRoot(t *testing.T) {
	src := loadPlaces(t)

	folders, err := src.Root()
	require.NoError(t, err)
	assert.Equal(t, []bookmarks.Folder{
		{Title: "Bookmarks Menu", Path: bookmarks.Path{0}, Count: bookmarks.Count{Bookmarks: 1, Folders: 1}},
		{Title: "Bookmarks Toolbar", Path: bookmarks.Path{1}, Count: bookmarks.Count{Bookmarks: 1, Folders: 1}},
		{Title: "Other Bookmarks", Path: bookmarks.Path{2}, Count: bookmarks.Count{}},
	}, folders)
}

func TestFolder(t *testing.T) {
	src := loadPlaces(t)

	view, err := src.Folder(bookmarks.Path{0})
	require.NoError(t, err)
	assert.Equal(t, bookmarks.FolderView{
		Folders: []bookmarks.Folder{
			{Title: "Mozilla Firefox", Path: bookmarks.Path{0, 0}, Count: bookmarks.Count{Bookmarks: 2}},
		},
		Bookmarks: []bookmarks.Bookmark{
			{Title: "Go Tour", URI: "https://go.dev/tour"},
		},
		Path: []string{"Bookmarks Menu"},
	}, view)

	view, err = src.Folder(bookmarks.Path{0, 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bookmarks Menu", "Mozilla Firefox"}, view.Path)
	assert.Equal(t, []bookmarks.Bookmark{
		{Title: "Get Help", URI: "https://support.mozilla.org/products/firefox"},
		{Title: "About Us", URI: "https://www.mozilla.org/about/"},
	}, view.Bookmarks)
	assert.Empty(t, view.Folders)
}

func TestFolderEmptyPathListsTopLevel(t *testing.T) {
	src := loadPlaces(t)

	view, err := src.Folder(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, view.Path)
	assert.Len(t, view.Folders, 3)
	assert.Empty(t, view.Bookmarks)
}

func TestFolderInvalidPath(t *testing.T) {
	src := loadPlaces(t)

	tests := []struct {
		name string
		path bookmarks.Path
	}{
		{name: "out of range", path: bookmarks.Path{5}},
		{name: "nested out of range", path: bookmarks.Path{1, 9}},
		{name: "bookmark", path: bookmarks.Path{0, 2}},
		{name: "separator", path: bookmarks.Path{0, 1}},
		{name: "below bookmark", path: bookmarks.Path{1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := src.Folder(tt.path)
			assert.ErrorIs(t, err, bookmarks.ErrInvalidPath)
		})
	}
}

func TestFolderMalformedRoot(t *testing.T) {
	src, err := Parse([]byte(`{"guid":"root________","root":"placesRoot","id":1,"title":""}`))
	require.NoError(t, err)

	_, err = src.Folder(nil)
	assert.ErrorIs(t, err, bookmarks.ErrMalformedTree)

	_, err = src.Root()
	assert.ErrorIs(t, err, bookmarks.ErrMalformedTree)
}

func TestFolderIsIdempotent(t *testing.T) {
	src := loadPlaces(t)

	first, err := src.Folder(bookmarks.Path{1})
	require.NoError(t, err)

	// mutating a returned path must not leak into later results
	first.Folders[0].Path[0] = 42

	second, err := src.Folder(bookmarks.Path{1})
	require.NoError(t, err)
	assert.Equal(t, bookmarks.Path{1, 1}, second.Folders[0].Path)

	third, err := src.Folder(bookmarks.Path{1})
	require.NoError(t, err)
	assert.Equal(t, second, third)
}

// Every path handed out by Root or Folder resolves, with one breadcrumb
// entry per path index.
func TestPathsResolveWithMatchingBreadcrumbs(t *testing.T) {
	src := loadPlaces(t)

	roots, err := src.Root()
	require.NoError(t, err)

	var visit func(f bookmarks.Folder)
	visit = func(f bookmarks.Folder) {
		view, err := src.Folder(f.Path)
		require.NoError(t, err, "path %s", f.Path)
		assert.Len(t, view.Path, len(f.Path))
		assert.Equal(t, f.Title, view.Path[len(view.Path)-1])
		assert.Equal(t, f.Count.Bookmarks, len(view.Bookmarks))
		assert.Equal(t, f.Count.Folders, len(view.Folders))
		for _, sub := range view.Folders {
			visit(sub)
		}
	}
	for _, f := range roots {
		visit(f)
	}
}

func TestSearch(t *testing.T) {
	src := loadPlaces(t)

	result := src.Search("GO")
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, []bookmarks.SearchGroup{
		{
			Items: []bookmarks.Bookmark{{Title: "Go Tour", URI: "https://go.dev/tour"}},
			Path:  []string{"Bookmarks Menu"},
		},
		{
			Items: []bookmarks.Bookmark{{Title: "pkg.go.dev", URI: "https://pkg.go.dev"}},
			Path:  []string{"Bookmarks Toolbar", "Go"},
		},
	}, result.Folders)

	result = src.Search("mozilla")
	require.Len(t, result.Folders, 1)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, []string{"Bookmarks Menu", "Mozilla Firefox"}, result.Folders[0].Path)

	result = src.Search("nothing-matches-this")
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.Folders)
}

func TestSearchSkipsSeparators(t *testing.T) {
	src, err := Parse([]byte(`{
		"guid": "root________", "root": "placesRoot", "id": 1, "title": "",
		"children": [{"title": "Bar", "children": [
			{"type": "text/x-moz-place-separator", "title": "separator"},
			{"title": "separator docs", "uri": "https://example.com/sep"}
		]}]
	}`))
	require.NoError(t, err)

	result := src.Search("separator")
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "separator docs", result.Folders[0].Items[0].Title)
}

func TestScenarios(t *testing.T) {
	src, err := Parse([]byte(`{"guid":"x","root":"placesRoot","id":1,"children":[
		{"title":"Bar","children":[{"title":"Example","uri":"http://example.com"}]}
	]}`))
	require.NoError(t, err)

	t.Run("root listing", func(t *testing.T) {
		folders, err := src.Root()
		require.NoError(t, err)
		assert.Equal(t, []bookmarks.Folder{
			{Title: "Bar", Path: bookmarks.Path{0}, Count: bookmarks.Count{Bookmarks: 1, Folders: 0}},
		}, folders)
	})

	t.Run("folder content", func(t *testing.T) {
		view, err := src.Folder(bookmarks.Path{0})
		require.NoError(t, err)
		assert.Equal(t, []bookmarks.Bookmark{{Title: "Example", URI: "http://example.com"}}, view.Bookmarks)
		assert.Equal(t, []bookmarks.Folder{}, view.Folders)
		assert.Equal(t, []string{"Bar"}, view.Path)
	})

	t.Run("index out of range", func(t *testing.T) {
		_, err := src.Folder(bookmarks.Path{5})
		require.ErrorIs(t, err, bookmarks.ErrInvalidPath)

		var pathErr *bookmarks.PathError
		require.True(t, errors.As(err, &pathErr))
		assert.True(t, strings.Contains(pathErr.Reason, "out of range"))
	})

	t.Run("separator is neither bookmark nor folder", func(t *testing.T) {
		src, err := Parse([]byte(`{"guid":"x","root":"placesRoot","id":1,"children":[
			{"title":"Bar","children":[
				{"title":"Example","uri":"http://example.com"},
				{"type":"text/x-moz-place-separator"},
				{"title":"Sub","children":[]}
			]}
		]}`))
		require.NoError(t, err)

		folders, err := src.Root()
		require.NoError(t, err)
		assert.Equal(t, bookmarks.Count{Bookmarks: 1, Folders: 1}, folders[0].Count)

		view, err := src.Folder(bookmarks.Path{0})
		require.NoError(t, err)
		assert.Len(t, view.Bookmarks, 1)
		require.Len(t, view.Folders, 1)
		assert.Equal(t, bookmarks.Path{0, 2}, view.Folders[0].Path)
	})
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{"children": "nope"}`))
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, bookmarks.FormatMozilla, New(Node{}).Format())
}
