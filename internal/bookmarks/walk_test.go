package bookmarks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSource navigates a tnode tree the way the Firefox source does
type testSource struct {
	root tnode
}

func (s testSource) Format() Format { return FormatUnknown }

func (s testSource) Root() ([]Folder, error) {
	view, err := s.Folder(Path{})
	return view.Folders, err
}

func (s testSource) Folder(path Path) (FolderView, error) {
	children, crumbs, err := Descend[tnode](tschema{}, s.root.Children, []string{}, path, 0)
	if err != nil {
		return FolderView{}, err
	}
	return List[tnode](tschema{}, children, path, crumbs, nil)
}

func (s testSource) Search(query string) SearchResult {
	return Search[tnode](tschema{}, s.root, Contains(query))
}

func TestAll(t *testing.T) {
	all, err := All(testSource{root: sampleTree()})
	require.NoError(t, err)

	var paths, titles []string
	for path, b := range all {
		paths = append(paths, path)
		titles = append(titles, b.Title)
	}

	assert.Equal(t, []string{"Menu", "Toolbar", "Toolbar/Go"}, paths)
	assert.Equal(t, []string{"Go Tour", "Example", "pkg"}, titles)
}

func TestAllStopsEarly(t *testing.T) {
	all, err := All(testSource{root: sampleTree()})
	require.NoError(t, err)

	n := 0
	for range all {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestAllPropagatesErrors(t *testing.T) {
	root := folder("", folder("Menu", tnode{Title: "Broken", Kind: KindFolder}))

	_, err := All(testSource{root: root})
	assert.ErrorIs(t, err, ErrMalformedTree)
}
