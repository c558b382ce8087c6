package bookmarks

import (
	"iter"
	"strings"
)

type entry struct {
	path     string
	bookmark Bookmark
}

// All walks every folder reachable from the top-level listing of src and
// returns its bookmarks keyed by their "/"-joined breadcrumb.
func All(src Source) (iter.Seq2[string, Bookmark], error) {
	roots, err := src.Root()
	if err != nil {
		return nil, err
	}

	var entries []entry
	var collect func(path Path) error
	collect = func(path Path) error {
		view, err := src.Folder(path)
		if err != nil {
			return err
		}

		crumb := strings.Join(view.Path, "/")
		for _, b := range view.Bookmarks {
			entries = append(entries, entry{path: crumb, bookmark: b})
		}

		for _, sub := range view.Folders {
			if err := collect(sub.Path); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range roots {
		if err := collect(root.Path); err != nil {
			return nil, err
		}
	}

	return func(yield func(string, Bookmark) bool) {
		for _, e := range entries {
			if !yield(e.path, e.bookmark) {
				return
			}
		}
	}, nil
}
