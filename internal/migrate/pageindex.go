package migrate

import (
	"fmt"
	"strings"

	"spip2jekyll/internal/db"
	"spip2jekyll/internal/text"
)

// maxPageDepth caps parent-chain walks so a corrupt parent cycle in the
// legacy data fails loudly instead of recursing forever.
const maxPageDepth = 32

type pageEntry struct {
	Slug   string
	Parent int64
}

// PageIndex maps article ids to precomputed slugs and parent links. It is
// built once before the transformation pass and never mutated afterwards.
type PageIndex map[int64]pageEntry

// BuildPageIndex computes a slug for every article stub and records its
// parent link.
func BuildPageIndex(stubs []db.ArticleStub) PageIndex {
	idx := make(PageIndex, len(stubs))
	for _, s := range stubs {
		idx[s.ID] = pageEntry{Slug: text.Slugify(s.Title), Parent: s.Parent}
	}
	return idx
}

// Slug returns the precomputed slug for id, or "" when id is not indexed.
func (idx PageIndex) Slug(id int64) string {
	return idx[id].Slug
}

// Path reconstructs the nested directory path for a page by walking its
// parent chain: "grandparent/parent/self/". An id missing from the index
// yields "".
func (idx PageIndex) Path(id int64) (string, error) {
	var parts []string
	cur := id
	for depth := 0; ; depth++ {
		if depth >= maxPageDepth {
			return "", fmt.Errorf("page %d: parent chain exceeds %d levels, likely a cycle", id, maxPageDepth)
		}
		e, ok := idx[cur]
		if !ok {
			break
		}
		parts = append(parts, e.Slug)
		if e.Parent == 0 {
			break
		}
		cur = e.Parent
	}
	if len(parts) == 0 {
		return "", nil
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/") + "/", nil
}
