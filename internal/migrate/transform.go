// Package migrate turns legacy article rows into static-site content
// files: one front-matter-plus-body document per article, plus a download
// script for externally hosted assets.
package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"spip2jekyll/internal/config"
	"spip2jekyll/internal/db"
	"spip2jekyll/internal/text"
)

// Date layouts the legacy schema is known to store.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

var moreMarker = regexp.MustCompile(`(?i)<!--\s*more\s*-->`)

// Migrator runs the transformation pass: one pass over all qualifying
// articles, one output file each, then the asset manifest.
type Migrator struct {
	DB  *db.DB
	Cfg config.Settings

	// Now supplies the fallback timestamp for articles with a missing or
	// malformed date. Tests override it.
	Now func() time.Time
}

// Run executes the whole migration sequentially: page index, articles,
// asset script. Any failure aborts the run.
func (m *Migrator) Run() error {
	stubs, err := m.DB.ListArticles()
	if err != nil {
		return err
	}
	index := BuildPageIndex(stubs)

	articles, err := m.DB.ArticlesByStatus(m.Cfg.Status)
	if err != nil {
		return err
	}
	for _, a := range articles {
		if err := m.writeArticle(a, index); err != nil {
			return fmt.Errorf("article %d: %w", a.ID, err)
		}
	}
	fmt.Fprintf(os.Stderr, "migrated %d articles\n", len(articles))

	assets, err := m.DB.Assets()
	if err != nil {
		return err
	}
	return WriteAssetScript(m.Cfg.Dest, assets)
}

func (m *Migrator) writeArticle(a db.Article, index PageIndex) error {
	var terms []db.Term
	if m.Cfg.Categories || m.Cfg.Tags {
		var err error
		terms, err = m.DB.TermsForArticle(a.ID)
		if err != nil {
			return err
		}
	}

	var comments []db.Comment
	if m.Cfg.Comments {
		var err error
		comments, err = m.DB.CommentsForArticle(a.ID)
		if err != nil {
			return err
		}
	}

	now := m.now()
	fm, body := BuildDocument(a, terms, comments, m.Cfg, now)

	rel, err := Destination(a, index, m.Cfg, now)
	if err != nil {
		return err
	}

	doc, err := fm.Encode(body)
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(m.Cfg.Dest, rel), doc, 0o644)
}

func (m *Migrator) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// Destination computes the output path, relative to the destination root,
// for one article: nested index files for pages, _drafts for drafts,
// date-prefixed _posts files for everything else.
func Destination(a db.Article, index PageIndex, cfg config.Settings, now time.Time) (string, error) {
	slug := articleSlug(a, index)

	if a.Type == "page" {
		dir, err := index.Path(a.ID)
		if err != nil {
			return "", err
		}
		return dir + "index." + cfg.Extension, nil
	}
	if a.Status == "draft" {
		return filepath.Join("_drafts", slug+".md"), nil
	}

	date := resolveDate(a.Date, now)
	name := fmt.Sprintf("%s-%s.%s", date.Format("2006-01-02"), slug, cfg.Extension)
	return filepath.Join("_posts", name), nil
}

// BuildDocument assembles the metadata header and the body text for one
// article from its row, taxonomy terms, and comments.
func BuildDocument(a db.Article, terms []db.Term, comments []db.Comment, cfg config.Settings, now time.Time) (FrontMatter, string) {
	clean := func(s string) string {
		if cfg.CleanEntities {
			return text.Clean(s)
		}
		return s
	}

	body := deref(a.Content)
	excerpt := deref(a.Lead)
	if excerpt == "" && cfg.MoreExcerpt {
		if loc := moreMarker.FindStringIndex(body); loc != nil {
			excerpt = strings.TrimSpace(body[:loc[0]])
		}
	}
	if cfg.MoreAnchor {
		replaced := false
		body = moreMarker.ReplaceAllStringFunc(body, func(match string) string {
			if replaced {
				return match
			}
			replaced = true
			return `<a id="more"></a>`
		})
	}

	layout := a.Type
	if layout == "" {
		layout = "post"
	}

	date := resolveDate(a.Date, now)

	fm := FrontMatter{
		Layout:       layout,
		Status:       a.Status,
		Published:    publishedFlag(a.Status),
		Title:        clean(a.Title),
		AuthorLogin:  deref(a.AuthorLogin),
		AuthorEmail:  deref(a.AuthorEmail),
		AuthorURL:    deref(a.AuthorURL),
		Excerpt:      clean(excerpt),
		WordpressID:  a.ID,
		WordpressURL: deref(a.GUID),
		Date:         date.Format("2006-01-02 15:04:05"),
		DateGMT:      deref(a.DateGMT),
	}

	author := &Author{
		DisplayName: clean(deref(a.AuthorName)),
		Login:       deref(a.AuthorLogin),
		Email:       deref(a.AuthorEmail),
		URL:         deref(a.AuthorURL),
	}
	if !author.empty() {
		fm.Author = author
	}

	if cfg.Categories || cfg.Tags {
		categories, tags := partitionTerms(terms, clean)
		if cfg.Categories {
			fm.Categories = categories
		}
		if cfg.Tags {
			fm.Tags = tags
		}
	}

	if cfg.Comments {
		fm.Comments = commentMeta(comments, clean)
	}

	return fm, body
}

// partitionTerms splits taxonomy rows into category and tag lists, keeping
// first-seen order and dropping duplicates.
func partitionTerms(terms []db.Term, clean func(string) string) (categories, tags []string) {
	var cats, tgs orderedSet
	for _, t := range terms {
		switch t.Type {
		case "category":
			cats.add(clean(t.Name))
		case "tag":
			tgs.add(clean(t.Name))
		}
	}
	return cats.items, tgs.items
}

// commentMeta converts comment rows for serialization, forcing valid UTF-8
// on the free-text columns and sorting ascending by the raw date string.
// The sort is lexical on purpose: it matches the legacy tool's output, and
// the legacy date format makes it agree with calendar order.
func commentMeta(comments []db.Comment, clean func(string) string) []CommentMeta {
	out := make([]CommentMeta, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentMeta{
			Author:      clean(utf8Text(c.Author)),
			AuthorEmail: deref(c.AuthorEmail),
			Date:        deref(c.Date),
			Title:       clean(utf8Text(c.Title)),
			Content:     clean(utf8Text(c.Content)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// publishedFlag maps an article status to the published field: drafts omit
// it, "publish" is true, every other status is false.
func publishedFlag(status string) *bool {
	if status == "draft" {
		return nil
	}
	v := status == "publish"
	return &v
}

func articleSlug(a db.Article, index PageIndex) string {
	if s := index.Slug(a.ID); s != "" {
		return s
	}
	return text.Slugify(a.Title)
}

// resolveDate parses the stored date string, falling back to now for
// missing or malformed values. Never fails.
func resolveDate(raw *string, now time.Time) time.Time {
	if raw == nil || *raw == "" {
		return now
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, *raw); err == nil {
			return t
		}
	}
	return now
}

// orderedSet is a first-seen-wins ordered string set.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func (s *orderedSet) add(v string) {
	if v == "" {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func utf8Text(s *string) string {
	return strings.ToValidUTF8(deref(s), "")
}

// writeFileAtomic writes to a temp file in the target directory and renames
// it into place, so an I/O failure mid-write never leaves a partial file
// the static-site tool would pick up.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".migrate-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("setting mode on %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}
