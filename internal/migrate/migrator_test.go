package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"spip2jekyll/internal/config"
	"spip2jekyll/internal/db"
)

// fixtureDB opens a sqlite database seeded with a small legacy site.
func fixtureDB(t *testing.T) *db.DB {
	t.Helper()

	cfg := config.Settings{
		Driver:      "sqlite",
		DBName:      filepath.Join(t.TempDir(), "legacy.db"),
		TablePrefix: "spip_",
	}
	d, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("opening fixture database: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	stmts := []string{
		`CREATE TABLE spip_articles (
			id INTEGER PRIMARY KEY, title TEXT, subtitle TEXT, description TEXT,
			intro TEXT, content TEXT, date TEXT, date_gmt TEXT, lang TEXT,
			status TEXT, type TEXT, guid TEXT, parent INTEGER
		)`,
		`CREATE TABLE spip_authors (id INTEGER PRIMARY KEY, name TEXT, login TEXT, email TEXT, url TEXT)`,
		`CREATE TABLE spip_article_authors (article_id INTEGER, author_id INTEGER)`,
		`CREATE TABLE spip_terms (id INTEGER PRIMARY KEY, name TEXT, type TEXT)`,
		`CREATE TABLE spip_article_terms (article_id INTEGER, term_id INTEGER)`,
		`CREATE TABLE spip_comments (
			id INTEGER PRIMARY KEY, article_id INTEGER, author TEXT,
			author_email TEXT, date TEXT, title TEXT, content TEXT, status TEXT
		)`,
		`CREATE TABLE spip_documents (id INTEGER PRIMARY KEY, extension TEXT, path TEXT)`,

		`INSERT INTO spip_articles (id, title, content, date, status, type)
			VALUES (7, 'Hëllo Wörld!', '<p>The body.</p>', '2021-06-05 08:30:00', 'publish', 'post')`,
		`INSERT INTO spip_articles (id, title, content, status, type)
			VALUES (3, 'About', '<p>About us.</p>', 'publish', 'page')`,
		`INSERT INTO spip_articles (id, title, content, status, type)
			VALUES (8, 'Secret Draft', 'wip', 'draft', 'post')`,

		`INSERT INTO spip_terms (id, name, type) VALUES (1, 'News', 'category')`,
		`INSERT INTO spip_article_terms (article_id, term_id) VALUES (7, 1)`,
		`INSERT INTO spip_comments (article_id, author, date, content, status)
			VALUES (7, 'reader', '2021-06-06 09:00:00', 'Nice post', 'publish')`,
		`INSERT INTO spip_documents (id, extension, path) VALUES (12, 'pdf', '/files/report.pdf')`,
	}
	for _, stmt := range stmts {
		if _, err := d.Conn().Exec(stmt); err != nil {
			t.Fatalf("seeding fixture: %v", err)
		}
	}
	return d
}

func TestMigrator_Run(t *testing.T) {
	dest := t.TempDir()
	cfg := testSettings()
	cfg.Dest = dest
	cfg.Status = []string{"publish", "draft"}

	m := &Migrator{
		DB:  fixtureDB(t),
		Cfg: cfg,
		Now: func() time.Time { return testNow },
	}
	if err := m.Run(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	post, err := os.ReadFile(filepath.Join(dest, "_posts", "2021-06-05-hello-world.html"))
	if err != nil {
		t.Fatalf("post file missing: %v", err)
	}
	for _, want := range []string{
		"published: true",
		"H&euml;llo W&ouml;rld!",
		"categories:",
		"- News",
		"Nice post",
		"\n---\n",
		"<p>The body.</p>",
	} {
		if !strings.Contains(string(post), want) {
			t.Errorf("post missing %q:\n%s", want, post)
		}
	}

	page, err := os.ReadFile(filepath.Join(dest, "about", "index.html"))
	if err != nil {
		t.Fatalf("page file missing: %v", err)
	}
	if !strings.Contains(string(page), "layout: page") {
		t.Errorf("page front matter wrong:\n%s", page)
	}

	draft, err := os.ReadFile(filepath.Join(dest, "_drafts", "secret-draft.md"))
	if err != nil {
		t.Fatalf("draft file missing: %v", err)
	}
	if strings.Contains(string(draft), "published:") {
		t.Errorf("draft should omit the published key:\n%s", draft)
	}

	if _, err := os.Stat(filepath.Join(dest, "asset_download_script.sh")); err != nil {
		t.Errorf("asset script missing: %v", err)
	}
}

func TestMigrator_RunFiltersStatus(t *testing.T) {
	dest := t.TempDir()
	cfg := testSettings()
	cfg.Dest = dest
	cfg.Status = []string{"publish"}

	m := &Migrator{
		DB:  fixtureDB(t),
		Cfg: cfg,
		Now: func() time.Time { return testNow },
	}
	if err := m.Run(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dest, "_drafts", "secret-draft.md")); !os.IsNotExist(err) {
		t.Errorf("draft should not be migrated when status allow-list excludes it")
	}
}
