package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// commentPublished is the status value marking a reader comment as visible.
const commentPublished = "publish"

// ListArticles returns the id/title/parent projection of every article,
// used to build the page index before the transformation pass.
func (d *DB) ListArticles() ([]ArticleStub, error) {
	query := fmt.Sprintf(
		"SELECT id, title, parent FROM %s ORDER BY id",
		d.Table("articles"),
	)
	rows, err := d.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	defer rows.Close()

	var stubs []ArticleStub
	for rows.Next() {
		var s ArticleStub
		var title sql.NullString
		var parent sql.NullInt64
		if err := rows.Scan(&s.ID, &title, &parent); err != nil {
			return nil, err
		}
		s.Title = title.String
		s.Parent = parent.Int64
		stubs = append(stubs, s)
	}
	return stubs, rows.Err()
}

// ArticlesByStatus returns the full article rows whose status is in the
// allow-list, each joined with its author through the authorship link
// table. An empty allow-list returns every article.
func (d *DB) ArticlesByStatus(statuses []string) ([]Article, error) {
	query := fmt.Sprintf(`
		SELECT a.id, a.title, a.subtitle, a.description, a.intro, a.content,
		       a.date, a.date_gmt, a.lang, a.status, a.type, a.guid,
		       u.name, u.login, u.email, u.url
		FROM %s a
		LEFT JOIN %s l ON l.article_id = a.id
		LEFT JOIN %s u ON u.id = l.author_id`,
		d.Table("articles"), d.Table("article_authors"), d.Table("authors"),
	)

	var args []any
	if len(statuses) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(statuses)), ",")
		query += fmt.Sprintf(" WHERE a.status IN (%s)", placeholders)
		for _, s := range statuses {
			args = append(args, s)
		}
	}
	query += " ORDER BY a.id"

	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		var a Article
		var title, status, typ sql.NullString
		err := rows.Scan(
			&a.ID, &title, &a.Subtitle, &a.Description, &a.Lead, &a.Content,
			&a.Date, &a.DateGMT, &a.Lang, &status, &typ, &a.GUID,
			&a.AuthorName, &a.AuthorLogin, &a.AuthorEmail, &a.AuthorURL,
		)
		if err != nil {
			return nil, err
		}
		a.Title = title.String
		a.Status = status.String
		a.Type = typ.String
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// TermsForArticle returns the taxonomy terms attached to one article.
func (d *DB) TermsForArticle(id int64) ([]Term, error) {
	query := fmt.Sprintf(`
		SELECT t.name, t.type
		FROM %s t
		JOIN %s l ON l.term_id = t.id
		WHERE l.article_id = ?
		ORDER BY t.id`,
		d.Table("terms"), d.Table("article_terms"),
	)
	rows, err := d.conn.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("querying terms for article %d: %w", id, err)
	}
	defer rows.Close()

	var terms []Term
	for rows.Next() {
		var t Term
		var name, typ sql.NullString
		if err := rows.Scan(&name, &typ); err != nil {
			return nil, err
		}
		t.Name = name.String
		t.Type = typ.String
		terms = append(terms, t)
	}
	return terms, rows.Err()
}

// CommentsForArticle returns the published comments on one article, in
// whatever order the database yields them; the transformer sorts by date.
func (d *DB) CommentsForArticle(id int64) ([]Comment, error) {
	query := fmt.Sprintf(`
		SELECT author, author_email, date, title, content
		FROM %s
		WHERE article_id = ? AND status = ?`,
		d.Table("comments"),
	)
	rows, err := d.conn.Query(query, id, commentPublished)
	if err != nil {
		return nil, fmt.Errorf("querying comments for article %d: %w", id, err)
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.Author, &c.AuthorEmail, &c.Date, &c.Title, &c.Content); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Assets returns every binary-asset reference in the legacy schema.
func (d *DB) Assets() ([]Asset, error) {
	query := fmt.Sprintf(
		"SELECT id, extension, path FROM %s ORDER BY id",
		d.Table("documents"),
	)
	rows, err := d.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	defer rows.Close()

	var assets []Asset
	for rows.Next() {
		var a Asset
		var ext, path sql.NullString
		if err := rows.Scan(&a.ID, &ext, &path); err != nil {
			return nil, err
		}
		a.Extension = ext.String
		a.Path = path.String
		assets = append(assets, a)
	}
	return assets, rows.Err()
}
