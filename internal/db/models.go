package db

// Article is one row of the legacy articles table, joined with its author.
// Pointer fields are nullable in the legacy schema.
type Article struct {
	ID          int64
	Title       string
	Subtitle    *string
	Description *string
	Lead        *string // the intro column, shown ahead of the fold
	Content     *string
	Date        *string // legacy stores datetimes as strings
	DateGMT     *string
	Lang        *string
	Status      string
	Type        string // "post" or "page"
	GUID        *string

	AuthorName  *string
	AuthorLogin *string
	AuthorEmail *string
	AuthorURL   *string
}

// ArticleStub is the projection used to build the page index.
type ArticleStub struct {
	ID     int64
	Title  string
	Parent int64 // 0 for root articles
}

// Term is a category or tag attached to one article.
type Term struct {
	Name string
	Type string // "category" or "tag"
}

// Comment is one published reader comment on an article.
type Comment struct {
	Author      *string
	AuthorEmail *string
	Date        *string
	Title       *string
	Content     *string
}

// Asset references a binary file the legacy system hosts externally.
type Asset struct {
	ID        int64
	Extension string
	Path      string
}
