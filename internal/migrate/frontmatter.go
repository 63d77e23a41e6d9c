package migrate

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Author is the nested author record in the metadata header.
type Author struct {
	DisplayName string `yaml:"display_name,omitempty"`
	Login       string `yaml:"login,omitempty"`
	Email       string `yaml:"email,omitempty"`
	URL         string `yaml:"url,omitempty"`
}

func (a *Author) empty() bool {
	return a.DisplayName == "" && a.Login == "" && a.Email == "" && a.URL == ""
}

// CommentMeta is one reader comment as it appears in the metadata header.
type CommentMeta struct {
	Author      string `yaml:"author,omitempty"`
	AuthorEmail string `yaml:"author_email,omitempty"`
	Date        string `yaml:"date,omitempty"`
	Title       string `yaml:"title,omitempty"`
	Content     string `yaml:"content,omitempty"`
}

// FrontMatter is the metadata header written ahead of the article body.
// Declaration order is serialization order; omitempty drops every key with
// an empty or absent value. Published stays a pointer so drafts omit the
// key entirely while unpublished statuses still emit an explicit false.
type FrontMatter struct {
	Layout       string        `yaml:"layout,omitempty"`
	Status       string        `yaml:"status,omitempty"`
	Published    *bool         `yaml:"published,omitempty"`
	Title        string        `yaml:"title,omitempty"`
	Author       *Author       `yaml:"author,omitempty"`
	AuthorLogin  string        `yaml:"author_login,omitempty"`
	AuthorEmail  string        `yaml:"author_email,omitempty"`
	AuthorURL    string        `yaml:"author_url,omitempty"`
	Excerpt      string        `yaml:"excerpt,omitempty"`
	WordpressID  int64         `yaml:"wordpress_id,omitempty"`
	WordpressURL string        `yaml:"wordpress_url,omitempty"`
	Date         string        `yaml:"date,omitempty"`
	DateGMT      string        `yaml:"date_gmt,omitempty"`
	Categories   []string      `yaml:"categories,omitempty"`
	Tags         []string      `yaml:"tags,omitempty"`
	Comments     []CommentMeta `yaml:"comments,omitempty"`
}

// Encode renders the full output document: front matter block, a separator
// line of three hyphens, then the raw body.
func (fm FrontMatter) Encode(body string) ([]byte, error) {
	header, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("serializing front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(header)
	buf.WriteString("---\n\n")
	buf.WriteString(body)
	if len(body) > 0 && body[len(body)-1] != '\n' {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
