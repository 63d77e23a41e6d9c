// Package text holds the title/body post-processors: slug generation and
// entity cleaning.
package text

import "github.com/gosimple/slug"

// Slugify derives a lowercase, ASCII-transliterated, hyphen-separated token
// from a title, usable in file paths and URLs. Deterministic for a given
// input.
func Slugify(title string) string {
	return slug.Make(title)
}
