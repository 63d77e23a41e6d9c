// Package config resolves importer options into a fully-populated settings
// record. Resolution order for connection fields is flag > environment
// (optionally loaded from a .env file) > default.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Options holds raw option values as supplied by the caller, before
// defaults are applied. Zero values mean "not set".
type Options struct {
	Driver      string
	User        string
	Pass        string
	Host        string
	Port        string
	Socket      string
	DBName      string
	TablePrefix string
	SitePrefix  string
	Dest        string
	Extension   string
	Status      []string

	CleanEntities bool
	Comments      bool
	Categories    bool
	Tags          bool
	MoreExcerpt   bool
	MoreAnchor    bool
}

// Settings is the resolved configuration the rest of the importer runs on.
type Settings struct {
	Driver      string
	User        string
	Pass        string
	Host        string
	Port        string
	Socket      string
	DBName      string
	TablePrefix string
	SitePrefix  string
	Dest        string
	Extension   string
	Status      []string // lowercased allow-list; empty means no filtering

	CleanEntities bool
	Comments      bool
	Categories    bool
	Tags          bool
	MoreExcerpt   bool
	MoreAnchor    bool
}

// Default values matching the legacy importer.
const (
	DefaultHost        = "localhost"
	DefaultPort        = "3306"
	DefaultTablePrefix = "spip_"
	DefaultExtension   = "html"
)

var envLoaded bool

// Resolve applies defaults and environment fallbacks to opts. Credentials
// are not validated here; bad ones surface as a connection failure.
func Resolve(opts Options) (Settings, error) {
	if !envLoaded {
		// A missing .env file is fine; flags and real env still apply.
		_ = godotenv.Load()
		envLoaded = true
	}

	s := Settings{
		Driver:      fallback(opts.Driver, "", "mysql"),
		User:        fallback(opts.User, "SPIP_DB_USER", ""),
		Pass:        fallback(opts.Pass, "SPIP_DB_PASS", ""),
		Host:        fallback(opts.Host, "SPIP_DB_HOST", DefaultHost),
		Port:        fallback(opts.Port, "SPIP_DB_PORT", DefaultPort),
		Socket:      fallback(opts.Socket, "SPIP_DB_SOCKET", ""),
		DBName:      fallback(opts.DBName, "SPIP_DB_NAME", ""),
		TablePrefix: fallback(opts.TablePrefix, "", DefaultTablePrefix),
		SitePrefix:  opts.SitePrefix,
		Dest:        fallback(opts.Dest, "", "."),
		Extension:   fallback(opts.Extension, "", DefaultExtension),

		CleanEntities: opts.CleanEntities,
		Comments:      opts.Comments,
		Categories:    opts.Categories,
		Tags:          opts.Tags,
		MoreExcerpt:   opts.MoreExcerpt,
		MoreAnchor:    opts.MoreAnchor,
	}

	if s.Driver != "mysql" && s.Driver != "sqlite" {
		return Settings{}, fmt.Errorf("unknown driver %q (want mysql or sqlite)", s.Driver)
	}

	for _, st := range opts.Status {
		st = strings.ToLower(strings.TrimSpace(st))
		if st != "" {
			s.Status = append(s.Status, st)
		}
	}
	if opts.Status == nil {
		s.Status = []string{"publish"}
	}

	return s, nil
}

func fallback(value, envKey, def string) string {
	if value != "" {
		return value
	}
	if envKey != "" {
		if v := os.Getenv(envKey); v != "" {
			return v
		}
	}
	return def
}
