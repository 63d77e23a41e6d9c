// Package cmd wires the importer's command-line surface to the migration
// pipeline.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"spip2jekyll/internal/config"
	"spip2jekyll/internal/db"
	"spip2jekyll/internal/migrate"
)

var opts config.Options

var rootCmd = &cobra.Command{
	Use:   "spip2jekyll",
	Short: "Migrate a legacy SPIP database into Jekyll flat files",
	Long: `spip2jekyll performs a one-time export of articles, authors,
taxonomy terms, and comments from a legacy SPIP database into Jekyll's
front-matter flat-file layout, plus a download script for externally
hosted assets.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Resolve(opts)
		if err != nil {
			return err
		}

		conn, err := db.Open(cfg)
		if err != nil {
			return err
		}
		defer conn.Close()

		m := &migrate.Migrator{DB: conn, Cfg: cfg}
		return m.Run()
	},
}

// Execute runs the root command, printing any error to stderr.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.Flags()

	f.StringVar(&opts.Driver, "driver", "mysql", "Database driver: mysql or sqlite")
	f.StringVar(&opts.DBName, "dbname", "", "Database name (or file path with --driver sqlite)")
	f.StringVar(&opts.Socket, "socket", "", "MySQL unix socket path")
	f.StringVar(&opts.User, "user", "", "Database user")
	f.StringVar(&opts.Pass, "password", "", "Database password")
	f.StringVar(&opts.Host, "host", config.DefaultHost, "Database host")
	f.StringVar(&opts.Port, "port", config.DefaultPort, "Database port")
	f.StringVar(&opts.TablePrefix, "table_prefix", config.DefaultTablePrefix, "Legacy table name prefix")
	f.StringVar(&opts.SitePrefix, "site_prefix", "", "Extra per-site table prefix")
	f.StringVar(&opts.Dest, "dest", ".", "Output directory")
	f.StringVar(&opts.Extension, "extension", config.DefaultExtension, "Output file extension for posts and pages")
	f.StringSliceVar(&opts.Status, "status", []string{"publish"}, "Comma-separated article statuses to migrate (empty: all)")

	f.BoolVar(&opts.CleanEntities, "clean_entities", true, "Encode non-ASCII characters as HTML entities")
	f.BoolVar(&opts.Comments, "comments", true, "Include published comments in front matter")
	f.BoolVar(&opts.Categories, "categories", true, "Include categories in front matter")
	f.BoolVar(&opts.Tags, "tags", true, "Include tags in front matter")
	f.BoolVar(&opts.MoreExcerpt, "more_excerpt", true, "Derive the excerpt from text before the <!--more--> marker")
	f.BoolVar(&opts.MoreAnchor, "more_anchor", true, "Replace the <!--more--> marker with an anchor")
}
