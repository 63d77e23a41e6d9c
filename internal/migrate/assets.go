package migrate

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"spip2jekyll/internal/db"
)

const (
	assetScriptName = "asset_download_script.sh"
	assetDir        = "_assets"
)

// WriteAssetScript emits a shell script that downloads every externally
// hosted asset. The legacy schema stores only references, so fetching is
// left to the operator: fill in BASE_URL and run the script.
func WriteAssetScript(dest string, assets []db.Asset) error {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString("# Set BASE_URL to the legacy site's root before running.\n")
	b.WriteString("BASE_URL=\n\n")
	b.WriteString("mkdir -p " + assetDir + "\n")
	for _, a := range assets {
		b.WriteString(AssetCommand(a))
		b.WriteByte('\n')
	}
	return writeFileAtomic(filepath.Join(dest, assetScriptName), []byte(b.String()), 0o755)
}

// AssetCommand builds one download line, naming the local file
// <id>-<basename of the remote path>. The stored extension column fills in
// when the remote path carries none.
func AssetCommand(a db.Asset) string {
	base := path.Base(a.Path)
	if path.Ext(base) == "" && a.Extension != "" {
		base += "." + a.Extension
	}
	local := fmt.Sprintf("%s/%d-%s", assetDir, a.ID, base)
	return fmt.Sprintf("curl -f -o %q \"$BASE_URL%s\"", local, a.Path)
}
