package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spip2jekyll/internal/db"
)

func TestAssetCommand(t *testing.T) {
	a := db.Asset{ID: 12, Extension: "pdf", Path: "/files/report.pdf"}
	got := AssetCommand(a)
	want := `curl -f -o "_assets/12-report.pdf" "$BASE_URL/files/report.pdf"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAssetCommand_ExtensionFallback(t *testing.T) {
	a := db.Asset{ID: 3, Extension: "jpg", Path: "/files/photo"}
	got := AssetCommand(a)
	if !strings.Contains(got, "_assets/3-photo.jpg") {
		t.Errorf("expected extension fallback in %q", got)
	}
}

func TestWriteAssetScript(t *testing.T) {
	dir := t.TempDir()
	assets := []db.Asset{
		{ID: 12, Extension: "pdf", Path: "/files/report.pdf"},
		{ID: 13, Extension: "png", Path: "/files/logo.png"},
	}

	if err := WriteAssetScript(dir, assets); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(dir, "asset_download_script.sh")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading script: %v", err)
	}
	script := string(data)

	if !strings.HasPrefix(script, "#!/bin/sh\n") {
		t.Errorf("script missing interpreter line:\n%s", script)
	}
	if !strings.Contains(script, "BASE_URL=\n") {
		t.Errorf("script missing BASE_URL placeholder:\n%s", script)
	}
	if !strings.Contains(script, "mkdir -p _assets") {
		t.Errorf("script missing assets directory creation:\n%s", script)
	}
	if !strings.Contains(script, `curl -f -o "_assets/12-report.pdf" "$BASE_URL/files/report.pdf"`) {
		t.Errorf("script missing download command:\n%s", script)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat script: %v", err)
	}
	if info.Mode()&0o100 == 0 {
		t.Errorf("script should be executable, mode %v", info.Mode())
	}
}
