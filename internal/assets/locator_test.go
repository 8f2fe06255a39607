package assets

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"fancyfolders/internal/fonts"
	"fancyfolders/internal/style"
)

func TestFolderImageMissing(t *testing.T) {
	loc := &Locator{Dir: t.TempDir()}
	_, err := loc.FolderImage(style.Catalina)
	if !errors.Is(err, ErrAssetMissing) {
		t.Fatalf("expected ErrAssetMissing, got %v", err)
	}
}

func TestFolderImageDecodes(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	img.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	f, err := os.Create(filepath.Join(dir, style.BigSurDark.Filename()))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	loc := &Locator{Dir: dir}
	got, err := loc.FolderImage(style.BigSurDark)
	if err != nil {
		t.Fatalf("folder image: %v", err)
	}
	if got.Bounds().Dx() != 8 {
		t.Fatalf("unexpected bounds %v", got.Bounds())
	}
}

func TestFontSearchOrder(t *testing.T) {
	assetsDir := t.TempDir()
	extra := t.TempDir()
	bundled := filepath.Join(assetsDir, FontsSubdir)
	if err := os.MkdirAll(bundled, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	touch := func(path string) {
		t.Helper()
		if err := os.WriteFile(path, []byte("font"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}

	loc := &Locator{Dir: assetsDir, FontDirs: []string{extra}, SkipSystemFonts: true}

	if _, err := loc.Font(fonts.Bold); !errors.Is(err, ErrNoUsableFont) {
		t.Fatalf("expected ErrNoUsableFont, got %v", err)
	}

	// A backup in the bundled dir is found when nothing better exists.
	touch(filepath.Join(bundled, fonts.Backups[0]))
	got, err := loc.Font(fonts.Bold)
	if err != nil || filepath.Base(got) != fonts.Backups[0] {
		t.Fatalf("expected backup font, got %q (%v)", got, err)
	}

	// The exact weight wins over a backup, even from a later directory.
	touch(filepath.Join(extra, fonts.Bold.Filename()))
	got, err = loc.Font(fonts.Bold)
	if err != nil || got != filepath.Join(extra, fonts.Bold.Filename()) {
		t.Fatalf("expected weight file in extra dir, got %q (%v)", got, err)
	}

	// The bundled copy of the weight beats the extra dir.
	touch(filepath.Join(bundled, fonts.Bold.Filename()))
	got, err = loc.Font(fonts.Bold)
	if err != nil || got != filepath.Join(bundled, fonts.Bold.Filename()) {
		t.Fatalf("expected bundled weight file, got %q (%v)", got, err)
	}
}

func TestFontSearchPathSkipsSystem(t *testing.T) {
	loc := &Locator{Dir: "a", FontDirs: []string{"b"}, SkipSystemFonts: true}
	got := loc.FontSearchPath()
	if len(got) != 2 || got[0] != filepath.Join("a", FontsSubdir) || got[1] != "b" {
		t.Fatalf("unexpected search path: %v", got)
	}
}
