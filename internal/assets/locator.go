// Package assets finds the folder artwork and fonts the generator needs.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mitchellh/go-homedir"

	"fancyfolders/internal/fonts"
	"fancyfolders/internal/style"
)

// FontsSubdir is where bundled fonts live inside the assets directory.
const FontsSubdir = "fonts"

// Locator resolves asset paths. Dir holds the folder images; FontDirs are
// extra directories searched for fonts after the bundled ones.
type Locator struct {
	Dir      string
	FontDirs []string

	// SkipSystemFonts limits the font search to Dir and FontDirs.
	SkipSystemFonts bool
}

// FolderPath returns where the folder image for s is expected.
func (l *Locator) FolderPath(s style.Style) string {
	return filepath.Join(l.Dir, s.Filename())
}

// FolderImage decodes the folder image for s.
func (l *Locator) FolderImage(s style.Style) (image.Image, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("assets: invalid style %v", s)
	}
	path := l.FolderPath(s)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrAssetMissing, path)
		}
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Font returns the path of the first font file found for w. Each candidate
// name (the weight's own file, then the system fallbacks) is looked up in
// every search directory before the next candidate is tried.
func (l *Locator) Font(w fonts.Weight) (string, error) {
	if !w.Valid() {
		w = fonts.DefaultWeight
	}
	dirs := l.FontSearchPath()
	for _, name := range w.Candidates() {
		for _, dir := range dirs {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
				return path, nil
			}
		}
	}
	return "", fmt.Errorf("%w for weight %s", ErrNoUsableFont, w)
}

// FontSearchPath lists the directories Font looks in, in order.
func (l *Locator) FontSearchPath() []string {
	dirs := []string{filepath.Join(l.Dir, FontsSubdir)}
	for _, d := range l.FontDirs {
		if expanded, err := homedir.Expand(d); err == nil {
			d = expanded
		}
		dirs = append(dirs, d)
	}
	if !l.SkipSystemFonts {
		dirs = append(dirs, systemFontDirs()...)
	}
	return dirs
}

func systemFontDirs() []string {
	var dirs []string
	switch runtime.GOOS {
	case "darwin":
		dirs = []string{
			"~/Library/Fonts",
			"/Library/Fonts",
			"/System/Library/Fonts",
			"/System/Library/Fonts/Supplemental",
		}
	case "windows":
		dirs = []string{filepath.Join(os.Getenv("WINDIR"), "Fonts")}
	default:
		dirs = []string{
			"~/.local/share/fonts",
			"~/.fonts",
			"/usr/local/share/fonts",
			"/usr/share/fonts",
		}
	}

	out := dirs[:0]
	for _, d := range dirs {
		expanded, err := homedir.Expand(d)
		if err != nil {
			continue
		}
		out = append(out, expanded)
	}
	return out
}
