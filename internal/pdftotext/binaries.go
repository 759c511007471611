package pdftotext

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// findBinary looks for name on PATH, then in the usual poppler and xpdf
// install locations for this OS.
func findBinary(name string) (string, bool) {
	if runtime.GOOS == "windows" && filepath.Ext(name) != ".exe" {
		name += ".exe"
	}

	if p, err := exec.LookPath(name); err == nil {
		return p, true
	}

	for _, dir := range defaultDirs() {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

func defaultDirs() []string {
	switch runtime.GOOS {
	case "linux":
		return []string{"/usr/bin", "/usr/local/bin", "/snap/bin"}
	case "darwin":
		return []string{
			"/opt/homebrew/bin",
			"/usr/local/bin",
			"/opt/local/bin",
			"/opt/homebrew/opt/poppler/bin",
			"/usr/local/opt/poppler/bin",
		}
	case "windows":
		pf := os.Getenv("ProgramFiles")
		if pf == "" {
			pf = `C:\Program Files`
		}
		return globDirs(
			filepath.Join(pf, "poppler*", "Library", "bin"),
			filepath.Join(pf, "xpdf*"),
		)
	default:
		return nil
	}
}

func globDirs(patterns ...string) []string {
	var dirs []string
	for _, pat := range patterns {
		matches, _ := filepath.Glob(pat)
		dirs = append(dirs, matches...)
	}
	return dirs
}
