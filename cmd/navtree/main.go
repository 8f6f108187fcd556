package main

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"navtree/internal/cli"

	"github.com/joho/godotenv"
)

func isMenuID(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "menu-") && len(s) > len("menu-")
}

// rewriteDirectMenuArgs makes `navtree <menu-id>` work like `navtree tui <menu-id>`.
// Cobra treats the first positional token as a subcommand, so argv is rewritten
// before parsing. Persistent flags may come first, so we look for the first
// positional token rather than argv[1].
func rewriteDirectMenuArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}
	valueFlags := map[string]bool{
		"--dir":       true,
		"--format":    true,
		"--log-level": true,
	}

	rewrite := func(at int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:at]...)
		out = append(out, "tui")
		return append(out, argv[at:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isMenuID(argv[i+1]) {
				return rewrite(i + 1)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if isMenuID(a) {
			return rewrite(i)
		}
		return argv
	}
	return argv
}

func main() {
	// A missing .env is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		os.Stderr.WriteString("navtree: " + err.Error() + "\n")
		os.Exit(1)
	}

	os.Args = rewriteDirectMenuArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
