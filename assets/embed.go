// assets/embed.go
//
// Embedded default word lists and SQL migrations.

package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed words/*.txt
var wordsFS embed.FS

//go:embed migrations/*.sql
var migrationsFS embed.FS

func readLines(name string) ([]string, error) {
	f, err := wordsFS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// WordList returns the embedded list for a difficulty name (easy, medium, hard).
func WordList(difficulty string) ([]string, error) {
	return readLines("words/" + difficulty + ".txt")
}

// Migrations exposes the migrations directory as an fs.FS rooted at "migrations".
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		// Only fails if the embed pattern above is broken.
		panic(err)
	}
	return sub
}
