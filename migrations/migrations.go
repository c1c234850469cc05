// Package migrations embeds the SQL schema so tests and tooling can apply it
// without locating files on disk.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// Files lists the embedded migration files in lexical (apply) order.
func Files() ([]string, error) {
	entries, err := FS.ReadDir(".")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
