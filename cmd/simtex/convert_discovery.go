package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	simtex "github.com/alnah/go-simtex"
	"github.com/alnah/go-simtex/internal/fileutil"
)

// noteExtensions are the files picked up when a directory is given.
var noteExtensions = map[string]bool{".txt": true, ".md": true}

// discoverNotes expands directories in inputs into the notes they contain,
// recursively and in lexical order. Files are kept as given, whatever their
// extension.
func discoverNotes(inputs []string) ([]string, error) {
	var notes []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			notes = append(notes, p)
		}
	}

	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", simtex.ErrReadInput, err)
		}
		if !info.IsDir() {
			add(in)
			continue
		}

		var found []string
		err = filepath.WalkDir(in, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if !d.IsDir() && noteExtensions[strings.ToLower(filepath.Ext(path))] {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", simtex.ErrReadInput, err)
		}
		sort.Strings(found)
		for _, p := range found {
			add(p)
		}
	}
	return notes, nil
}

// checkOutputCollisions rejects notes that would write the same file into a
// shared output folder.
func checkOutputCollisions(notes []string, folder string) error {
	if folder == "" {
		return nil
	}
	owner := make(map[string]string, len(notes))
	for _, n := range notes {
		name := fileutil.StripExt(n) + ".tex"
		if prev, ok := owner[name]; ok {
			return fmt.Errorf("%w: %s and %s both write %s", ErrInvalidFlag, prev, n, filepath.Join(folder, name))
		}
		owner[name] = n
	}
	return nil
}
