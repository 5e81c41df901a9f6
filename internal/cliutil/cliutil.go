package cliutil

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

func hasGlobMeta(s string) bool { return strings.ContainsAny(s, "*?[") }

// ExpandPatterns expands glob patterns among the given arguments into file
// paths, passing plain paths through unchanged. The result is deduplicated
// preserving first-seen order. Patterns that match nothing are returned in
// unmatched so the caller can report them.
func ExpandPatterns(patterns []string) (files, unmatched []string, err error) {
	var expanded []string
	for _, p := range patterns {
		if !hasGlobMeta(p) {
			expanded = append(expanded, p)
			continue
		}
		m, globErr := filepath.Glob(p)
		if globErr != nil {
			return nil, nil, fmt.Errorf("bad glob %q: %w", p, globErr)
		}
		if len(m) == 0 {
			unmatched = append(unmatched, p)
			continue
		}
		expanded = append(expanded, m...)
	}

	seen := make(map[string]struct{}, len(expanded))
	for _, f := range expanded {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		files = append(files, f)
	}
	return files, unmatched, nil
}

// ConfirmOverwrite prompts on w and reads a y/N answer from r.
// Anything but "y"/"yes" (case-insensitive) declines. The caller owns the
// bufio.Reader so consecutive prompts share one buffer.
func ConfirmOverwrite(r *bufio.Reader, w io.Writer, path string) bool {
	fmt.Fprintf(w, "File %q already exists. Overwrite? (y/N): ", path)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
