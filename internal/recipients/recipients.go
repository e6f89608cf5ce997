// Package recipients reads newline-delimited phone number lists.
package recipients

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads the recipient file at path. A missing file yields an error
// matching fs.ErrNotExist.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numbers, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return numbers, nil
}

// Parse returns one entry per non-blank line, trimmed, with duplicates
// removed. The first occurrence of each number keeps its position.
func Parse(r io.Reader) ([]string, error) {
	seen := make(map[string]struct{})
	numbers := make([]string, 0)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if _, ok := seen[line]; ok {
			continue
		}

		seen[line] = struct{}{}
		numbers = append(numbers, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return numbers, nil
}
