package star

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadInput parses a model definition file of KEY=VALUE lines into an
// initial parameter set. Lines starting with # or ! are comments, as is
// anything after an inline " #". A key appearing more than once
// accumulates its values into a string slice, preserving file order;
// MOLECULE and TRANSITION rows rely on this.
func ReadInput(path string) (map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model input: %w", err)
	}
	defer f.Close()

	params := make(map[string]any)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		if i := strings.Index(line, " #"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("model input line %d: no key=value pair in %q", lineNo, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			return nil, fmt.Errorf("model input line %d: empty key", lineNo)
		}
		switch existing := params[key].(type) {
		case nil:
			params[key] = value
		case string:
			params[key] = []string{existing, value}
		case []string:
			params[key] = append(existing, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read model input: %w", err)
	}
	return params, nil
}
