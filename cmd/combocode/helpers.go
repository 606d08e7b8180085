package main

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// displayStarName turns an identifier like "w_hya" into "W Hya" for
// human-facing output.
func displayStarName(name string) string {
	cleaned := strings.ReplaceAll(strings.TrimSpace(name), "_", " ")
	if cleaned == "" {
		return name
	}
	return cases.Title(language.Und).String(cleaned)
}

// formatValue renders a resolved parameter value for table output.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, "; ")
	case float64:
		return formatFloat(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func formatFloat(v float64) string {
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e5 || abs < 1e-3 {
		return fmt.Sprintf("%.6e", v)
	}
	return fmt.Sprintf("%.6g", v)
}
