package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const lineWidth = 80

// printJSON writes v to stdout as indented JSON
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func jsonOutput() bool {
	return outputFormat == "json"
}

func separator() {
	fmt.Println(strings.Repeat("-", lineWidth))
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}
