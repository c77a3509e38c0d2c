package api

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Format is how CLI results are printed.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// format is set once from the root command's --output flag.
var format = FormatYAML

// ParseFormat validates an --output value. Empty means YAML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatYAML, nil
	case FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want yaml or json)", s)
	}
}

// SetFormat selects the format used by Print.
func SetFormat(f Format) {
	format = f
}

// CurrentFormat reports the format used by Print.
func CurrentFormat() Format {
	return format
}

// Print writes v to the command's output stream in the selected format.
func Print(cmd *cobra.Command, v any) error {
	return Encode(cmd.OutOrStdout(), format, v)
}

// Encode writes v to w. Card fields routinely contain '<' and '&', so JSON
// output is not HTML-escaped.
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", f)
}
