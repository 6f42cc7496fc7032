package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/kbx/internal/when"
)

var whenOutput string

// whenCmd shows how a when condition is normalized and which context keys
// it references.
var whenCmd = &cobra.Command{
	Use:     "when <expr>",
	Short:   "Normalize a when condition and list its context keys",
	Example: "\n  kbx when 'editorTextFocus  &&  !editorReadonly'\n  kbx when -o json \"resourceExtname == '.go'\"\n",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := when.NewNormalizer()
		if err != nil {
			return err
		}
		clause := n.Normalize(strings.Join(args, " "))
		return writeClause(cmd.OutOrStdout(), clause, whenOutput)
	},
}

func writeClause(w io.Writer, c when.Clause, format string) error {
	switch format {
	case "", "text":
		_, err := fmt.Fprintf(w, "canonical: %s\nkeys:      %s\nparsed:    %t\n", c.Canonical, strings.Join(c.Keys, ", "), c.Parsed)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(c)
	}
	return fmt.Errorf("unknown when output %q (valid: text, json)", format)
}

func init() { //nolint:gochecknoinits
	whenCmd.Flags().StringVarP(&whenOutput, "output", "o", "text", "output format: text|json")
}
