// Package display renders postings and analysis results for the terminal
// (pterm tables, bar charts and boxes), as JSON, or as CSV exports.
package display

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/recruitiq/errors"
)

// OutputEnv forces JSON output for every command when set to "json"
const OutputEnv = "RECRUITIQ_OUTPUT"

// ShouldOutputJSON reports whether cmd should print JSON: an explicit --json
// flag wins, then the root --json flag, then RECRUITIQ_OUTPUT.
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return envWantsJSON()
	}

	if f := cmd.Flags().Lookup("json"); f != nil && f.Changed {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		return jsonFlag
	}

	if globalFlag, _ := cmd.Root().PersistentFlags().GetBool("json"); globalFlag {
		return true
	}

	return envWantsJSON()
}

func envWantsJSON() bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv(OutputEnv)), "json")
}

// OutputJSON marshals v with MarshalJSON and prints it to stdout
func OutputJSON(v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	fmt.Println(string(data))
	return nil
}
