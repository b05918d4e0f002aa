package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/askiada/go-lensing/pkg/diagnostics"
	"github.com/askiada/go-lensing/pkg/shear"
)

// typesCmd lists the registered diagnostics and shear types.
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List diagnostics modules and shear types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printTypes(cmd.OutOrStdout())
	},
}

func printTypes(out io.Writer) error {
	_, err := fmt.Fprintf(out, "diagnostics: %s\nshear: %s\n",
		strings.Join(diagnostics.Types(), ", "),
		strings.Join(shear.Types(), ", "),
	)

	return err
}
