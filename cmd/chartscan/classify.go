package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chartkit/chartscan/pkg/chartscan/storage"
	"github.com/chartkit/chartscan/pkg/chartscan/types"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [path]",
	Short: "Show the detected storage class for a path",
	Long: `Classify resolves the path to its most specific mounted volume and
prints the storage medium class the scanner would use, along with the
I/O permit budget that class implies.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

// runClassify prints the storage class and permit budget for a path.
func runClassify(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	class := storage.Classify(path)
	fmt.Printf("%s\n", class)
	if class.Kind == types.KindOther {
		fmt.Printf("  vendor code: %d\n", class.Code)
	}
	fmt.Printf("  permits: %d\n", class.Permits())
	return nil
}
