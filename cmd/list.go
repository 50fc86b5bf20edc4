package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Australian-Structural-Biology-Computing/MultiQC/internal/discovery"
	"github.com/Australian-Structural-Biology-Computing/MultiQC/internal/nanostat"
)

var listCmd = &cobra.Command{
	Use:   "list <dir>",
	Short: "List NanoStat reports under <dir> without aggregating",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := discovery.Find(args[0])
		if err != nil {
			return err
		}
		if len(sources) == 0 {
			fmt.Println("(no reports)")
			return nil
		}
		for _, src := range sources {
			layout := "unrecognized"
			rec, err := parseReportFile(src.Path)
			switch {
			case err == nil:
				layout = string(rec.Variant)
			case errors.Is(err, nanostat.ErrUnrecognized):
				// keep "unrecognized"
			default:
				layout = "corrupt"
			}
			fmt.Printf("- %s: sample=%s layout=%s\n", src.Path, src.Sample, layout)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
