package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/Australian-Structural-Biology-Computing/MultiQC/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set MultiQC configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := activeConfig()
		fmt.Printf("output_dir: %s\n", c.OutputDir)
		fmt.Printf("report_title: %s\n", c.ReportTitle)
		if len(c.IgnoreSamples) > 0 {
			fmt.Printf("ignore_samples: %s\n", strings.Join(c.IgnoreSamples, ", "))
		}
		fmt.Printf("base_count_prefix: %s\n", c.BaseCountPrefix)
		fmt.Printf("base_count_multiplier: %g\n", c.BaseCountMultiplier)
		fmt.Printf("long_read_count_prefix: %s\n", c.LongReadCountPrefix)
		fmt.Printf("long_read_count_multiplier: %g\n", c.LongReadCountMultiplier)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c := activeConfig()
		switch key {
		case "output_dir":
			c.OutputDir = val
		case "report_title":
			c.ReportTitle = val
		case "ignore_samples":
			c.IgnoreSamples = splitGlobs(val)
		case "base_count_prefix":
			c.BaseCountPrefix = val
		case "base_count_multiplier":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid float for base_count_multiplier: %v", val)
			}
			c.BaseCountMultiplier = f
		case "long_read_count_prefix":
			c.LongReadCountPrefix = val
		case "long_read_count_multiplier":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid float for long_read_count_multiplier: %v", val)
			}
			c.LongReadCountMultiplier = f
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func splitGlobs(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
