package cmd

import (
	"fmt"

	"github.com/sergev/uoled/picaso"
	"github.com/spf13/cobra"
)

var (
	textColumn int
	textRow    int
	textFont   int
)

var textCmd = &cobra.Command{
	Use:   "text STRING",
	Short: "Show a text string on the display",
	Long:  "Show a text string on the display at the given character cell.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if textFont < 0 || textFont > picaso.Font12x16 {
			cobra.CheckErr(fmt.Errorf("invalid font %d; valid range is 0..3", textFont))
		}

		disp := openDisplay()
		defer disp.Close()

		st := disp.ShowString(byte(textColumn), byte(textRow), byte(textFont),
			picaso.White, args[0])
		if st != picaso.StatusOK {
			cobra.CheckErr(fmt.Errorf("failed to show text: %s", disp.LastError()))
		}
	},
}

func init() {
	textCmd.Flags().IntVar(&textColumn, "column", 0, "character column")
	textCmd.Flags().IntVar(&textRow, "row", 0, "character row")
	textCmd.Flags().IntVar(&textFont, "font", picaso.Font8x8, "built-in font (0..3)")
	rootCmd.AddCommand(textCmd)
}
