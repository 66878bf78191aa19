package cmd

import (
	"fmt"

	"github.com/sergev/uoled/picaso"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Erase the display",
	Long:  "Erase the display to the current background color.",
	Run: func(cmd *cobra.Command, args []string) {
		disp := openDisplay()
		defer disp.Close()

		if disp.Clear() != picaso.StatusOK {
			cobra.CheckErr(fmt.Errorf("failed to clear the display: %s", disp.LastError()))
		}
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
