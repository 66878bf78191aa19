package cmd

import (
	"fmt"
	"strconv"

	"github.com/sergev/uoled/config"
	"github.com/sergev/uoled/picaso"
	"github.com/spf13/cobra"
)

var volumeCmd = &cobra.Command{
	Use:   "volume [LEVEL]",
	Short: "Set the audio output level",
	Long: "Set the audio output level (0..3, 8..127, 253..255). " +
		"Without an argument the configured default level is applied.",
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		level := config.Volume
		if len(args) > 0 {
			v, err := strconv.ParseUint(args[0], 10, 8)
			if err != nil {
				cobra.CheckErr(fmt.Errorf("invalid level %q: %w", args[0], err))
			}
			level = int(v)
		}

		disp := openDisplay()
		defer disp.Close()

		if disp.SetVolume(byte(level)) != picaso.StatusOK {
			cobra.CheckErr(fmt.Errorf("failed to set volume %d: %s", level, disp.LastError()))
		}
	},
}

func init() {
	rootCmd.AddCommand(volumeCmd)
}
