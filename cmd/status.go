package cmd

import (
	"fmt"

	"github.com/sergev/uoled/config"
	"github.com/sergev/uoled/picaso"
	"github.com/spf13/cobra"
)

func displayTypeName(t byte) string {
	switch t {
	case picaso.DevOLED:
		return "uOLED"
	case picaso.DevLCD:
		return "uLCD"
	case picaso.DevVGA:
		return "uVGA"
	}
	return "unknown"
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the status of the display",
	Long:  "Connect to the display and report its type, firmware revision and resolution.",
	Run: func(cmd *cobra.Command, args []string) {
		disp := openDisplay()
		defer disp.Close()

		info, st := disp.Version(false)
		if st != picaso.StatusOK {
			cobra.CheckErr(fmt.Errorf("failed to read device version: %s", disp.LastError()))
		}

		fmt.Printf("Display: %s on %s at %d baud\n",
			displayTypeName(info.DisplayType), disp.PortName(), disp.BaudRate())
		fmt.Printf("Hardware revision: %d\n", info.HardwareRev)
		fmt.Printf("Firmware revision: %d\n", info.FirmwareRev)
		fmt.Printf("Resolution: %dx%d\n", info.HRes, info.VRes)
		fmt.Printf("\nConfiguration script: ~/.uoled\n")
		fmt.Printf("Profile: %s\n", config.DisplayName)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
