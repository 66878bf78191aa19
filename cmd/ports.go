package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.bug.st/serial/enumerator"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports present on this machine",
	Long:  "List serial ports present on this machine, with USB identifiers where available.",
	Run: func(cmd *cobra.Command, args []string) {
		ports, err := enumerator.GetDetailedPortsList()
		if err != nil {
			cobra.CheckErr(fmt.Errorf("failed to list serial ports: %w", err))
		}
		if len(ports) == 0 {
			fmt.Println("No serial ports found")
			return
		}
		for _, port := range ports {
			fmt.Printf("%s", port.Name)
			if port.IsUSB {
				fmt.Printf("  VID=%s PID=%s", port.VID, port.PID)
				if port.SerialNumber != "" {
					fmt.Printf("  serial=%s", port.SerialNumber)
				}
			}
			fmt.Println()
		}
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}
