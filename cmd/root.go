package cmd

import (
	"fmt"

	"github.com/sergev/uoled/config"
	"github.com/sergev/uoled/picaso"
	"github.com/spf13/cobra"
)

var portFlag string

var rootCmd = &cobra.Command{
	Use:   "uoled",
	Short: "A CLI program which controls 4D Systems serial displays",
	Long:  "The uoled tool is a CLI program which controls 4D Systems uOLED/uLCD displays over a serial port.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := config.Initialize(); err != nil {
			cobra.CheckErr(fmt.Errorf("failed to load configuration: %w", err))
		}
	},
}

// openDisplay connects to the configured display and returns the handle.
// The caller is responsible for Close.
func openDisplay() *picaso.Display {
	port := portFlag
	if port == "" {
		port = config.PortName
	}
	if port == "" {
		cobra.CheckErr(fmt.Errorf("no serial port configured; use --port or edit ~/.uoled"))
	}

	disp := picaso.New()
	if disp.Connect(port) != picaso.StatusOK {
		cobra.CheckErr(fmt.Errorf("failed to connect to display on %s: %s", port, disp.LastError()))
	}

	// A configured rate overrides the default "fastest supported".
	if config.Baud != 0 {
		code, ok := picaso.CodeForRate(config.Baud)
		if !ok {
			disp.Close()
			cobra.CheckErr(fmt.Errorf("unsupported baud rate %d", config.Baud))
		}
		if disp.SetBaud(code) != picaso.StatusOK {
			disp.Close()
			cobra.CheckErr(fmt.Errorf("failed to set baud rate %d: %s", config.Baud, disp.LastError()))
		}
	}

	return disp
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&portFlag, "port", "p", "",
		"serial port of the display (overrides the configuration file)")
}
