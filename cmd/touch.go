package cmd

import (
	"fmt"
	"time"

	"github.com/sergev/uoled/picaso"
	"github.com/spf13/cobra"
)

var touchWait int

var touchCmd = &cobra.Command{
	Use:   "touch",
	Short: "Wait for a touch and report its coordinates",
	Long:  "Wait for the touch panel to be pressed and print the touch coordinates.",
	Run: func(cmd *cobra.Command, args []string) {
		disp := openDisplay()
		defer disp.Close()

		if disp.Ctl(picaso.CtlTouch, 0) != picaso.StatusOK {
			cobra.CheckErr(fmt.Errorf("failed to enable the touch panel: %s", disp.LastError()))
		}

		coords := make([]uint16, 2)
		done := make(chan bool, 1)
		disp.SetNotifier(picaso.NotifierFunc(func(d *picaso.Display, p picaso.Pending, ok bool) {
			done <- ok
		}))

		switch st := disp.GetTouch(picaso.TouchGetPress, coords); st {
		case picaso.StatusTimeout:
			// Pending; the worker reports through the notifier.
		case picaso.StatusOK:
			fmt.Printf("Touch at %d,%d\n", coords[0], coords[1])
			return
		default:
			cobra.CheckErr(fmt.Errorf("touch request failed: %s", disp.LastError()))
		}

		fmt.Println("Waiting for touch...")
		select {
		case ok := <-done:
			if !ok {
				cobra.CheckErr(fmt.Errorf("touch wait failed: %s", disp.LastError()))
			}
			fmt.Printf("Touch at %d,%d\n", coords[0], coords[1])
		case <-time.After(time.Duration(touchWait) * time.Second):
			fmt.Println("No touch detected")
		}
	},
}

func init() {
	touchCmd.Flags().IntVar(&touchWait, "wait", 30, "seconds to wait for a touch")
	rootCmd.AddCommand(touchCmd)
}
