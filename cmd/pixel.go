package cmd

import (
	"fmt"
	"strconv"

	"github.com/sergev/uoled/picaso"
	"github.com/spf13/cobra"
)

var pixelColor string

func parseCoord(s string) uint16 {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		cobra.CheckErr(fmt.Errorf("invalid coordinate %q: %w", s, err))
	}
	return uint16(v)
}

var pixelCmd = &cobra.Command{
	Use:   "pixel X Y",
	Short: "Set or read a single pixel",
	Long:  "Set a single pixel to the given RGB565 color, or read its color when no color is given.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		x := parseCoord(args[0])
		y := parseCoord(args[1])

		disp := openDisplay()
		defer disp.Close()

		if pixelColor == "" {
			color, st := disp.ReadPixel(x, y)
			if st != picaso.StatusOK {
				cobra.CheckErr(fmt.Errorf("failed to read pixel: %s", disp.LastError()))
			}
			fmt.Printf("%04X\n", color)
			return
		}

		color, err := strconv.ParseUint(pixelColor, 16, 16)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("invalid color %q (expect 4 hex digits): %w", pixelColor, err))
		}
		if disp.WritePixel(x, y, uint16(color)) != picaso.StatusOK {
			cobra.CheckErr(fmt.Errorf("failed to write pixel: %s", disp.LastError()))
		}
	},
}

func init() {
	pixelCmd.Flags().StringVar(&pixelColor, "color", "", "RGB565 color as 4 hex digits; omit to read the pixel")
	rootCmd.AddCommand(pixelCmd)
}
