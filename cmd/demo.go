package cmd

import (
	"fmt"
	"time"

	"github.com/sergev/uoled/images"
	"github.com/sergev/uoled/picaso"
	"github.com/spf13/cobra"
)

// check aborts the demo on any status other than success.
func check(disp *picaso.Display, step string, st picaso.Status) {
	if st != picaso.StatusOK {
		disp.Close()
		cobra.CheckErr(fmt.Errorf("%s failed (%s): %s", step, st, disp.LastError()))
	}
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a short graphics demo",
	Long:  "Exercise the drawing primitives: shapes, text and an embedded icon.",
	Run: func(cmd *cobra.Command, args []string) {
		disp := openDisplay()
		defer disp.Close()

		info, st := disp.Version(false)
		check(disp, "version", st)
		w := uint16(info.HRes)
		h := uint16(info.VRes)
		if w == 0 || h == 0 {
			// Unknown resolution code; assume the smallest panel.
			w, h = 96, 64
		}

		check(disp, "clear", disp.Clear())
		check(disp, "pen size", disp.PenSize(0))

		check(disp, "rectangle", disp.Rectangle(0, 0, w-1, h-1, picaso.Blue))
		check(disp, "circle", disp.Circle(w/2, h/2, h/4, picaso.Red))
		check(disp, "triangle", disp.Triangle(w/2, 4, 4, h-5, w-5, h-5, picaso.Green))
		check(disp, "line", disp.Line(0, 0, w-1, h-1, picaso.Yellow))

		xs := []uint16{w / 4, w / 2, 3 * w / 4, w / 2}
		ys := []uint16{h / 2, h / 4, h / 2, 3 * h / 4}
		check(disp, "polygon", disp.Polygon(xs, ys, picaso.Cyan))

		check(disp, "font", disp.SetFont(picaso.Font5x7))
		check(disp, "opacity", disp.SetOpacity(0))
		check(disp, "text", disp.ShowString(1, 1, picaso.Font5x7, picaso.White, "uoled demo"))

		time.Sleep(2 * time.Second)
		check(disp, "clear", disp.Clear())

		icon, err := images.GetImage(images.GradientName)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("failed to load embedded icon: %w", err))
		}
		var ix, iy uint16
		if w > images.GradientWidth {
			ix = (w - images.GradientWidth) / 2
		}
		if h > images.GradientHeight {
			iy = (h - images.GradientHeight) / 2
		}
		check(disp, "icon", disp.DrawIcon(ix, iy,
			images.GradientWidth, images.GradientHeight, picaso.Color16Bit, icon))

		time.Sleep(2 * time.Second)
		fmt.Println("Demo finished")
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
