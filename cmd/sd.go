package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sergev/uoled/picaso"
	"github.com/spf13/cobra"
)

var sdCmd = &cobra.Command{
	Use:   "sd",
	Short: "Work with the storage card of the display",
	Long:  "Work with the FAT filesystem on the storage card attached to the display.",
}

// openCard connects to the display and initializes the storage card.
func openCard() *picaso.Display {
	disp := openDisplay()
	if disp.SDInit() != picaso.StatusOK {
		err := fmt.Errorf("failed to initialize the storage card: %s", disp.LastError())
		disp.Close()
		cobra.CheckErr(err)
	}
	return disp
}

var sdDirCmd = &cobra.Command{
	Use:   "dir [PATTERN]",
	Short: "List files on the storage card",
	Long:  "List files on the storage card matching a wildcard pattern (default *.*).",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pattern := "*.*"
		if len(args) > 0 {
			pattern = args[0]
		}

		disp := openCard()
		defer disp.Close()

		entries, st := disp.SDListDir(pattern)
		switch st {
		case picaso.StatusOK:
		case picaso.StatusNACK:
			fmt.Println("No matching files")
			return
		default:
			cobra.CheckErr(fmt.Errorf("failed to list directory: %s", disp.LastError()))
		}
		for _, name := range entries {
			fmt.Println(name)
		}
	},
}

var sdGetCmd = &cobra.Command{
	Use:   "get FILE [LOCAL]",
	Short: "Copy a file from the storage card",
	Long:  "Copy a file from the storage card to the local filesystem.",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		local := args[0]
		if len(args) > 1 {
			local = args[1]
		}

		disp := openCard()
		defer disp.Close()

		data, st := disp.SDReadFile(args[0])
		switch st {
		case picaso.StatusOK:
		case picaso.StatusNACK:
			cobra.CheckErr(fmt.Errorf("file %s not found on the card", args[0]))
		default:
			cobra.CheckErr(fmt.Errorf("failed to read %s: %s", args[0], disp.LastError()))
		}

		if err := os.WriteFile(local, data, 0644); err != nil {
			cobra.CheckErr(fmt.Errorf("failed to write %s: %w", local, err))
		}
		fmt.Printf("Copied %s to %s (%d bytes)\n", args[0], local, len(data))
	},
}

var sdAppend bool

var sdPutCmd = &cobra.Command{
	Use:   "put LOCAL [FILE]",
	Short: "Copy a file to the storage card",
	Long:  "Copy a local file to the storage card. The card name defaults to the local base name.",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		name := filepath.Base(args[0])
		if len(args) > 1 {
			name = args[1]
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			cobra.CheckErr(fmt.Errorf("failed to read %s: %w", args[0], err))
		}

		disp := openCard()
		defer disp.Close()

		switch st := disp.SDWriteFile(name, data, sdAppend); st {
		case picaso.StatusOK:
		case picaso.StatusNACK:
			cobra.CheckErr(fmt.Errorf("card refused to write %s (full or write-protected?)", name))
		default:
			cobra.CheckErr(fmt.Errorf("failed to write %s: %s", name, disp.LastError()))
		}
		fmt.Printf("Copied %s to %s (%d bytes)\n", args[0], name, len(data))
	},
}

var sdRmCmd = &cobra.Command{
	Use:   "rm FILE",
	Short: "Delete a file from the storage card",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		disp := openCard()
		defer disp.Close()

		switch st := disp.SDEraseFile(args[0]); st {
		case picaso.StatusOK:
		case picaso.StatusNACK:
			cobra.CheckErr(fmt.Errorf("file %s not found on the card", args[0]))
		default:
			cobra.CheckErr(fmt.Errorf("failed to erase %s: %s", args[0], disp.LastError()))
		}
	},
}

var sdPlayOption int

var sdPlayCmd = &cobra.Command{
	Use:   "play FILE",
	Short: "Play a WAV file from the storage card",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if sdPlayOption < 0 || sdPlayOption > picaso.AudioStop {
			cobra.CheckErr(fmt.Errorf("invalid option %d; valid range is 0..5", sdPlayOption))
		}

		disp := openCard()
		defer disp.Close()

		if disp.SDPlayAudio(args[0], byte(sdPlayOption)) != picaso.StatusOK {
			cobra.CheckErr(fmt.Errorf("failed to play %s: %s", args[0], disp.LastError()))
		}
	},
}

var sdRunCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Run a 4DSL script from the storage card",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		disp := openCard()
		defer disp.Close()

		if disp.SDRunScriptFile(args[0]) != picaso.StatusOK {
			cobra.CheckErr(fmt.Errorf("failed to run %s: %s", args[0], disp.LastError()))
		}
	},
}

func init() {
	sdPutCmd.Flags().BoolVar(&sdAppend, "append", false, "append to the card file instead of replacing it")
	sdPlayCmd.Flags().IntVar(&sdPlayOption, "option", picaso.AudioPlayOnce, "playback option (0..5)")
	sdCmd.AddCommand(sdDirCmd, sdGetCmd, sdPutCmd, sdRmCmd, sdPlayCmd, sdRunCmd)
	rootCmd.AddCommand(sdCmd)
}
