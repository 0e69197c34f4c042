package main

import (
	"fmt"
	"runtime"

	"github.com/aussiebroadwan/habits/internal/habits/app"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("habits %s ", color.CyanString(app.BuildVersion))
		fmt.Printf("(%s %s/%s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
