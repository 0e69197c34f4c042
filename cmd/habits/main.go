package main

import (
	"fmt"
	"os"

	_ "time/tzdata" // APP_TIMEZONE must resolve in minimal images
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
