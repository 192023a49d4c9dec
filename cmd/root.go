package cmd

import (
	"fmt"
	"os"

	"github.com/BlazeZheng/simple-nas-music-player/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nas-music-player",
	Short: "Simple NAS music player backend.",
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
