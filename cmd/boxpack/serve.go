package main

import (
	"github.com/piwi3910/BoxPack/internal/project"
	"github.com/piwi3910/BoxPack/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the packing API over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := project.LoadInventory(project.DefaultInventoryPath())
		if err != nil {
			return err
		}
		addr := appConfig.ServerAddr
		if cmd.Flags().Changed("addr") || addr == "" {
			addr = serveAddr
		}
		return server.New(inv, logger).Run(addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}
