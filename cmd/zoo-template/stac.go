package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZOO-Project/zoo-template-common/pkg/stacio"
)

var stacCmd = &cobra.Command{
	Use:   "stac",
	Short: "Read and copy STAC documents by location",
}

var stacCatCmd = &cobra.Command{
	Use:   "cat <location>",
	Short: "Print the document at a location (s3://bucket/key or local path)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		io, err := stacio.New(stacio.CredentialsFromEnv())
		if err != nil {
			return err
		}
		text, err := io.ReadText(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

var stacCpCmd = &cobra.Command{
	Use:   "cp <src> <dst>",
	Short: "Copy a document between locations",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		io, err := stacio.New(stacio.CredentialsFromEnv(), stacio.WithRemoteWrite())
		if err != nil {
			return err
		}
		text, err := io.ReadText(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return io.WriteText(cmd.Context(), args[1], text)
	},
}

func init() {
	stacCmd.AddCommand(stacCatCmd)
	stacCmd.AddCommand(stacCpCmd)
	rootCmd.AddCommand(stacCmd)
}
