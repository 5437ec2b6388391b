package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ZOO-Project/zoo-template-common/pkg/handler"
	"github.com/ZOO-Project/zoo-template-common/pkg/types"
)

var secretsCmd = &cobra.Command{
	Use:   "secrets",
	Short: "Print the merged processing secrets",
	Long: `Loads the processing secrets from the candidate files in merge
order (later files win) and prints the merged mapping as YAML. Missing
files are skipped; with no file present the output is an empty mapping.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h := handler.New(types.Conf{}, nil)
		secrets, err := h.Secrets()
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(secrets)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(secretsCmd)
}
