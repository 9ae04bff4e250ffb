package cmd

import (
	"github.com/spf13/cobra"

	"github.com/benoctopus/quartertime/internal/config"
)

// completeActivities returns the configured activity names for completion
// of label arguments.
func completeActivities(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var names []string
	for _, a := range cfg.Activities {
		names = append(names, a.Name)
	}

	return names, cobra.ShellCompDirectiveNoFileComp
}
