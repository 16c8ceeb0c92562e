package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/fmcg-atlas/pkg/services/config"
)

// RegistryFunc opens the profiles file selected by the global flags.
type RegistryFunc func() (config.Registry, error)

type ProfilesCmd struct {
	registry RegistryFunc
}

func NewProfilesCmd(registry RegistryFunc) *cobra.Command {
	pc := &ProfilesCmd{registry: registry}
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the report source profiles",
		Args:  cobra.NoArgs,
		// Listing profiles needs no report source.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE:              pc.run,
	}
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, _ []string) error {
	registry, err := pc.registry()
	if err != nil {
		return err
	}

	profiles, err := registry.GetProfiles(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(profiles) == 0 {
		_, err = fmt.Fprintln(out, "No profiles found")
		return err
	}
	for _, name := range profiles {
		if _, err := fmt.Fprintln(out, name); err != nil {
			return err
		}
	}
	return nil
}
