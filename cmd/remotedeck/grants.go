package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/remotedeck/remotedeck/internal/domain/capabilities"
	infracaps "github.com/remotedeck/remotedeck/internal/infrastructure/capabilities"
)

var grantsCmd = &cobra.Command{
	Use:   "grants",
	Short: "Manage capability grants",
	Long: `List, add and remove the capabilities controls may use on this host.
Grants from the config file and from the grants file are combined at
startup; add and remove only change the grants file.`,
}

var grantsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show effective grants",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rc, err := loadRuntimeConfig()
		if err != nil {
			return err
		}
		stored, err := infracaps.NewGrantStore(rc.GrantsPath).Load()
		if err != nil {
			return err
		}
		listGrants(cmd.OutOrStdout(), rc.Grant, stored)
		return nil
	},
}

var grantsAddCmd = &cobra.Command{
	Use:   "add <kind[:pattern]>...",
	Short: "Grant capabilities",
	Example: `  remotedeck grants add media midi
  remotedeck grants add exec:obs network:*.twitch.tv`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := loadRuntimeConfig()
		if err != nil {
			return err
		}
		yes, _ := cmd.Flags().GetBool("yes")
		return addGrants(cmd.OutOrStdout(), infracaps.NewGrantStore(rc.GrantsPath), args, yes, infracaps.NewTerminalPrompter())
	},
}

var grantsRemoveCmd = &cobra.Command{
	Use:   "remove <kind[:pattern]>...",
	Short: "Revoke capabilities from the grants file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := loadRuntimeConfig()
		if err != nil {
			return err
		}
		return removeGrants(cmd.OutOrStdout(), infracaps.NewGrantStore(rc.GrantsPath), args)
	},
}

func init() {
	grantsAddCmd.Flags().Bool("yes", false, "Grant broad capabilities without confirmation")

	grantsCmd.AddCommand(grantsListCmd, grantsAddCmd, grantsRemoveCmd)
	rootCmd.AddCommand(grantsCmd)
}

// grantConfirmer asks the operator about a broad grant.
type grantConfirmer interface {
	IsInteractive() bool
	ConfirmGrant(c capabilities.Capability) (bool, error)
}

//nolint:errcheck // best-effort terminal output
func listGrants(out io.Writer, configured, stored capabilities.Grant) {
	if len(configured) == 0 && len(stored) == 0 {
		fmt.Fprintln(out, "no capabilities granted")
		return
	}
	show := func(source string, grant capabilities.Grant) {
		for _, c := range grant {
			fmt.Fprintf(out, "%-8s %-24s %-6s %s\n", source, c.String(), c.RiskLevel(), infracaps.Describe(c))
		}
	}
	show("config", configured)
	show("file", stored)
}

func parseGrantArgs(args []string) (capabilities.Grant, error) {
	grant := capabilities.NewGrant()
	for _, arg := range args {
		c, ok := capabilities.Parse(arg)
		if !ok {
			return nil, fmt.Errorf("invalid capability %q: want kind or kind:pattern", arg)
		}
		grant.Add(c)
	}
	return grant, nil
}

func addGrants(out io.Writer, store *infracaps.GrantStore, args []string, yes bool, confirmer grantConfirmer) error {
	requested, err := parseGrantArgs(args)
	if err != nil {
		return err
	}

	if broad := capabilities.Grant(requested.Broad()); len(broad) > 0 && !yes {
		if !confirmer.IsInteractive() {
			return infracaps.FormatNonInteractiveError(broad, store.Path())
		}
		for _, c := range broad {
			ok, err := confirmer.ConfirmGrant(c)
			if err != nil {
				return err
			}
			if !ok {
				requested.Remove(c)
				fmt.Fprintf(out, "skipped %s\n", c)
			}
		}
	}

	grant, err := store.Load()
	if err != nil {
		return err
	}
	for _, c := range requested {
		grant.Add(c)
		fmt.Fprintf(out, "granted %s\n", c)
	}
	return store.Save(grant)
}

func removeGrants(out io.Writer, store *infracaps.GrantStore, args []string) error {
	revoked, err := parseGrantArgs(args)
	if err != nil {
		return err
	}
	grant, err := store.Load()
	if err != nil {
		return err
	}
	for _, c := range revoked {
		if !grant.Contains(c) {
			fmt.Fprintf(out, "%s is not in %s\n", c, store.Path())
			continue
		}
		grant.Remove(c)
		fmt.Fprintf(out, "revoked %s\n", c)
	}
	return store.Save(grant)
}
