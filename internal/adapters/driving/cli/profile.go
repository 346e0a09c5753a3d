package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Govern the Base's AI-maintained profiles",
	Long: `Read, audit, export, delete and regenerate the Base's profiles.

Profile types: user, work, writing, knowledge.

Every mutation is recorded in a hash-chained history, so a deleted
profile can always be rebuilt with 'refbase profile regenerate'.`,
}

var profileShowCmd = &cobra.Command{
	Use:   "show <type>",
	Short: "Show a profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileShow,
}

var profileAuditCmd = &cobra.Command{
	Use:   "audit <type>",
	Short: "List a profile's change history",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileAudit,
}

var profileExportCmd = &cobra.Command{
	Use:   "export <type>",
	Short: "Export a profile as a zip archive",
	Long: `Bundles the profile artifacts into a zip archive.

The destination may be a .zip path, a directory, or omitted for the
default exports directory. Only one export can run at a time.`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileExport,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <type>",
	Short: "Delete a profile's artifacts",
	Long: `Removes the profile's stored artifacts after confirmation.

The history survives: the profile remains reconstructable with
'refbase profile regenerate'. Confirmation requires typing the exact
phrase DELETE {slug}, or passing it via --confirm.`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileDelete,
}

var profileScopeCmd = &cobra.Command{
	Use:   "scope <type>",
	Short: "Show or change a profile's scope",
	Long: `Without flags, prints the current scope setting.

With --mode, updates it. Modes:
  this_base  - visible to this Base only (default)
  shared     - visible to the Bases named via --allow
  disabled   - profile reads fail until re-enabled

With --check-base, reports whether the named Base may read the
profile under the current setting.`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileScope,
}

var profileRegenerateCmd = &cobra.Command{
	Use:   "regenerate <type>",
	Short: "Rebuild a profile's artifacts",
	Long: `Rebuilds the profile artifacts by replaying the Base's recorded
snapshot history. With --from-archive, restores from an export archive
instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileRegenerate,
}

func init() {
	profileExportCmd.Flags().StringP("output", "o", "", "destination .zip path or directory")
	profileExportCmd.Flags().Bool("include-history", false, "embed the audit history in the archive")

	profileDeleteCmd.Flags().String("confirm", "", "confirmation phrase (skips the interactive prompt)")

	profileScopeCmd.Flags().String("mode", "", "new scope mode: this_base, shared or disabled")
	profileScopeCmd.Flags().StringSlice("allow", nil, "Base slug allowed under shared mode, repeatable")
	profileScopeCmd.Flags().String("check-base", "", "report whether the named Base may read this profile")

	profileRegenerateCmd.Flags().String("from-archive", "", "path to an export archive to restore from")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileAuditCmd)
	profileCmd.AddCommand(profileExportCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	profileCmd.AddCommand(profileScopeCmd)
	profileCmd.AddCommand(profileRegenerateCmd)
	rootCmd.AddCommand(profileCmd)
}

// parseProfileType validates a profile type argument.
func parseProfileType(arg string) (domain.ProfileType, error) {
	t := domain.ProfileType(strings.ToLower(strings.TrimSpace(arg)))
	if !t.IsValid() {
		return "", fmt.Errorf("unknown profile type %q (want user, work, writing or knowledge)", arg)
	}
	return t, nil
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	t, err := parseProfileType(args[0])
	if err != nil {
		return err
	}

	profile, err := profileService.Get(cmd.Context(), t)
	if err != nil {
		if errors.Is(err, domain.ErrScopeDisabled) {
			return fmt.Errorf("the %s profile is disabled; re-enable it with 'refbase profile scope %s --mode this_base'", t, t)
		}
		return fmt.Errorf("loading %s profile: %w", t, err)
	}

	meta := profile.Metadata()
	cmd.Printf("%s profile\n", profile.Type().Label())
	cmd.Printf("  ID:           %s\n", meta.ID)
	cmd.Printf("  Scope:        %s\n", meta.Scope)
	cmd.Printf("  Last updated: %s\n", meta.LastUpdated.Format("2006-01-02 15:04:05 MST"))

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s profile: %w", t, err)
	}
	cmd.Println(string(data))

	return nil
}

func runProfileAudit(cmd *cobra.Command, args []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	t, err := parseProfileType(args[0])
	if err != nil {
		return err
	}

	audit, err := profileService.Audit(cmd.Context(), t)
	if err != nil {
		return fmt.Errorf("auditing %s profile: %w", t, err)
	}

	if len(audit.Entries) == 0 {
		cmd.Printf("No recorded changes for the %s profile.\n", t)
		return nil
	}

	cmd.Printf("%d changes to the %s profile\n\n", len(audit.Entries), t)
	for i := range audit.Entries {
		e := &audit.Entries[i]
		cmd.Printf("%s  %-12s %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.ChangeKind, e.EventID)
		for _, line := range e.DiffSummary {
			cmd.Printf("    %s\n", line)
		}
		if e.HashAfter != "" {
			cmd.Printf("    hash %s\n", shortHash(e.HashAfter))
		}
	}

	return nil
}

func runProfileExport(cmd *cobra.Command, args []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	t, err := parseProfileType(args[0])
	if err != nil {
		return err
	}

	//nolint:errcheck // flags are defined in init
	output, _ := cmd.Flags().GetString("output")
	includeHistory, _ := cmd.Flags().GetBool("include-history")

	result, err := profileService.Export(cmd.Context(), t, output, includeHistory)
	if err != nil {
		if errors.Is(err, domain.ErrExportInProgress) {
			return errors.New("another export is running; try again shortly")
		}
		return fmt.Errorf("exporting %s profile: %w", t, err)
	}

	cmd.Printf("Exported %s profile to %s\n", t, result.ArchivePath)
	cmd.Printf("Archive hash: %s\n", result.Hash)
	return nil
}

func runProfileDelete(cmd *cobra.Command, args []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	t, err := parseProfileType(args[0])
	if err != nil {
		return err
	}

	confirm, _ := cmd.Flags().GetString("confirm") //nolint:errcheck // flag is defined in init
	if confirm == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("no terminal for the confirmation prompt; pass --confirm \"DELETE %s\"", t.Slug())
		}
		cmd.Printf("This removes the %s profile's artifacts. History survives and the\n", t)
		cmd.Println("profile can be rebuilt with 'refbase profile regenerate'.")
		cmd.Printf("Type 'DELETE %s' to confirm: ", t.Slug())
		confirm = readLine(bufio.NewReader(os.Stdin))
	}

	result, err := profileService.Delete(cmd.Context(), t, confirm)
	if err != nil {
		if errors.Is(err, domain.ErrConfirmPhrase) {
			return fmt.Errorf("confirmation phrase did not match 'DELETE %s'; nothing deleted", t.Slug())
		}
		return fmt.Errorf("deleting %s profile: %w", t, err)
	}

	if len(result.FilesRemoved) == 0 {
		cmd.Printf("No stored artifacts for the %s profile.\n", t)
		return nil
	}

	cmd.Printf("Deleted %d artifacts:\n", len(result.FilesRemoved))
	for _, path := range result.FilesRemoved {
		cmd.Printf("  %s\n", path)
	}
	cmd.Println("History preserved. Rebuild any time with 'refbase profile regenerate'.")
	return nil
}

func runProfileScope(cmd *cobra.Command, args []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	t, err := parseProfileType(args[0])
	if err != nil {
		return err
	}

	//nolint:errcheck // flags are defined in init
	mode, _ := cmd.Flags().GetString("mode")
	allowed, _ := cmd.Flags().GetStringSlice("allow")
	checkBase, _ := cmd.Flags().GetString("check-base")

	if mode == "" {
		setting, err := profileService.ScopeStatus(cmd.Context(), t)
		if err != nil {
			return fmt.Errorf("reading %s scope: %w", t, err)
		}
		printScope(cmd, setting)
		if checkBase != "" {
			printScopeCheck(cmd, setting, checkBase)
		}
		return nil
	}

	status, err := profileService.UpdateScope(cmd.Context(), t, domain.ScopeMode(mode), allowed)
	if err != nil {
		return fmt.Errorf("updating %s scope: %w", t, err)
	}

	cmd.Println("Scope updated.")
	printScope(cmd, status.Setting)
	return nil
}

func printScope(cmd *cobra.Command, setting domain.ScopeSetting) {
	cmd.Printf("%s profile scope: %s\n", setting.ProfileType, setting.ScopeMode)
	if setting.ScopeMode == domain.ScopeShared {
		if len(setting.AllowedBases) == 0 {
			cmd.Println("  Allowed bases: (none)")
		} else {
			cmd.Printf("  Allowed bases: %s\n", strings.Join(setting.AllowedBases, ", "))
		}
	}
}

// printScopeCheck reports whether a Base may read the profile. The
// owner slug is this Base's own slug; under this_base mode only the
// owner itself passes.
func printScopeCheck(cmd *cobra.Command, setting domain.ScopeSetting, targetSlug string) {
	var ownerSlug string
	if settingsService != nil {
		ownerSlug = settingsService.BaseSlug()
	}
	if domain.ScopeAllowsTarget(&setting, ownerSlug, targetSlug) {
		cmd.Printf("Base %q may read this profile.\n", targetSlug)
	} else {
		cmd.Printf("Base %q may not read this profile.\n", targetSlug)
	}
}

func runProfileRegenerate(cmd *cobra.Command, args []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	t, err := parseProfileType(args[0])
	if err != nil {
		return err
	}

	archivePath, _ := cmd.Flags().GetString("from-archive") //nolint:errcheck // flag is defined in init

	var outcome *domain.ProfileRegenerateOutcome
	if archivePath != "" {
		outcome, err = profileService.RegenerateFromArchive(cmd.Context(), t, archivePath)
	} else {
		outcome, err = profileService.RegenerateFromHistory(cmd.Context(), t)
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoHistory):
			return fmt.Errorf("no replayable history for the %s profile", t)
		case errors.Is(err, domain.ErrCorruptArchive):
			return fmt.Errorf("archive %s is corrupt or missing its profile entry", archivePath)
		}
		return fmt.Errorf("regenerating %s profile: %w", t, err)
	}

	cmd.Printf("Regenerated %s profile from %d events.\n", t, outcome.ReplayedEvents)
	cmd.Printf("Artifact hash: %s\n", shortHash(outcome.HashAfter))
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func shortHash(hash string) string {
	if len(hash) <= 12 {
		return hash
	}
	return hash[:12]
}
