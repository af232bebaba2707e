// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"workshed/internal/buildctx"
	"workshed/internal/diag"
	"workshed/internal/discovery"
	"workshed/internal/workspace"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <group:name:version[:classifier[:type]]> [dir]",
	Short: "Dry-run artifact resolution against the workspace",
	Long: `Resolve a single artifact coordinate against the workspace's own build
outputs, exactly as the embedded resolver would during a build. Prints the
resolved filesystem path, or a diagnostic explaining why the query would be
deferred to the regular repository resolver.

The packaging type defaults to "lib".`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	query, err := parseCoords(args[0])
	if err != nil {
		return err
	}

	dir := "."
	if len(args) == 2 {
		dir = args[1]
	}

	registry, err := discovery.New(dir).Scan()
	if err != nil {
		return err
	}

	probe := workspace.NewLocalCacheProbe(buildctx.NewProvider(buildctx.Options{CacheRoot: cacheDir}))
	locator := workspace.NewLocator(registry, probe)

	path, reason := locator.Explain(query)
	if reason == workspace.Resolved {
		cmd.Println(SuccessStyle.Render("resolved: ") + PathStyle.Render(path))
		return nil
	}

	cmd.Println(WarningStyle.Render("not handled by workspace: ") + reason.String())
	if d := diag.Get(diagnosticFor(reason)); d != nil {
		if rendered, err := d.Render("dark"); err == nil {
			cmd.Println(rendered)
		} else {
			cmd.Println(string(d.MarkdownMsg()))
		}
	}
	return nil
}

// parseCoords splits a group:name:version[:classifier[:type]] coordinate.
func parseCoords(s string) (workspace.Query, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 || len(parts) > 5 {
		return workspace.Query{}, fmt.Errorf("invalid coordinate %q: expected group:name:version[:classifier[:type]]", s)
	}
	if parts[0] == "" || parts[1] == "" {
		return workspace.Query{}, fmt.Errorf("invalid coordinate %q: group and name must not be empty", s)
	}

	query := workspace.Query{
		Group:   parts[0],
		Name:    parts[1],
		Version: parts[2],
		Type:    workspace.TypeLib,
	}
	if len(parts) >= 4 {
		query.Classifier = parts[3]
	}
	if len(parts) == 5 {
		if parts[4] == "" {
			return workspace.Query{}, fmt.Errorf("invalid coordinate %q: packaging type must not be empty", s)
		}
		query.Type = parts[4]
	}
	return query, nil
}

func diagnosticFor(reason workspace.Reason) diag.Id {
	switch reason {
	case workspace.UnknownModule:
		return diag.UnknownModuleId
	case workspace.VersionMismatch:
		return diag.VersionMismatchId
	case workspace.ClassifierMismatch:
		return diag.ClassifierMismatchId
	case workspace.UnsupportedType:
		return diag.UnsupportedTypeId
	default:
		return diag.NotBuiltId
	}
}
