// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"sort"
	"time"

	"workshed/internal/discovery"
	"workshed/internal/workspace"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

var (
	asTOML bool

	workspaceCmd = &cobra.Command{
		Use:   "workspace",
		Short: "Inspect the multi-module workspace",
	}

	workspaceShowCmd = &cobra.Command{
		Use:   "show [dir]",
		Short: "List the modules participating in the workspace",
		Long: `Scan a workspace directory tree for workmod.cue descriptors and print
the resulting registry: every module's coordinates, packaging and root
directory, plus the aggregate workspace fingerprint and last-modified time.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWorkspaceShow,
	}
)

type (
	// moduleSnapshot is the exported form of one registered module.
	moduleSnapshot struct {
		Group     string `toml:"group"`
		Name      string `toml:"name"`
		Version   string `toml:"version"`
		Packaging string `toml:"packaging"`
		Dir       string `toml:"dir"`
	}

	// workspaceSnapshot is the exported form of the whole registry.
	workspaceSnapshot struct {
		Fingerprint     string           `toml:"fingerprint"`
		LastModified    time.Time        `toml:"last_modified"`
		ResolvedVersion string           `toml:"resolved_version,omitempty"`
		Modules         []moduleSnapshot `toml:"modules"`
	}
)

func init() {
	workspaceShowCmd.Flags().BoolVar(&asTOML, "toml", false, "export the workspace snapshot as TOML")
	workspaceCmd.AddCommand(workspaceShowCmd)
}

func runWorkspaceShow(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	registry, err := discovery.New(dir).Scan()
	if err != nil {
		return err
	}

	snapshot := snapshotOf(registry)
	if asTOML {
		data, err := toml.Marshal(snapshot)
		if err != nil {
			return fmt.Errorf("encoding workspace snapshot: %w", err)
		}
		cmd.Print(string(data))
		return nil
	}

	cmd.Println(TitleStyle.Render("Workspace") + SubtitleStyle.Render(fmt.Sprintf(" (%d modules)", len(snapshot.Modules))))
	for _, m := range snapshot.Modules {
		coords := fmt.Sprintf("%s:%s:%s", m.Group, m.Name, m.Version)
		cmd.Printf("  %s  %s\n", PathStyle.Render(coords), SubtitleStyle.Render("["+m.Packaging+"] "+m.Dir))
	}
	if snapshot.ResolvedVersion != "" {
		cmd.Println(SubtitleStyle.Render("resolved version: ") + snapshot.ResolvedVersion)
	}
	cmd.Println(SubtitleStyle.Render("fingerprint:      ") + snapshot.Fingerprint)
	cmd.Println(SubtitleStyle.Render("last modified:    ") + snapshot.LastModified.Format(time.RFC3339))
	return nil
}

func snapshotOf(registry *workspace.Registry) workspaceSnapshot {
	modules := registry.Modules()
	sort.Slice(modules, func(i, j int) bool {
		return modules[i].Key.String() < modules[j].Key.String()
	})

	snapshot := workspaceSnapshot{
		Fingerprint:     fmt.Sprintf("%016x", registry.Fingerprint()),
		LastModified:    registry.LastModified(),
		ResolvedVersion: registry.ResolvedVersion(),
		Modules:         make([]moduleSnapshot, 0, len(modules)),
	}
	for _, m := range modules {
		snapshot.Modules = append(snapshot.Modules, moduleSnapshot{
			Group:     m.Key.Group,
			Name:      m.Key.Name,
			Version:   m.Version,
			Packaging: m.Descriptor.EffectivePackaging(),
			Dir:       m.Dir,
		})
	}
	return snapshot
}
