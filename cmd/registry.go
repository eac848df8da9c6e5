package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"retail.GO/core/registry"
)

// commandGroups sorts `retail --help` by the prefix before ":" in a command's Use.
var commandGroups = []*cobra.Group{
	{ID: "etl", Title: "Import:"},
	{ID: "db", Title: "Database:"},
	{ID: "cron", Title: "Scheduler:"},
}

// Register adds a command. Call from init() in custom packages. Panics if registry is locked
// or a command with the same name is already registered.
func Register(c *cobra.Command) {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		panic("cmd/registry: locked (register only during init before Apply)")
	}
	list := registered()
	for _, existing := range list {
		if existing.Name() == c.Name() {
			panic("cmd/registry: duplicate command " + c.Name())
		}
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCmd, append(list, c))
}

func registered() []*cobra.Command {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCmd); ok && v != nil {
		return v.([]*cobra.Command)
	}
	return nil
}

// Apply adds registered commands to root and files every root command under its group.
// Locks the cmd registry; later calls are no-ops.
func Apply() {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		return
	}
	rootCmd.AddGroup(commandGroups...)
	rootCmd.AddCommand(registered()...)
	for _, c := range rootCmd.Commands() {
		if c.GroupID == "" {
			c.GroupID = groupFor(c.Name())
		}
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
}

// groupFor returns the group id for a "group:action" command name, or "" when ungrouped.
func groupFor(name string) string {
	prefix, _, ok := strings.Cut(name, ":")
	if !ok {
		return ""
	}
	for _, g := range commandGroups {
		if g.ID == prefix {
			return g.ID
		}
	}
	return ""
}
