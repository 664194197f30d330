package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
)

// Command is one devtool subcommand.
type Command struct {
	Name    string
	Summary string
	Run     func(args []string) error
}

// Registry is the subcommand table.
type Registry struct {
	byName map[string]Command
}

// NewRegistry builds the table. Later registrations with the same name
// win, which tests use to stub commands.
func NewRegistry(cmds ...Command) *Registry {
	r := &Registry{byName: make(map[string]Command, len(cmds))}
	for _, cmd := range cmds {
		r.byName[cmd.Name] = cmd
	}
	return r
}

// Lookup finds a subcommand by name.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.byName[name]
	return cmd, ok
}

// Usage writes the help text, subcommands sorted by name.
func (r *Registry) Usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: devtool <command> [args...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available Commands:")

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(tw, "  %s\t%s\n", name, r.byName[name].Summary)
	}
	tw.Flush()
}
