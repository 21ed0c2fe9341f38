// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// Command describes one named console command: the dispatch key, the
// one-line abstract shown in the summary listing, and the typed
// argument-binding capability backed by a pflag FlagSet. Commands are
// immutable after registration.
type Command struct {
	// Name is the first token users type to invoke the command.
	Name string

	// Abstract is the one-line description shown in the command catalogue.
	Abstract string

	// Usage is the synopsis shown in detailed help, without the leading
	// command name (e.g. "echo [-n] [text ...]"). When empty, a synopsis
	// is synthesized from Name.
	Usage string

	// Description is the long help body. Falls back to Abstract when empty.
	Description string

	// Flags returns a fresh, configured FlagSet for one binding attempt.
	// Called lazily on every Bind so repeated invocations never see stale
	// flag values. nil means the command takes no flags.
	Flags func() *pflag.FlagSet

	// Run executes the command. The parsed FlagSet and the positional
	// arguments left over after flag parsing arrive separately; commands
	// that need no session state ignore the session.
	Run func(session *Session, flags *pflag.FlagSet, args []string) error
}

// Invocation is a fully bound, ready-to-execute command. Resolution
// produces it; the caller decides when (and whether) to execute.
type Invocation struct {
	Command *Command
	Flags   *pflag.FlagSet
	Args    []string
}

// Execute runs the bound command against the given session.
func (inv *Invocation) Execute(session *Session) error {
	return inv.Command.Run(session, inv.Flags, inv.Args)
}

// Bind parses the argument tokens through the command's FlagSet and
// returns the bound invocation. The FlagSet's own output is discarded;
// parse failures come back as error values for the dispatcher to wrap.
func (c *Command) Bind(args []string) (*Invocation, error) {
	flagSet := c.newFlagSet()
	flagSet.SetOutput(io.Discard)

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}

	return &Invocation{
		Command: c,
		Flags:   flagSet,
		Args:    flagSet.Args(),
	}, nil
}

func (c *Command) newFlagSet() *pflag.FlagSet {
	if c.Flags != nil {
		return c.Flags()
	}
	return pflag.NewFlagSet(c.Name, pflag.ContinueOnError)
}

// Synopsis returns the usage line for the command, synthesizing one from
// the name when Usage is not set.
func (c *Command) Synopsis() string {
	if c.Usage != "" {
		return c.Usage
	}
	if c.Flags != nil {
		return c.Name + " [flags]"
	}
	return c.Name
}

// RenderHelp produces the detailed help text for the command: description,
// synopsis, and flag usage wrapped to the given column width. columns <= 0
// means unbounded.
func (c *Command) RenderHelp(columns int) string {
	var b strings.Builder

	description := c.Description
	if description == "" {
		description = c.Abstract
	}
	if description != "" {
		fmt.Fprintf(&b, "%s\n\n", description)
	}

	fmt.Fprintf(&b, "Usage:\n  %s\n", c.Synopsis())

	if c.Flags != nil {
		flagSet := c.Flags()
		var usages string
		if columns > 0 {
			usages = flagSet.FlagUsagesWrapped(columns)
		} else {
			usages = flagSet.FlagUsages()
		}
		if usages != "" {
			fmt.Fprintf(&b, "\nFlags:\n%s", usages)
		}
	}

	return b.String()
}
