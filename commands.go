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
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/pflag"
)

// BuiltinCommands returns the console's standard command set in
// registration order.
func BuiltinCommands() []*Command {
	return []*Command{
		helpCommand(),
		guideCommand(),
		echoCommand(),
		historyCommand(),
		copyCommand(),
		shCommand(),
		settingsCommand(),
		versionCommand(),
		clearCommand(),
		exitCommand("exit"),
		exitCommand("quit"),
	}
}

// NewConsoleRegistry builds the registry every console run starts from.
func NewConsoleRegistry() *Registry {
	return NewRegistry(BuiltinCommands()...)
}

func helpCommand() *Command {
	return &Command{
		Name:     "help",
		Abstract: "List available commands, or show detailed help for one command",
		Usage:    "help [command]",
		Description: "Without arguments, help prints the catalogue of available commands.\n" +
			"With a command name, it prints that command's description, usage, and flags.",
		Run: func(s *Session, flags *pflag.FlagSet, args []string) error {
			if len(args) == 0 {
				s.Printf("%s", s.Registry.Summary(s.Columns))
				return nil
			}

			name := args[0]
			detail, ok := CachedDetail(s.HelpCache, s.Registry, name, s.Columns)
			if !ok {
				return &UnknownCommandError{Name: name}
			}
			s.Printf("%s", detail)
			return nil
		},
	}
}

func guideCommand() *Command {
	return &Command{
		Name:     "guide",
		Abstract: "Open the full console guide",
		Run: func(s *Session, flags *pflag.FlagSet, args []string) error {
			s.Printf("%s\n", s.RenderMarkdown(guideMarkdown()))
			return nil
		},
	}
}

func echoCommand() *Command {
	return &Command{
		Name:     "echo",
		Abstract: "Print its arguments, separated by single spaces",
		Usage:    "echo [-n] [text ...]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("echo", pflag.ContinueOnError)
			fs.BoolP("no-newline", "n", false, "suppress the trailing newline")
			return fs
		},
		Run: func(s *Session, flags *pflag.FlagSet, args []string) error {
			s.Printf("%s", strings.Join(args, " "))
			if noNewline, _ := flags.GetBool("no-newline"); !noNewline {
				s.Printf("\n")
			}
			return nil
		},
	}
}

func historyCommand() *Command {
	return &Command{
		Name:     "history",
		Abstract: "List past inputs ranked by frequency and recency, optionally filtered by prefix",
		Usage:    "history [--limit N] [prefix]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("history", pflag.ContinueOnError)
			fs.Int("limit", 0, "maximum entries to list (0 uses the configured limit)")
			return fs
		},
		Run: func(s *Session, flags *pflag.FlagSet, args []string) error {
			if s.Index == nil {
				s.Printf("history is disabled\n")
				return nil
			}

			prefix := ""
			if len(args) > 0 {
				prefix = args[0]
			}

			limit, _ := flags.GetInt("limit")
			if limit <= 0 && s.Config != nil {
				limit = s.Config.History.Limit
			}

			ranked := s.Index.Rank(prefix, limit)
			if len(ranked) == 0 {
				s.Printf("no matching history\n")
				return nil
			}
			for _, entry := range ranked {
				s.Printf("%5d  %s\n", entry.Metadata.Frequency, entry.Line)
			}
			return nil
		},
	}
}

func copyCommand() *Command {
	return &Command{
		Name:     "copy",
		Abstract: "Copy the previous command's output to the clipboard",
		Run: func(s *Session, flags *pflag.FlagSet, args []string) error {
			if s.LastOutput == "" {
				s.Printf("nothing to copy yet\n")
				return nil
			}
			if err := clipboard.WriteAll(s.LastOutput); err != nil {
				return fmt.Errorf("clipboard: %v", err)
			}
			s.Printf("📋 Copied previous output to clipboard.\n")
			return nil
		},
	}
}

func shCommand() *Command {
	return &Command{
		Name:     "sh",
		Abstract: "Run a command line in your shell, inside a pseudo-terminal",
		Usage:    "sh <command> [args ...]",
		Run: func(s *Session, flags *pflag.FlagSet, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("sh: command required")
			}
			return execInPTY(strings.Join(args, " "), s.Out)
		},
	}
}

func settingsCommand() *Command {
	return &Command{
		Name:     "settings",
		Abstract: "Show the active configuration",
		Run: func(s *Session, flags *pflag.FlagSet, args []string) error {
			displaySettings(s.Out)
			return nil
		},
	}
}

func versionCommand() *Command {
	return &Command{
		Name:     "version",
		Abstract: "Print the console version",
		Run: func(s *Session, flags *pflag.FlagSet, args []string) error {
			s.Printf("%s\n", version)
			return nil
		},
	}
}

func clearCommand() *Command {
	return &Command{
		Name:     "clear",
		Abstract: "Clear the console screen",
		Run: func(s *Session, flags *pflag.FlagSet, args []string) error {
			s.Clear()
			return nil
		},
	}
}

func exitCommand(name string) *Command {
	return &Command{
		Name:     name,
		Abstract: "Leave the console",
		Run: func(s *Session, flags *pflag.FlagSet, args []string) error {
			s.Quit()
			return nil
		},
	}
}
