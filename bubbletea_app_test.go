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
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func enterLine(t *testing.T, model Model, line string) Model {
	t.Helper()
	model.textInput.SetValue(line)
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T; want Model", updated)
	}
	return next
}

// bubbletea copies the Model on every Update, so dispatching must keep
// working across successive copies of the model.
func TestConsoleModelHandlesSequentialCommands(t *testing.T) {
	session, _ := newTestSession()
	model := InitialModel(session)

	model = enterLine(t, model, "echo one")
	model = enterLine(t, model, "echo two")

	got := model.transcript.String()
	for _, want := range []string{"echo one", "one\n", "echo two", "two\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("transcript missing %q after two commands:\n%s", want, got)
		}
	}
}

func TestConsoleModelClearResetsTranscript(t *testing.T) {
	session, _ := newTestSession()
	model := InitialModel(session)

	model = enterLine(t, model, "echo before")
	model = enterLine(t, model, "clear")

	got := model.transcript.String()
	if strings.Contains(got, "before") {
		t.Errorf("transcript still holds output after clear:\n%s", got)
	}
}

func TestConsoleModelQuitsOnExitCommand(t *testing.T) {
	session, _ := newTestSession()
	model := InitialModel(session)

	model.textInput.SetValue("exit")
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Update(exit) returned no command; want tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("Update(exit) command produced %T; want tea.QuitMsg", cmd())
	}
}

func TestConsoleModelRendersDispatchFailures(t *testing.T) {
	session, _ := newTestSession()
	model := InitialModel(session)

	model = enterLine(t, model, "hepl")

	got := model.transcript.String()
	if !strings.Contains(got, "No such command: hepl") {
		t.Errorf("transcript missing classification:\n%s", got)
	}
	if !strings.Contains(got, `Did you mean "help"?`) {
		t.Errorf("transcript missing near-match hint:\n%s", got)
	}
}
