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
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Focus targets within the console UI
const (
	FocusInput = iota
	FocusSuggestions
	FocusOutput
)

// Model represents the Bubble Tea application state
type Model struct {
	ready bool

	// Console components
	textInput       textinput.Model
	suggestionsList list.Model
	outputViewport  viewport.Model

	// Session carries the registry, config, history and help cache; the
	// UI is just another driver around Session.Dispatch.
	session *Session

	// State
	focusIndex  int
	suggestions []string
	lastQuery   string
	// transcript is shared by pointer: bubbletea copies the Model on
	// every Update, and a strings.Builder must not be copied once used.
	transcript *strings.Builder

	// Styling
	styles          *Styles
	glamourRenderer *glamour.TermRenderer

	// Dimensions
	width  int
	height int
}

// Styles holds all the styling for the application
type Styles struct {
	BorderFocused lipgloss.Style
	BorderBlurred lipgloss.Style
	Title         lipgloss.Style
	Prompt        lipgloss.Style
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	ErrorMessage  lipgloss.Style
	HintMessage   lipgloss.Style
}

// NewStyles creates the default styles
func NewStyles() *Styles {
	return &Styles{
		BorderFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Bold(true),
		BorderBlurred: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Padding(0, 1).
			Bold(true),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),
		HelpKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		ErrorMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		HintMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true),
	}
}

// suggestionItem represents an item in the suggestions list
type suggestionItem struct {
	line      string
	frequency int
}

func (i suggestionItem) FilterValue() string { return i.line }
func (i suggestionItem) Title() string       { return i.line }
func (i suggestionItem) Description() string {
	if i.frequency == 1 {
		return "used once"
	}
	return fmt.Sprintf("used %d times", i.frequency)
}

// InitialModel creates the initial model
func InitialModel(session *Session) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a command, 'help' for a list..."
	ti.Prompt = session.Config.Console.Prompt
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 50

	items := []list.Item{}
	suggestionsList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	suggestionsList.SetShowTitle(false)
	suggestionsList.SetShowHelp(false)

	outputViewport := viewport.New(0, 0)
	outputViewport.SetContent("Welcome to conch. Type a command and press enter.")

	glamourRenderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(72),
	)

	model := Model{
		textInput:       ti,
		suggestionsList: suggestionsList,
		outputViewport:  outputViewport,
		session:         session,
		focusIndex:      FocusInput,
		suggestions:     []string{},
		lastQuery:       "",
		transcript:      &strings.Builder{},
		styles:          NewStyles(),
		glamourRenderer: glamourRenderer,
	}

	return model
}

// Init is called when the program starts
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all the I/O
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.focusIndex != FocusInput {
				m.focusIndex = FocusInput
				m.textInput.Focus()
				return m, nil
			}
			return m, tea.Quit
		case "tab":
			m.focusIndex = (m.focusIndex + 1) % 3
			if m.focusIndex == FocusInput {
				m.textInput.Focus()
			} else {
				m.textInput.Blur()
			}
			return m, nil
		case "enter":
			if m.focusIndex == FocusInput {
				line := m.textInput.Value()
				m.textInput.SetValue("")
				m.lastQuery = ""
				m.updateSuggestions("")
				m.runLine(line)
				if m.session.Done() {
					return m, tea.Quit
				}
				return m, nil
			}
			if m.focusIndex == FocusSuggestions && len(m.suggestions) > 0 {
				selectedIndex := m.suggestionsList.Index()
				if selectedIndex >= 0 && selectedIndex < len(m.suggestions) {
					// Recall the line into the input for editing
					m.textInput.SetValue(m.suggestions[selectedIndex])
					m.textInput.CursorEnd()
					m.focusIndex = FocusInput
					m.textInput.Focus()
				}
				return m, nil
			}
		case "pgup":
			if m.focusIndex == FocusOutput {
				m.outputViewport.LineUp(m.outputViewport.Height)
				return m, nil
			}
		case "pgdown":
			if m.focusIndex == FocusOutput {
				m.outputViewport.LineDown(m.outputViewport.Height)
				return m, nil
			}
		case "home":
			if m.focusIndex == FocusOutput {
				m.outputViewport.GotoTop()
				return m, nil
			}
		case "end":
			if m.focusIndex == FocusOutput {
				m.outputViewport.GotoBottom()
				return m, nil
			}
		case "up", "down":
			if m.focusIndex == FocusSuggestions && len(m.suggestions) > 0 {
				if msg.String() == "up" {
					if m.suggestionsList.Index() > 0 {
						m.suggestionsList.CursorUp()
					}
				} else {
					if m.suggestionsList.Index() < len(m.suggestions)-1 {
						m.suggestionsList.CursorDown()
					}
				}
				return m, nil
			}
			if m.focusIndex == FocusOutput {
				if msg.String() == "up" {
					m.outputViewport.LineUp(1)
				} else {
					m.outputViewport.LineDown(1)
				}
				return m, nil
			}
		}

		if m.focusIndex == FocusInput {
			m.textInput, cmd = m.textInput.Update(msg)
			cmds = append(cmds, cmd)

			currentQuery := m.textInput.Value()
			if currentQuery != m.lastQuery {
				m.updateSuggestions(currentQuery)
				m.lastQuery = currentQuery
			}
		} else if m.focusIndex == FocusSuggestions {
			m.suggestionsList, cmd = m.suggestionsList.Update(msg)
			cmds = append(cmds, cmd)
		} else {
			m.outputViewport, cmd = m.outputViewport.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.ready = true
	}

	return m, tea.Batch(cmds...)
}

// runLine dispatches one input line and appends the exchange to the
// output transcript. Dispatch failures render the same classified
// messages as the plain console, styled instead of colored.
func (m *Model) runLine(line string) {
	var captured bytes.Buffer
	m.session.Out = &captured
	// In the UI, clearing means wiping the transcript, not the terminal.
	m.session.ClearScreen = func() {
		m.transcript.Reset()
	}

	err := m.session.Dispatch(line)

	tokens := Tokenize(line)
	if len(tokens) > 0 {
		m.transcript.WriteString(m.styles.Prompt.Render(m.session.Config.Console.Prompt))
		m.transcript.WriteString(line)
		m.transcript.WriteString("\n")
	}

	if captured.Len() > 0 {
		m.session.LastOutput = captured.String()
		m.transcript.WriteString(captured.String())
		if !strings.HasSuffix(captured.String(), "\n") {
			m.transcript.WriteString("\n")
		}
	}

	if err != nil {
		if message := RenderDispatchError(err, true, m.contentWidth()); message != "" {
			m.transcript.WriteString(m.styles.ErrorMessage.Render(message))
			m.transcript.WriteString("\n")
		}
		var unknown *UnknownCommandError
		if m.session.Config.Console.Suggestions && errors.As(err, &unknown) {
			if hint := suggestCommand(unknown.Name, m.session.Registry); hint != "" {
				m.transcript.WriteString(m.styles.HintMessage.Render(fmt.Sprintf("Did you mean %q?", hint)))
				m.transcript.WriteString("\n")
			}
		}
	}

	m.outputViewport.SetContent(m.transcript.String())
	m.outputViewport.GotoBottom()
}

// contentWidth is the render width available inside the output pane.
func (m *Model) contentWidth() int {
	if m.session.Columns > 0 {
		return m.session.Columns
	}
	if m.outputViewport.Width > 2 {
		return m.outputViewport.Width - 2
	}
	return 0
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.width < 30 || m.height < 10 {
		return "Terminal too small. Please resize your terminal."
	}

	inputHeight := 3
	bodyHeight := m.height - inputHeight - 6
	suggestionWidth := (m.width * 4 / 10) - 1
	outputWidth := m.width - suggestionWidth - 3

	var inputStyle lipgloss.Style
	var inputTitle string
	if m.focusIndex == FocusInput {
		inputStyle = m.styles.BorderFocused
		inputTitle = " 🐚 Console (Active) "
	} else {
		inputStyle = m.styles.BorderBlurred
		inputTitle = " 🐚 Console "
	}

	m.textInput.Width = m.width - 8

	inputBox := inputStyle.
		Width(m.width - 2).
		Height(inputHeight).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Width(m.width-6).Render(inputTitle),
			m.textInput.View(),
		))

	var listStyle lipgloss.Style
	var listTitle string
	if m.focusIndex == FocusSuggestions {
		listStyle = m.styles.BorderFocused
		listTitle = " 📋 History (Active) "
	} else {
		listStyle = m.styles.BorderBlurred
		listTitle = " 📋 History "
	}

	suggestionBox := listStyle.
		Width(suggestionWidth).
		Height(bodyHeight).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Width(suggestionWidth-4).Render(listTitle),
			m.suggestionsList.View(),
		))

	var outputStyle lipgloss.Style
	var outputTitle string
	if m.focusIndex == FocusOutput {
		outputStyle = m.styles.BorderFocused
		outputTitle = " 📖 Output (Active) "
	} else {
		outputStyle = m.styles.BorderBlurred
		outputTitle = " 📖 Output "
	}

	outputBox := outputStyle.
		Width(outputWidth).
		Height(bodyHeight).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Width(outputWidth-4).Render(outputTitle),
			m.outputViewport.View(),
		))

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		suggestionBox,
		outputBox,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		inputBox,
		body,
		m.renderHelpFooter(),
	)
}

// updateLayout updates component dimensions
func (m *Model) updateLayout() {
	inputHeight := 3
	bodyHeight := m.height - inputHeight - 6
	suggestionWidth := (m.width * 4 / 10) - 1
	outputWidth := m.width - suggestionWidth - 3

	m.textInput.Width = m.width - 8
	m.suggestionsList.SetSize(suggestionWidth-2, bodyHeight-2)
	m.outputViewport.Width = outputWidth - 2
	m.outputViewport.Height = bodyHeight - 2
}

// updateSuggestions ranks past inputs matching the query prefix
func (m *Model) updateSuggestions(query string) {
	var matches []RankedInput
	if m.session.Index != nil {
		matches = m.session.Index.Rank(query, m.session.Config.History.Limit)
	}

	items := make([]list.Item, len(matches))
	m.suggestions = make([]string, len(matches))

	for i, match := range matches {
		items[i] = suggestionItem{line: match.Line, frequency: match.Metadata.Frequency}
		m.suggestions[i] = match.Line
	}

	m.suggestionsList.SetItems(items)
}

// renderHelpFooter renders the key binding footer
func (m Model) renderHelpFooter() string {
	var keys []string
	var descs []string

	keys = append(keys, "enter")
	descs = append(descs, "run command")

	keys = append(keys, "tab")
	descs = append(descs, "switch focus")

	keys = append(keys, "↑/↓")
	descs = append(descs, "browse history")

	keys = append(keys, "pgup/pgdn")
	descs = append(descs, "scroll output")

	keys = append(keys, "ctrl+c")
	descs = append(descs, "quit")

	var helpEntries []string
	for i, key := range keys {
		helpEntries = append(helpEntries,
			fmt.Sprintf("%s %s",
				m.styles.HelpKey.Render(key),
				m.styles.HelpDesc.Render(descs[i])))
	}

	return lipgloss.NewStyle().
		Padding(1, 0, 0, 2).
		Render(strings.Join(helpEntries, " • "))
}

// runBubbleTeaApp starts the full-screen console UI
func runBubbleTeaApp(session *Session) error {
	InitializeColors()

	model := InitialModel(session)

	// The UI renders markdown with glamour.
	session.MarkdownRenderer = func(text string) string {
		if model.glamourRenderer == nil {
			return text
		}
		rendered, err := model.glamourRenderer.Render(text)
		if err != nil {
			return text
		}
		return rendered
	}

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := program.Run()
	return err
}
