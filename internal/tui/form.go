package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// inputForm is a column of labelled text inputs with one focused field.
type inputForm struct {
	labels     []string
	inputs     []textinput.Model
	focus      int
	submitting bool
}

func newInputForm(labels []string, placeholders []string) inputForm {
	inputs := make([]textinput.Model, len(labels))
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 50
		if i < len(placeholders) {
			inputs[i].Placeholder = placeholders[i]
		}
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return inputForm{labels: labels, inputs: inputs}
}

func (f *inputForm) secret(i int) {
	f.inputs[i].EchoMode = textinput.EchoPassword
	f.inputs[i].EchoCharacter = '•'
}

func (f inputForm) focusNext() inputForm {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
	return f
}

func (f inputForm) focusPrev() inputForm {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
	return f
}

func (f inputForm) focusFirst() inputForm {
	f.inputs[f.focus].Blur()
	f.focus = 0
	f.inputs[0].Focus()
	return f
}

func (f inputForm) update(msg tea.Msg) (inputForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f inputForm) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// raw returns the field exactly as typed, for passwords.
func (f inputForm) raw(i int) string {
	return f.inputs[i].Value()
}

func (f inputForm) set(i int, v string) inputForm {
	f.inputs[i].SetValue(v)
	return f
}

func (f inputForm) View() string {
	width := 0
	for _, l := range f.labels {
		width = max(width, len(l))
	}

	var b strings.Builder
	for i, in := range f.inputs {
		label := f.labels[i] + ":" + strings.Repeat(" ", width-len(f.labels[i])+1)
		if i == f.focus {
			label = selectedStyle.Render(label)
		}
		b.WriteString(label)
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	return b.String()
}

func optionalInt(label, s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%s %w", label, errInvalidNumber)
	}
	return &n, nil
}

func optionalFloat(label, s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.TrimPrefix(s, "$"), 64)
	if err != nil || f < 0 {
		return nil, fmt.Errorf("%s %w", label, errInvalidNumber)
	}
	return &f, nil
}

func yes(s string) bool {
	switch strings.ToLower(s) {
	case "y", "yes", "true", "1":
		return true
	}
	return false
}
