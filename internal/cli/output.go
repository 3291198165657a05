package cli

import (
	"errors"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/kianlavi/onlyfan/internal/app"
)

var (
	successText   = color.New(color.FgGreen)
	errorText     = color.New(color.FgRed)
	warningText   = color.New(color.FgYellow)
	highlightText = color.New(color.FgCyan)
	mutedText     = color.New(color.Faint)
)

var errNothingToChange = errors.New("nothing to change: pass at least one field flag")

// describe turns err into the line shown to the user.
func describe(err error) string {
	if app.Known(err) {
		return app.Message(err)
	}
	return err.Error()
}

// wait runs fn behind a spinner on stderr when attached to a terminal.
func (r *runner) wait(message string, fn func() error) error {
	if !r.env.Interactive {
		return fn()
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(r.env.Err))
	s.Suffix = " " + message
	_ = s.Color("cyan")

	s.Start()
	defer s.Stop()
	return fn()
}
