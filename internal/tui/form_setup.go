package tui

import "github.com/kianlavi/onlyfan/models"

const (
	setupSubject = iota
	setupCredential
	setupPassword
	setupConfirm
)

type setupModel struct {
	form inputForm
}

func newSetupModel(subject string) setupModel {
	f := newInputForm(
		[]string{"Repository", "Access token", "Password", "Confirm"},
		[]string{"owner/name", "token with push access", "", ""},
	)
	f.secret(setupCredential)
	f.secret(setupPassword)
	f.secret(setupConfirm)
	if subject != "" {
		f = f.set(setupSubject, subject).focusNext()
	}
	return setupModel{form: f}
}

func (m setupModel) request() models.SetupRequest {
	return models.SetupRequest{
		Subject:         m.form.value(setupSubject),
		Credential:      m.form.value(setupCredential),
		Password:        m.form.raw(setupPassword),
		ConfirmPassword: m.form.raw(setupConfirm),
	}
}

// clearSecrets empties the password fields after a failed attempt.
func (m setupModel) clearSecrets() setupModel {
	m.form = m.form.set(setupPassword, "").set(setupConfirm, "")
	return m
}

func (m setupModel) View() string {
	body := "No admin config found. The token is encrypted with the password\n" +
		"and stored in the repository; only the password is needed later.\n\n"
	body += m.form.View()
	if m.form.submitting {
		body += "\nVerifying access..."
	}
	return renderPage("SETUP", body, "tab next field  enter save")
}
