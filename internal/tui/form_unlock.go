package tui

import "github.com/kianlavi/onlyfan/models"

type unlockModel struct {
	form inputForm
}

func newUnlockModel() unlockModel {
	f := newInputForm([]string{"Password"}, nil)
	f.secret(0)
	return unlockModel{form: f}
}

func (m unlockModel) request() models.UnlockRequest {
	return models.UnlockRequest{Password: m.form.raw(0)}
}

func (m unlockModel) View() string {
	body := m.form.View()
	if m.form.submitting {
		body += "\nUnlocking..."
	}
	return renderPage("UNLOCK", body, "enter unlock")
}
