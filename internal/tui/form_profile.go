package tui

import (
	"strconv"

	"github.com/kianlavi/onlyfan/models"
)

const (
	profileName = iota
	profileHandle
	profileBio
	profileAvatar
	profileBanner
	profileSubscribers
	profileLikes
)

type profileFormModel struct {
	form    inputForm
	loading bool
}

func newProfileFormModel() profileFormModel {
	return profileFormModel{
		form: newInputForm(
			[]string{"Name", "Handle", "Bio", "Avatar URL", "Banner URL", "Subscribers", "Total likes"},
			[]string{"", "@handle"},
		),
		loading: true,
	}
}

func (m profileFormModel) fill(p models.Profile) profileFormModel {
	m.form = m.form.
		set(profileName, p.Name).
		set(profileHandle, p.Handle).
		set(profileBio, p.Bio).
		set(profileAvatar, p.Avatar).
		set(profileBanner, p.Banner).
		set(profileSubscribers, strconv.Itoa(p.Subscribers)).
		set(profileLikes, strconv.Itoa(p.TotalLikes))
	m.loading = false
	return m
}

func (m profileFormModel) profile() (models.Profile, error) {
	subscribers, err := optionalInt("subscribers", m.form.value(profileSubscribers))
	if err != nil {
		return models.Profile{}, err
	}
	likes, err := optionalInt("total likes", m.form.value(profileLikes))
	if err != nil {
		return models.Profile{}, err
	}

	p := models.Profile{
		Name:   m.form.value(profileName),
		Handle: m.form.value(profileHandle),
		Bio:    m.form.value(profileBio),
		Avatar: m.form.value(profileAvatar),
		Banner: m.form.value(profileBanner),
	}
	if subscribers != nil {
		p.Subscribers = *subscribers
	}
	if likes != nil {
		p.TotalLikes = *likes
	}
	return p, nil
}

func (m profileFormModel) View() string {
	if m.loading {
		return renderPage("PROFILE", "Loading...", "esc back")
	}
	body := m.form.View()
	if m.form.submitting {
		body += "\nSaving..."
	}
	return renderPage("PROFILE", body, "esc cancel  tab next field  enter save")
}
