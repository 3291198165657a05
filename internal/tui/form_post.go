package tui

import (
	"os"
	"path/filepath"

	"github.com/kianlavi/onlyfan/models"
)

const (
	postText = iota
	postImageFile
	postLikes
	postTips
	postLocked
	postPrice
)

type postFormModel struct {
	form inputForm
}

func newPostFormModel() postFormModel {
	return postFormModel{form: newInputForm(
		[]string{"Text", "Image file", "Likes", "Tips", "Locked", "Price"},
		[]string{"what's new?", "path to a local image", "random", "", "y/n", "4.99"},
	)}
}

// draft parses the form. The image file is returned separately: it is
// uploaded first and its repository path becomes the post image.
func (m postFormModel) draft() (models.PostDraft, string, error) {
	likes, err := optionalInt("likes", m.form.value(postLikes))
	if err != nil {
		return models.PostDraft{}, "", err
	}
	tips, err := optionalFloat("tips", m.form.value(postTips))
	if err != nil {
		return models.PostDraft{}, "", err
	}
	price, err := optionalFloat("price", m.form.value(postPrice))
	if err != nil {
		return models.PostDraft{}, "", err
	}

	draft := models.PostDraft{
		Text:   m.form.value(postText),
		Likes:  likes,
		Tips:   tips,
		Locked: yes(m.form.value(postLocked)),
		Price:  price,
	}

	imageFile := m.form.value(postImageFile)
	if imageFile != "" {
		// lets validation see that an image is coming
		draft.Image = filepath.Base(imageFile)
	}
	return draft, imageFile, nil
}

func (m postFormModel) View() string {
	body := m.form.View()
	if m.form.submitting {
		body += "\nPublishing..."
	}
	return renderPage("NEW POST", body, "esc cancel  tab next field  enter publish")
}

var readImageFile = os.ReadFile
