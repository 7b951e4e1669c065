// Package dialogs provides application dialogs.
package dialogs

import (
	"strings"

	"image-inspector/internal/describe"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// DescribeSettings holds the vision service configuration edited by the
// settings dialog. An empty APIKey means "use the environment".
type DescribeSettings struct {
	BaseURL string
	Model   string
	APIKey  string
}

// SettingsDialog edits the description service settings.
type SettingsDialog struct {
	window  fyne.Window
	initial DescribeSettings

	baseURLEntry *widget.Entry
	modelEntry   *widget.Entry
	keyEntry     *widget.Entry

	// Callback
	onSave func(DescribeSettings)
}

// NewSettingsDialog creates a new settings dialog pre-filled with current.
func NewSettingsDialog(window fyne.Window, current DescribeSettings, onSave func(DescribeSettings)) *SettingsDialog {
	return &SettingsDialog{
		window:  window,
		initial: current,
		onSave:  onSave,
	}
}

// Show displays the dialog.
func (d *SettingsDialog) Show() {
	content := d.createContent()

	dlg := dialog.NewCustomConfirm(
		"Description Service",
		"Save",
		"Cancel",
		content,
		func(save bool) {
			if save && d.onSave != nil {
				d.onSave(DescribeSettings{
					BaseURL: strings.TrimSpace(d.baseURLEntry.Text),
					Model:   strings.TrimSpace(d.modelEntry.Text),
					APIKey:  strings.TrimSpace(d.keyEntry.Text),
				})
			}
		},
		d.window,
	)
	dlg.Resize(fyne.NewSize(480, 340))
	dlg.Show()
}

func (d *SettingsDialog) createContent() fyne.CanvasObject {
	d.baseURLEntry = widget.NewEntry()
	d.baseURLEntry.SetPlaceHolder(describe.DefaultBaseURL)
	d.baseURLEntry.SetText(d.initial.BaseURL)

	d.modelEntry = widget.NewEntry()
	d.modelEntry.SetPlaceHolder(describe.DefaultModel)
	d.modelEntry.SetText(d.initial.Model)

	d.keyEntry = widget.NewPasswordEntry()
	d.keyEntry.SetText(d.initial.APIKey)

	form := widget.NewForm(
		widget.NewFormItem("Base URL", d.baseURLEntry),
		widget.NewFormItem("Model", d.modelEntry),
		widget.NewFormItem("API Key", d.keyEntry),
	)

	note := widget.NewLabel("Any OpenAI-compatible endpoint works, including local gateways. " +
		"Leave the key empty to use IMAGE_INSPECTOR_API_KEY or OPENAI_API_KEY from the environment.")
	note.Wrapping = fyne.TextWrapWord

	return container.NewVBox(
		widget.NewCard("OpenAI-Compatible Endpoint", "", form),
		note,
	)
}
