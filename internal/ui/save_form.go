package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// SaveForm asks whether the generated photo should be written to disk
type SaveForm struct {
	Completed bool
	confirmed bool
	form      *huh.Form
}

// NewSaveForm creates the confirmation dialog for saving fileName into dir
func NewSaveForm(dir, fileName string) *SaveForm {
	sf := &SaveForm{confirmed: true}
	sf.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("¿Guardar tu foto de graduación?").
				Description(fmt.Sprintf("Se guardará como %s en %s", fileName, dir)).
				Affirmative("Guardar").
				Negative("Cancelar").
				Value(&sf.confirmed),
		),
	).WithShowHelp(false)
	return sf
}

func (sf *SaveForm) Init() tea.Cmd {
	return sf.form.Init()
}

func (sf *SaveForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			sf.confirmed = false
			sf.Completed = true
			return sf, nil
		}
	}

	form, cmd := sf.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		sf.form = f
	}

	switch sf.form.State {
	case huh.StateCompleted:
		sf.Completed = true
		return sf, nil
	case huh.StateAborted:
		sf.confirmed = false
		sf.Completed = true
		return sf, nil
	}
	return sf, cmd
}

func (sf *SaveForm) View() string {
	if sf.form != nil {
		return sf.form.View()
	}
	return ""
}

// Confirmed reports whether the user accepted saving
func (sf *SaveForm) Confirmed() bool {
	return sf.Completed && sf.confirmed
}
