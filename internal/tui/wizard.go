// Package tui tiene las pantallas interactivas del CLI.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"pet-walks-client/internal/domain/petdraft"
	"pet-walks-client/internal/ports/petregistry"
	"pet-walks-client/internal/validation"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PetWizard son las operaciones del wizard de alta que usa la pantalla.
// *app.App lo implementa.
type PetWizard interface {
	SetBreed(breed string) validation.FieldErrors
	SetZone(zone string) validation.FieldErrors
	SetProfile(name, age string) validation.FieldErrors
	SetDetails(description, comments, medicalCondition string) validation.FieldErrors
	SetPhoto(path string) validation.FieldErrors
	CurrentDraft() petdraft.Draft
	SubmitDraft(ctx context.Context) (petregistry.Pet, error)
}

type step int

const (
	stepBreed step = iota
	stepZone
	stepProfile
	stepDetails
	stepPhoto
	stepConfirm
	stepDone
)

var stepTitles = map[step]string{
	stepBreed:   "Raza",
	stepZone:    "Zona",
	stepProfile: "Nombre y edad",
	stepDetails: "Detalles",
	stepPhoto:   "Foto",
	stepConfirm: "Confirmar",
}

type fieldSpec struct {
	key         string
	label       string
	placeholder string
	limit       int
}

var stepFields = map[step][]fieldSpec{
	stepBreed: {{key: "breed", label: "Raza", placeholder: "Labrador"}},
	stepZone:  {{key: "zone", label: "Zona", placeholder: "norte / centro / sur"}},
	stepProfile: {
		{key: "name", label: "Nombre", placeholder: "Max", limit: validation.MaxPetNameLen},
		{key: "age", label: "Edad", placeholder: "0-20", limit: 2},
	},
	stepDetails: {
		{key: "description", label: "Descripción", placeholder: "opcional"},
		{key: "comments", label: "Comentarios", placeholder: "opcional", limit: validation.MaxCommentsLen},
		{key: "medical_condition", label: "Condición médica", placeholder: "opcional"},
	},
	stepPhoto: {{key: "photo", label: "Ruta de la foto", placeholder: "opcional, .jpg o .png"}},
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

type submitDoneMsg struct {
	pet petregistry.Pet
	err error
}

// WizardModel es la pantalla de alta de mascota paso a paso.
// Cada paso valida con el PetWizard antes de avanzar; volver atrás no borra lo cargado.
type WizardModel struct {
	ctx context.Context
	wiz PetWizard

	step   step
	focus  int
	inputs map[step][]textinput.Model

	errs       validation.FieldErrors
	submitting bool
	submitErr  error
	pet        *petregistry.Pet
	cancelled  bool
}

func NewWizard(ctx context.Context, wiz PetWizard) WizardModel {
	m := WizardModel{
		ctx:    ctx,
		wiz:    wiz,
		inputs: make(map[step][]textinput.Model, len(stepFields)),
	}
	for s, specs := range stepFields {
		row := make([]textinput.Model, len(specs))
		for i, f := range specs {
			ti := textinput.New()
			ti.Prompt = "> "
			ti.Placeholder = f.placeholder
			if f.limit > 0 {
				ti.CharLimit = f.limit
			}
			row[i] = ti
		}
		m.inputs[s] = row
	}
	m.refocus()
	return m
}

func (m WizardModel) Init() tea.Cmd {
	return textinput.Blink
}

// Pet devuelve la mascota creada, si el alta terminó bien.
func (m WizardModel) Pet() (petregistry.Pet, bool) {
	if m.pet == nil {
		return petregistry.Pet{}, false
	}
	return *m.pet, true
}

func (m WizardModel) Cancelled() bool { return m.cancelled }

func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.submitErr = msg.err
			return m, nil
		}
		m.submitErr = nil
		m.pet = &msg.pet
		m.step = stepDone
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.cancelled = m.pet == nil
			return m, tea.Quit
		case tea.KeyEsc:
			if m.step > stepBreed && m.step != stepDone && !m.submitting {
				m.step--
				m.focus = 0
				m.errs = nil
				m.submitErr = nil
				m.refocus()
			}
			return m, nil
		case tea.KeyTab, tea.KeyDown:
			m.moveFocus(1)
			return m, nil
		case tea.KeyShiftTab, tea.KeyUp:
			m.moveFocus(-1)
			return m, nil
		case tea.KeyEnter:
			return m.enter()
		}
	}

	row := m.inputs[m.step]
	if m.focus < len(row) {
		var cmd tea.Cmd
		row[m.focus], cmd = row[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m WizardModel) enter() (tea.Model, tea.Cmd) {
	switch m.step {
	case stepDone:
		return m, tea.Quit
	case stepConfirm:
		if m.submitting {
			return m, nil
		}
		m.submitting = true
		m.submitErr = nil
		return m, m.submit()
	}

	if m.focus < len(m.inputs[m.step])-1 {
		m.moveFocus(1)
		return m, nil
	}

	fe := m.commit()
	if !fe.OK() {
		m.errs = fe
		m.focusFirstError()
		return m, nil
	}
	m.errs = nil
	m.step++
	m.focus = 0
	m.refocus()
	return m, nil
}

// commit manda los valores del paso actual al wizard (valida + merge).
func (m WizardModel) commit() validation.FieldErrors {
	v := m.values()
	switch m.step {
	case stepBreed:
		return m.wiz.SetBreed(v["breed"])
	case stepZone:
		return m.wiz.SetZone(v["zone"])
	case stepProfile:
		return m.wiz.SetProfile(v["name"], v["age"])
	case stepDetails:
		return m.wiz.SetDetails(v["description"], v["comments"], v["medical_condition"])
	case stepPhoto:
		return m.wiz.SetPhoto(v["photo"])
	}
	return validation.FieldErrors{}
}

func (m WizardModel) submit() tea.Cmd {
	ctx, wiz := m.ctx, m.wiz
	return func() tea.Msg {
		pet, err := wiz.SubmitDraft(ctx)
		return submitDoneMsg{pet: pet, err: err}
	}
}

func (m WizardModel) values() map[string]string {
	out := map[string]string{}
	for i, f := range stepFields[m.step] {
		out[f.key] = m.inputs[m.step][i].Value()
	}
	return out
}

func (m *WizardModel) moveFocus(delta int) {
	n := len(m.inputs[m.step])
	if n == 0 {
		return
	}
	m.focus = (m.focus + delta + n) % n
	m.refocus()
}

func (m *WizardModel) focusFirstError() {
	for i, f := range stepFields[m.step] {
		if _, bad := m.errs[f.key]; bad {
			m.focus = i
			break
		}
	}
	m.refocus()
}

func (m *WizardModel) refocus() {
	for s, row := range m.inputs {
		for i := range row {
			if s == m.step && i == m.focus {
				row[i].Focus()
			} else {
				row[i].Blur()
			}
		}
	}
}

func (m WizardModel) View() string {
	var b strings.Builder

	if m.step == stepDone && m.pet != nil {
		b.WriteString(okStyle.Render("¡Mascota registrada!"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("%s (%s) · id %s\n", m.pet.Name, m.pet.Breed, m.pet.ID))
		b.WriteString(hintStyle.Render("\nEnter para salir"))
		return boxStyle.Render(b.String())
	}

	total := int(stepConfirm) + 1
	b.WriteString(titleStyle.Render(fmt.Sprintf("Nueva mascota · paso %d de %d · %s", int(m.step)+1, total, stepTitles[m.step])))
	b.WriteString("\n\n")

	if m.step == stepConfirm {
		b.WriteString(renderDraft(m.wiz.CurrentDraft()))
		switch {
		case m.submitting:
			b.WriteString(hintStyle.Render("\nEnviando..."))
		case m.submitErr != nil:
			b.WriteString("\n" + errStyle.Render(m.submitErr.Error()))
			b.WriteString(hintStyle.Render("\nEnter para reintentar · Esc para volver"))
		default:
			b.WriteString(hintStyle.Render("\nEnter para registrar · Esc para volver"))
		}
		return boxStyle.Render(b.String())
	}

	for i, f := range stepFields[m.step] {
		b.WriteString(labelStyle.Render(f.label))
		b.WriteString("\n")
		b.WriteString(m.inputs[m.step][i].View())
		b.WriteString("\n")
		if msg, bad := m.errs[f.key]; bad {
			b.WriteString(errStyle.Render(msg))
			b.WriteString("\n")
		}
	}
	b.WriteString(hintStyle.Render("\nEnter para seguir · Tab cambia de campo · Esc para volver · Ctrl+C cancela"))
	return boxStyle.Render(b.String())
}

func renderDraft(d petdraft.Draft) string {
	row := func(label, v string) string {
		if v == "" {
			v = hintStyle.Render("(sin dato)")
		}
		return labelStyle.Render(label+": ") + v + "\n"
	}
	str := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}

	var b strings.Builder
	b.WriteString(row("Raza", str(d.Breed)))
	zone := ""
	if d.Zone != nil {
		zone = string(*d.Zone)
	}
	b.WriteString(row("Zona", zone))
	b.WriteString(row("Nombre", str(d.Name)))
	age := ""
	if d.Age != nil {
		age = strconv.Itoa(*d.Age)
	}
	b.WriteString(row("Edad", age))
	b.WriteString(row("Descripción", str(d.Description)))
	b.WriteString(row("Comentarios", str(d.Comments)))
	b.WriteString(row("Condición médica", str(d.MedicalCondition)))
	photo := ""
	if d.Photo != nil {
		photo = d.Photo.FileName
	}
	b.WriteString(row("Foto", photo))
	return b.String()
}
