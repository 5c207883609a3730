// Package tui is the interactive terminal client: a contact form with
// per-field validation, and a searchable, sortable list backed by the
// store and the view engine. Operations run synchronously inside Update,
// matching the single-threaded cooperative model of the browser client it
// replaces.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/KENZY004/contact-management/internal/model"
	"github.com/KENZY004/contact-management/internal/store"
	"github.com/KENZY004/contact-management/internal/validate"
	"github.com/KENZY004/contact-management/internal/view"
	"github.com/KENZY004/contact-management/pkg/client"
)

type focusArea int

const (
	focusList focusArea = iota
	focusForm
	focusSearch
)

const (
	fieldName = iota
	fieldEmail
	fieldPhone
	fieldMessage
	fieldCount
)

var fieldNames = [fieldCount]string{"name", "email", "phone", "message"}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the bubbletea model for the contact manager.
type Model struct {
	store      *store.Store
	projection view.Projection

	focus    focusArea
	selected int
	visible  []model.Contact

	inputs      [fieldCount]textinput.Model
	field       int
	fieldErrors map[string]string
	editingID   string

	searchInput textinput.Model

	status    string
	statusErr bool
	exportDir string
	width     int
}

// New creates the TUI model against the given store. Exports are written
// into exportDir.
func New(s *store.Store, exportDir string) Model {
	var inputs [fieldCount]textinput.Model
	placeholders := [fieldCount]string{"Full name", "email@example.com", "10-digit phone", "Optional message"}
	for i := range inputs {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		input.CharLimit = 100
		inputs[i] = input
	}
	inputs[fieldName].Focus()

	searchInput := textinput.New()
	searchInput.Placeholder = "Search contacts..."
	searchInput.CharLimit = 50

	return Model{
		store:       s,
		projection:  view.DefaultProjection(),
		inputs:      inputs,
		fieldErrors: make(map[string]string),
		searchInput: searchInput,
		exportDir:   exportDir,
	}
}

// Init loads the contact list once; afterwards the store is only updated
// incrementally.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: m.store.Load(context.Background())}
	}
}

type loadedMsg struct {
	err error
}

// Update handles key input and the initial load result.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case loadedMsg:
		if msg.err != nil {
			m.setStatus(describeErr(msg.err), true)
		} else {
			m.setStatus(fmt.Sprintf("Loaded %d contacts", m.store.Len()), false)
		}
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.focus {
		case focusForm:
			return m.updateForm(msg)
		case focusSearch:
			return m.updateSearch(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.visible)-1 {
			m.selected++
		}
	case "a":
		m.openForm(model.Contact{})
	case "e":
		if contact, ok := m.selectedContact(); ok {
			m.openForm(contact)
		}
	case "d":
		if contact, ok := m.selectedContact(); ok {
			removed, err := m.store.Remove(context.Background(), contact.ID)
			if err != nil {
				m.setStatus(describeErr(err), true)
			} else {
				m.setStatus(fmt.Sprintf("Deleted %s", removed.Name), false)
			}
			m.refresh()
		}
	case "/":
		m.focus = focusSearch
		m.searchInput.Focus()
	case "n":
		m.projection.Toggle(view.SortByName)
		m.refresh()
	case "m":
		m.projection.Toggle(view.SortByEmail)
		m.refresh()
	case "t":
		m.projection.Toggle(view.SortByDate)
		m.refresh()
	case "x":
		path, err := view.Export(m.visible, m.exportDir)
		if err != nil {
			m.setStatus(describeErr(err), true)
		} else {
			m.setStatus(fmt.Sprintf("Exported to %s", path), false)
		}
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.focus = focusList
		m.searchInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.projection.Query = m.searchInput.Value()
	m.refresh()
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeForm()
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		m.blurField()
		m.focusField((m.field + 1) % fieldCount)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.blurField()
		m.focusField((m.field + fieldCount - 1) % fieldCount)
		return m, nil
	case tea.KeyEnter:
		if m.field < fieldMessage {
			m.blurField()
			m.focusField(m.field + 1)
			return m, nil
		}
		m.submitForm()
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.field], cmd = m.inputs[m.field].Update(msg)
	// Typing clears the field's error, as the browser form does.
	delete(m.fieldErrors, fieldNames[m.field])
	return m, cmd
}

// blurField validates the field that is losing focus.
func (m *Model) blurField() {
	name := fieldNames[m.field]
	value := m.inputs[m.field].Value()
	var msg string
	switch m.field {
	case fieldName:
		msg = validate.Name(value)
	case fieldEmail:
		msg = validate.Email(value)
	case fieldPhone:
		msg = validate.Phone(value)
	case fieldMessage:
		msg = validate.Message(value)
	}
	if msg != "" {
		m.fieldErrors[name] = msg
	} else {
		delete(m.fieldErrors, name)
	}
	m.inputs[m.field].Blur()
}

func (m *Model) focusField(i int) {
	m.field = i
	m.inputs[i].Focus()
}

func (m *Model) openForm(contact model.Contact) {
	m.editingID = contact.ID
	values := [fieldCount]string{contact.Name, contact.Email, contact.Phone, contact.Message}
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
		m.inputs[i].Blur()
	}
	m.fieldErrors = make(map[string]string)
	m.focusField(fieldName)
	m.focus = focusForm
}

func (m *Model) closeForm() {
	m.inputs[m.field].Blur()
	m.fieldErrors = make(map[string]string)
	m.editingID = ""
	m.focus = focusList
}

// submitForm validates every field and, when all pass, creates or updates
// the contact through the store.
func (m *Model) submitForm() {
	fields := model.Fields{
		Name:    m.inputs[fieldName].Value(),
		Email:   m.inputs[fieldEmail].Value(),
		Phone:   m.inputs[fieldPhone].Value(),
		Message: m.inputs[fieldMessage].Value(),
	}
	errs := validate.Fields(fields.Name, fields.Email, fields.Phone, fields.Message)
	if len(errs) > 0 {
		m.fieldErrors = make(map[string]string)
		for _, fieldErr := range errs {
			m.fieldErrors[fieldErr.Path] = fieldErr.Msg
		}
		return
	}

	var (
		contact model.Contact
		err     error
	)
	if m.editingID == "" {
		contact, err = m.store.Add(context.Background(), fields)
	} else {
		contact, err = m.store.Update(context.Background(), m.editingID, fields)
	}
	if err != nil {
		m.setStatus(describeErr(err), true)
		return
	}
	if m.editingID == "" {
		m.setStatus(fmt.Sprintf("Added %s", contact.Name), false)
	} else {
		m.setStatus(fmt.Sprintf("Updated %s", contact.Name), false)
	}
	m.closeForm()
	m.refresh()
}

// refresh re-derives the visible projection from the store.
func (m *Model) refresh() {
	m.visible = m.projection.Apply(m.store.All())
	if m.selected >= len(m.visible) {
		m.selected = len(m.visible) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) selectedContact() (model.Contact, bool) {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return model.Contact{}, false
	}
	return m.visible[m.selected], true
}

func (m *Model) setStatus(message string, isErr bool) {
	m.status = message
	m.statusErr = isErr
}

// describeErr turns API and transport failures into the transient
// notification text shown in the status line.
func describeErr(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if len(apiErr.Errors) > 0 {
			parts := make([]string, 0, len(apiErr.Errors))
			for _, fieldErr := range apiErr.Errors {
				parts = append(parts, fieldErr.Msg)
			}
			return strings.Join(parts, "; ")
		}
		return apiErr.Message
	}
	if errors.Is(err, view.ErrNoContacts) {
		return "No contacts to export"
	}
	return "Network error: " + err.Error()
}

// View renders the whole screen.
func (m Model) View() string {
	var builder strings.Builder
	builder.WriteString(titleStyle.Render("Contact Management"))
	builder.WriteString("\n\n")

	if m.focus == focusForm {
		builder.WriteString(m.renderForm())
	} else {
		builder.WriteString(m.renderList())
	}

	if m.status != "" {
		builder.WriteString("\n")
		if m.statusErr {
			builder.WriteString(errorStyle.Render(m.status))
		} else {
			builder.WriteString(successStyle.Render(m.status))
		}
		builder.WriteString("\n")
	}
	builder.WriteString("\n")
	builder.WriteString(dimStyle.Render(m.helpLine()))
	return builder.String()
}

func (m Model) renderForm() string {
	var builder strings.Builder
	if m.editingID == "" {
		builder.WriteString(headerStyle.Render("Add Contact"))
	} else {
		builder.WriteString(headerStyle.Render("Edit Contact"))
	}
	builder.WriteString("\n\n")
	labels := [fieldCount]string{"Name", "Email", "Phone", "Message"}
	for i := range m.inputs {
		builder.WriteString(fmt.Sprintf("%-8s %s\n", labels[i], m.inputs[i].View()))
		if msg, ok := m.fieldErrors[fieldNames[i]]; ok {
			builder.WriteString("         " + errorStyle.Render(msg) + "\n")
		}
	}
	return builder.String()
}

func (m Model) renderList() string {
	var builder strings.Builder
	builder.WriteString(m.renderListHeader())
	builder.WriteString("\n\n")

	if m.focus == focusSearch || m.searchInput.Value() != "" {
		builder.WriteString(m.searchInput.View())
		builder.WriteString("\n\n")
	}

	if len(m.visible) == 0 {
		if m.store.Len() == 0 {
			builder.WriteString(dimStyle.Render("No contacts yet. Press 'a' to add one."))
		} else {
			builder.WriteString(dimStyle.Render("No contacts match the search."))
		}
		builder.WriteString("\n")
		return builder.String()
	}

	for i, contact := range m.visible {
		line := fmt.Sprintf("%-20s  %-28s  %-12s  %s",
			truncate(contact.Name, 20),
			truncate(contact.Email, 28),
			contact.Phone,
			contact.CreatedAt.Format("Jan 2, 2006"))
		if i == m.selected && m.focus == focusList {
			builder.WriteString(selectedStyle.Render("> " + line))
		} else {
			builder.WriteString("  " + line)
		}
		builder.WriteString("\n")
	}
	return builder.String()
}

func (m Model) renderListHeader() string {
	total := m.store.Len()
	shown := len(m.visible)
	counts := fmt.Sprintf("Total contacts: %d", total)
	if shown != total {
		counts = fmt.Sprintf("Showing %d of %d contacts", shown, total)
	}
	return headerStyle.Render("Contact List") + "  " + dimStyle.Render(counts+"  "+m.sortIndicator())
}

func (m Model) sortIndicator() string {
	key := map[view.SortKey]string{
		view.SortByName:  "name",
		view.SortByEmail: "email",
		view.SortByDate:  "date",
	}[m.projection.Key]
	arrow := "↑"
	if m.projection.Order == view.SortDescending {
		arrow = "↓"
	}
	return "sort: " + key + " " + arrow
}

func (m Model) helpLine() string {
	if m.focus == focusForm {
		return "tab/enter: next field • esc: cancel • enter on message: save"
	}
	if m.focus == focusSearch {
		return "type to filter • enter/esc: done"
	}
	return "a: add • e: edit • d: delete • /: search • n/m/t: sort • x: export • q: quit"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
