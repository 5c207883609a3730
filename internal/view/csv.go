package view

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/KENZY004/contact-management/internal/model"
)

// ErrNoContacts is returned when an export is requested on an empty list;
// no file is produced in that case.
var ErrNoContacts = errors.New("no contacts to export")

// csvHeader is the fixed header row of an export.
const csvHeader = "Name,Email,Phone,Message,Date Added"

// csvDateLayout matches the date format the list displays.
const csvDateLayout = "Jan 2, 2006, 03:04 PM"

// CSV serializes contacts in their current order. Every field is wrapped
// in double quotes; embedded quotes are doubled.
func CSV(contacts []model.Contact) (string, error) {
	if len(contacts) == 0 {
		return "", ErrNoContacts
	}
	var builder strings.Builder
	builder.WriteString(csvHeader)
	builder.WriteString("\n")
	for i, contact := range contacts {
		if i > 0 {
			builder.WriteString("\n")
		}
		row := []string{
			contact.Name,
			contact.Email,
			contact.Phone,
			contact.Message,
			contact.CreatedAt.Format(csvDateLayout),
		}
		for j, field := range row {
			if j > 0 {
				builder.WriteString(",")
			}
			builder.WriteString(`"`)
			builder.WriteString(strings.ReplaceAll(field, `"`, `""`))
			builder.WriteString(`"`)
		}
	}
	return builder.String(), nil
}

// ExportFilename returns the download name for an export performed at the
// given time.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("contacts_%s.csv", now.Format("2006-01-02"))
}

// Export writes the CSV serialization of contacts into dir and returns
// the path of the written file. An empty list is rejected before any file
// is created.
func Export(contacts []model.Contact, dir string) (string, error) {
	content, err := CSV(contacts)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, ExportFilename(time.Now()))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
