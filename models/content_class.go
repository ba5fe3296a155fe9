package models

// ContentClass is the category of items a folder contains.
type ContentClass string

const (
	ClassEmail    ContentClass = "Email"
	ClassCalendar ContentClass = "Calendar"
	ClassContacts ContentClass = "Contacts"
	ClassTasks    ContentClass = "Tasks"
)

// Valid reports whether the content class is one of the known categories.
func (c ContentClass) Valid() bool {
	switch c {
	case ClassEmail, ClassCalendar, ClassContacts, ClassTasks:
		return true
	}
	return false
}
