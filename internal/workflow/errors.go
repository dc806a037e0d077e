package workflow

import (
	"errors"
	"fmt"
)

var (
	ErrDatabaseRequired  = errors.New("workflow: database is required")
	ErrCatalogRequired   = errors.New("workflow: status catalog is required")
	ErrNewRecordRequired = errors.New("workflow: record constructor is required")
	ErrSubjectRequired   = errors.New("workflow: subject is required")
	ErrInvalidColumn     = errors.New("workflow: invalid column name")
	ErrUnknownSubject    = errors.New("workflow: no workflow registered for subject type")
)

// UnknownStatusError is returned when a transition names a status that is
// missing from the catalog. Nothing is written in that case.
type UnknownStatusError struct {
	Name string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("workflow: unknown approval status %q", e.Name)
}

// NotFoundError reports a lookup that matched no subject. Status is set when
// the lookup was restricted to a status. Exists is set when the record is
// stored but sits in another status; CurrentStatus then names that status and
// is empty when the record has none.
type NotFoundError struct {
	SubjectType   string
	ID            string
	Status        string
	Exists        bool
	CurrentStatus string
}

// WrongStatus reports whether the record exists but is not in Status.
func (e *NotFoundError) WrongStatus() bool {
	return e.Exists && e.Status != ""
}

func (e *NotFoundError) Error() string {
	switch {
	case e.WrongStatus() && e.CurrentStatus != "":
		return fmt.Sprintf("workflow: %s %q has status %q, not %q", e.SubjectType, e.ID, e.CurrentStatus, e.Status)
	case e.WrongStatus():
		return fmt.Sprintf("workflow: %s %q has no status, not %q", e.SubjectType, e.ID, e.Status)
	case e.ID != "" && e.Status != "":
		return fmt.Sprintf("workflow: %s %q not found with status %q", e.SubjectType, e.ID, e.Status)
	case e.ID != "":
		return fmt.Sprintf("workflow: %s %q not found", e.SubjectType, e.ID)
	case e.Status != "":
		return fmt.Sprintf("workflow: no %s found with status %q", e.SubjectType, e.Status)
	default:
		return fmt.Sprintf("workflow: %s not found", e.SubjectType)
	}
}
