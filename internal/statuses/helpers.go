package statuses

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"
)

const maxNameLength = 64

var slugRule = validation.By(func(value any) error {
	name, _ := value.(string)
	if !slug.IsValid(name) {
		return errors.New("must be a slug (lowercase letters, digits and separators)")
	}
	return nil
})

func validateName(name string) error {
	if name == "" {
		return &ValidationError{Field: "name", Err: ErrStatusNameRequired}
	}
	if err := validation.Validate(name, validation.Length(1, maxNameLength), slugRule); err != nil {
		return &ValidationError{Field: "name", Err: fmt.Errorf("%w: %w", ErrStatusNameInvalid, err)}
	}
	return nil
}

func cloneStatus(status *Status) *Status {
	if status == nil {
		return nil
	}
	cloned := *status
	return &cloned
}

func cloneStatusSlice(src []*Status) []*Status {
	if len(src) == 0 {
		return nil
	}
	out := make([]*Status, len(src))
	for i, status := range src {
		out[i] = cloneStatus(status)
	}
	return out
}

func isNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
