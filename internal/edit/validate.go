package edit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gsapre/housetab/internal/model"
)

// Validate checks a pending value for a field. Rules run locally; a
// value that fails here is never sent to the server.
func Validate(field Field, value string) error {
	switch field {
	case FieldAmount:
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("amount %q is not a number", value)
		}
		if v < 0 {
			return fmt.Errorf("amount must not be negative")
		}
		return nil
	case FieldDate:
		if _, ok := model.ParseDay(value); !ok {
			return fmt.Errorf("date %q is not a valid YYYY-MM-DD day", value)
		}
		return nil
	case FieldNeed:
		if value != model.NeedCategoryNeed && value != model.NeedCategoryLuxury {
			return fmt.Errorf("need category must be %s or %s", model.NeedCategoryNeed, model.NeedCategoryLuxury)
		}
		return nil
	case FieldDescription, FieldCategory, FieldCard, FieldWho:
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must not be empty", field)
		}
		return nil
	case FieldNotes:
		return nil // notes may be blank
	default:
		return fmt.Errorf("field %q is not editable", field)
	}
}
