package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ProjectInput is the payload for both creating and replacing a project.
type ProjectInput struct {
	Name        string    `json:"name" validate:"required,min=3,max=100"`
	Description string    `json:"description" validate:"max=500"`
	DueDate     DateValue `json:"dueDate" validate:"required,duedate"`
	Status      string    `json:"status" validate:"required,oneof=not-started in-progress completed"`
	ImageID     string    `json:"imageId" validate:"max=100"`
	ImageURL    string    `json:"imageUrl" validate:"max=200"`
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,personname,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8,letterdigit,max=50"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8,letterdigit,max=50"`
}

func (in *ProjectInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
}

func (in *RegisterInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Password = strings.TrimSpace(in.Password)
}

func (in *LoginInput) normalize() {
	in.Email = strings.TrimSpace(in.Email)
	in.Password = strings.TrimSpace(in.Password)
}

// Accepted due date layouts, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DateValue is a due date as sent by clients: a date string or a
// JavaScript timestamp in milliseconds since the epoch. Other JSON types are
// kept verbatim so validation reports them as invalid dates.
type DateValue string

func (d *DateValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*d = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = DateValue(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			*d = DateValue(b)
			return nil
		}
		ms, err := n.Float64()
		if err != nil {
			*d = DateValue(b)
			return nil
		}
		*d = DateValue(time.UnixMilli(int64(ms)).UTC().Format(time.RFC3339Nano))
	}
	return nil
}

// parseDate parses s using the accepted layouts, normalizing to UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// '-, is a range (apostrophe through comma): ( ) * + are accepted, a bare hyphen is not.
var personNameRe = regexp.MustCompile(`^[a-zA-Z '-,.]+$`)

func hasLetterAndDigit(s string) bool {
	var letter, digit bool
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return letter && digit
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, "duedate", func(fl validator.FieldLevel) bool {
		_, err := parseDate(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "personname", func(fl validator.FieldLevel) bool {
		return personNameRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "letterdigit", func(fl validator.FieldLevel) bool {
		return hasLetterAndDigit(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

var fieldLabels = map[string]string{
	"name":        "Name",
	"description": "Description",
	"dueDate":     "Due date",
	"status":      "Status",
	"email":       "Email",
	"password":    "Password",
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

func messageFor(field string, fe validator.FieldError) string {
	l := label(field)
	switch fe.Tag() {
	case "required":
		return l + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", l, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", l, fe.Param())
	case "email":
		return l + " must be a valid email address"
	case "oneof":
		return "Invalid " + strings.ToLower(l)
	case "duedate":
		return l + " must be a valid date"
	case "personname":
		return l + ` must only contain letters, spaces and characters: '-,.`
	case "letterdigit":
		return l + " must contain at least one letter and one number"
	default:
		return l + " is invalid"
	}
}

func jsonName(f reflect.StructField) string {
	if name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]; name != "" && name != "-" {
		return name
	}
	return f.Name
}

// validateStruct checks every rule of every field of in, in declared order,
// and collects all violations; a field may report several. A field that
// fails "required" reports only that.
func validateStruct(in any) error {
	v := reflect.Indirect(reflect.ValueOf(in))
	t := v.Type()

	var msgs []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("validate")
		if tag == "" {
			continue
		}
		name := jsonName(f)
		value := v.Field(i).Interface()

		for _, rule := range strings.Split(tag, ",") {
			err := validate.Var(value, rule)
			if err == nil {
				continue
			}
			var errs validator.ValidationErrors
			if !errors.As(err, &errs) {
				return err
			}
			for _, fe := range errs {
				msgs = append(msgs, messageFor(name, fe))
			}
			if rule == "required" {
				break
			}
		}
	}

	if len(msgs) == 0 {
		return nil
	}
	return &ValidationError{Messages: msgs}
}

// ValidateProject normalizes and checks a project payload.
func ValidateProject(in *ProjectInput) error {
	in.normalize()
	return validateStruct(in)
}
