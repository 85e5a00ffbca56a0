package report

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
)

// ErrInvalidReport marks a submission that is rejected at the boundary.
var ErrInvalidReport = errors.New("invalid report format")

// ValidationError lists the required fields a submission was missing.
type ValidationError struct {
	Fields []string
	Cause  error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: missing %s", ErrInvalidReport, strings.Join(e.Fields, ", "))
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", ErrInvalidReport, e.Cause)
	}
	return ErrInvalidReport.Error()
}

func (e *ValidationError) Unwrap() error { return ErrInvalidReport }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Parse decodes and validates a submitted payload. A payload is valid iff
// it carries a non-empty projectName and a non-null dependencies field.
func Parse(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, &ValidationError{Cause: err}
	}
	if err := Validate(&r); err != nil {
		return nil, err
	}
	r.raw = append([]byte(nil), data...)
	return &r, nil
}

// Validate checks the required fields of r.
func Validate(r *Report) error {
	if r == nil {
		return &ValidationError{Fields: []string{"projectName", "dependencies"}}
	}
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return &ValidationError{Fields: fields}
	}
	return &ValidationError{Cause: err}
}

type reportAlias Report

// Raw returns the payload as submitted. Reports built in code are encoded
// on demand.
func (r *Report) Raw() []byte {
	if r == nil {
		return nil
	}
	if r.raw != nil {
		return r.raw
	}
	data, err := json.Marshal((*reportAlias)(r))
	if err != nil {
		return nil
	}
	return data
}

// Equal reports whether a and b are structurally identical payloads.
// Key order and whitespace are irrelevant.
func Equal(a, b *Report) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	var av, bv any
	if err := json.Unmarshal(a.Raw(), &av); err != nil {
		return false
	}
	if err := json.Unmarshal(b.Raw(), &bv); err != nil {
		return false
	}
	return reflect.DeepEqual(av, bv)
}
