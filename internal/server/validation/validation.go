// Package validation checks the structural shape of request inputs and turns
// violations into common.ValidationError values.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/nutriportal/internal/common"
	"github.com/go-playground/validator/v10"
)

// bcrypt ignores everything past 72 bytes, so longer secrets are refused.
const maxSecretBytes = 72

var crnPattern = regexp.MustCompile(`^[0-9]{6}$`)

// messages are keyed by "field.rule".
var messages = map[string]string{
	"name.required":   "Nome é obrigatório",
	"name.min":        "Nome deve ter no mínimo 3 caracteres",
	"name.max":        "Nome deve ter no máximo 100 caracteres",
	"crn.required":    "CRN é obrigatório",
	"crn.crn":         "CRN deve conter 6 dígitos",
	"email.required":  "Email é obrigatório",
	"email.email":     "Email inválido",
	"email.max":       "Email deve ter no máximo 254 caracteres",
	"senha.required":  "Senha é obrigatória",
	"senha.min":       "Senha deve ter no mínimo 8 caracteres",
	"senha.bcryptmax": "Senha deve ter no máximo 72 bytes",
}

// Validator wraps a configured validator.Validate. It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator with the crn and bcryptmax rules registered and
// JSON tag names used as field names.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	// registration only fails for empty tags or nil funcs
	_ = v.RegisterValidation("crn", func(fl validator.FieldLevel) bool {
		return crnPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("bcryptmax", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxSecretBytes
	})

	return &Validator{v: v}
}

// Struct validates s. It returns nil, a *common.ValidationError listing every
// violated field, or the validator's own error when s is not a struct.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &common.ValidationError{Fields: make([]common.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, common.FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(fe.Field(), fe.Tag()),
		})
	}
	return out
}

// Malformed returns the ValidationError used when a request body cannot be
// decoded at all.
func Malformed() *common.ValidationError {
	return &common.ValidationError{Fields: []common.FieldError{{
		Field:   "body",
		Rule:    "json",
		Message: "Corpo da requisição inválido",
	}}}
}

func message(field, rule string) string {
	if m, ok := messages[field+"."+rule]; ok {
		return m
	}
	return "Campo inválido"
}
