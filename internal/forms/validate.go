package forms

import "strings"

// RequiredMessage is the message attached to every missing required field.
const RequiredMessage = "Campo Obrigatório"

// Validate flags every required field that is absent or blank after
// trimming. Pure and order-independent.
func Validate(fs FormState, required []string) Errors {
	errs := Errors{}
	for _, field := range required {
		if strings.TrimSpace(fs[field]) == "" {
			errs[field] = RequiredMessage
		}
	}
	return errs
}
