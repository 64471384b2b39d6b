package checkout

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/Jurgensen-SJB/supermercado/internal/models"
	"github.com/go-playground/validator/v10"
)

// FieldError flags one failing form field. Field holds the wire name
// (firstName, cvv, ...) so rendering can attach the message inline.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the per-field failures of a wizard step in
// field declaration order. The first entry is the focus target.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}

	return fmt.Sprintf("validation failed for fields: %s", strings.Join(names, ", "))
}

// FocusField returns the field that should receive focus, the first one
// that failed.
func (e *ValidationError) FocusField() string {
	if len(e.Fields) == 0 {
		return ""
	}

	return e.Fields[0].Field
}

// user-facing labels for inline messages
var fieldLabels = map[string]string{
	"firstName":  "Nombre",
	"lastName":   "Apellido",
	"address":    "Dirección",
	"city":       "Ciudad",
	"postalCode": "Código Postal",
	"phone":      "Teléfono",
	"cardNumber": "Número de Tarjeta",
	"expiryDate": "Fecha de Vencimiento",
	"cvv":        "CVV",
	"cardName":   "Nombre en la Tarjeta",
}

func newValidator() *validator.Validate {
	v := validator.New()

	// report wire names, not Go field names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// validateStruct trims nothing; callers pass already-trimmed forms.
// Returns nil or a *ValidationError with one entry per failing field.
func validateStruct(v *validator.Validate, form any) *ValidationError {
	err := v.Struct(form)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ValidationError{Fields: []FieldError{{Field: "", Message: err.Error()}}}
	}

	result := &ValidationError{}

	for _, fieldErr := range validationErrs {
		label := fieldLabels[fieldErr.Field()]
		if label == "" {
			label = fieldErr.Field()
		}

		result.Fields = append(result.Fields, FieldError{
			Field:   fieldErr.Field(),
			Message: fmt.Sprintf("Por favor completa el campo %s", label),
		})
	}

	return result
}

// pickup orders only need a person and a phone number
type pickupAddressForm struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
}

func trimAddressForm(form models.AddressForm) models.AddressForm {
	return models.AddressForm{
		FirstName:  strings.TrimSpace(form.FirstName),
		LastName:   strings.TrimSpace(form.LastName),
		Address:    strings.TrimSpace(form.Address),
		City:       strings.TrimSpace(form.City),
		PostalCode: strings.TrimSpace(form.PostalCode),
		Phone:      strings.TrimSpace(form.Phone),
	}
}

func trimCardForm(form models.CardForm) models.CardForm {
	return models.CardForm{
		CardNumber: strings.TrimSpace(form.CardNumber),
		ExpiryDate: strings.TrimSpace(form.ExpiryDate),
		CVV:        strings.TrimSpace(form.CVV),
		CardName:   strings.TrimSpace(form.CardName),
	}
}
