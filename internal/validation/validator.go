// Package validation wraps go-playground/validator with the tags used by the
// ledger's wire payloads and interactive prompts.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)
	proquintRegex = regexp.MustCompile(`^[bdfghjklmnprstvz][aiou][bdfghjklmnprstvz][aiou][bdfghjklmnprstvz](-[bdfghjklmnprstvz][aiou][bdfghjklmnprstvz][aiou][bdfghjklmnprstvz]){7}$`)
)

var (
	once     sync.Once
	validate *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		registerAll(validate)
	})
	return validate
}

func registerAll(v *validator.Validate) {
	_ = v.RegisterValidation("currency", validateCurrency)
	_ = v.RegisterValidation("ledger_id", validateLedgerID)
	_ = v.RegisterValidation("account_kind", validateAccountKind)
	_ = v.RegisterValidation("transaction_kind", validateTransactionKind)
}

// Register adds the ledger tags to Gin's binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerAll(v)
	}
}

// Struct validates s against its `validate` tags. The returned error lists
// every failing field.
func Struct(s any) error {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// Var validates a single value against a tag expression.
func Var(field any, tag string) error {
	return engine().Var(field, tag)
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "currency":
		return field + " must be a 3-letter currency code"
	case "ledger_id":
		return field + " is not a valid identifier"
	case "account_kind":
		return field + " must be Physical or Virtual"
	case "transaction_kind":
		return field + " is not a known transaction type"
	}
	return fmt.Sprintf("%s failed %q", field, fe.Tag())
}

func validateCurrency(fl validator.FieldLevel) bool {
	return currencyRegex.MatchString(fl.Field().String())
}

func validateLedgerID(fl validator.FieldLevel) bool {
	return proquintRegex.MatchString(fl.Field().String())
}

func validateAccountKind(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "physical", "phys", "virtual", "virt":
		return true
	}
	return false
}

func validateTransactionKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Received", "Paid", "MovePhys", "MoveVirt", "Convert", "Opening":
		return true
	}
	return false
}
