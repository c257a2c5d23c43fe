// Package validation wires go-playground/validator with the CRM's field
// rules and turns failures into field level domain errors.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	apperrors "mcacrm/internal/errors"
	"mcacrm/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nameRegex    = regexp.MustCompile(`^[a-zA-Z\s\-'.]+$`)
	routingRegex = regexp.MustCompile(`^[0-9]{9}$`)
	letterRegex  = regexp.MustCompile(`[a-zA-Z]`)

	once     sync.Once
	instance *validator.Validate
)

// Engine returns the shared validator with every custom rule registered.
func Engine() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		v.RegisterCustomTypeFunc(dateValue, models.Date{})

		rules := map[string]validator.Func{
			"ssn":          validSSN,
			"fein":         validFEIN,
			"usstate":      validState,
			"uszip":        validZip,
			"usphone":      validUSPhone,
			"intlphone":    validIntlPhone,
			"crmemail":     validEmail,
			"nodisposable": notDisposable,
			"personname":   validPersonName,
			"contactname":  validContactName,
			"routing":      validRouting,
			"adult":        validAdult,
			"notfuture":    validNotFuture,
			"since2000":    validSince2000,
			"entitytype":   validEntityType,
		}
		for tag, fn := range rules {
			if err := v.RegisterValidation(tag, fn); err != nil {
				panic(fmt.Sprintf("register validation %s: %v", tag, err))
			}
		}
		instance = v
	})
	return instance
}

// Struct validates s and returns a KindValidation DomainError listing
// each failing field, or nil.
func Struct(s interface{}) error {
	err := Engine().Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Validation(err.Error())
	}

	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return apperrors.Validation("validation failed", fields...)
}

func decimalValue(v reflect.Value) interface{} {
	if d, ok := v.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func dateValue(v reflect.Value) interface{} {
	if d, ok := v.Interface().(models.Date); ok {
		return d.Time
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "numeric":
		return "must contain only digits"
	case "ssn":
		return "must be a valid SSN (XXX-XX-XXXX)"
	case "fein":
		return "must be 9 digits (XX-XXXXXXX)"
	case "usstate":
		return "must be a valid two-letter state code"
	case "uszip":
		return "must be 5 digits (XXXXX) or 9 digits (XXXXX-XXXX)"
	case "usphone":
		return "must be a 10 digit phone number"
	case "intlphone":
		return "must be 10-15 digits"
	case "crmemail":
		return "must be a valid email address"
	case "nodisposable":
		return "disposable or mistyped email domains are not allowed"
	case "personname":
		return "may only contain letters, spaces, hyphens, and apostrophes"
	case "contactname":
		return "must be a real contact name"
	case "routing":
		return "must be 9 digits"
	case "adult":
		return fmt.Sprintf("principal must be between %d and %d years old", MinPrincipalAge, MaxPrincipalAge)
	case "notfuture":
		return "must not be in the future"
	case "since2000":
		return fmt.Sprintf("must not be before %d", MinSubmittedYear)
	case "entitytype":
		return "must be one of: " + strings.Join(EntityTypes, ", ")
	default:
		return "is invalid"
	}
}

func validSSN(fl validator.FieldLevel) bool {
	d := Digits(fl.Field().String())
	if len(d) != 9 {
		return false
	}
	area, _ := strconv.Atoi(d[:3])
	if area == 0 || area == 666 || area >= 900 {
		return false
	}
	return d[3:5] != "00" && d[5:] != "0000"
}

func validFEIN(fl validator.FieldLevel) bool {
	return len(Digits(fl.Field().String())) == 9
}

func validState(fl validator.FieldLevel) bool {
	return usStates[NormalizeState(fl.Field().String())]
}

func validZip(fl validator.FieldLevel) bool {
	n := len(Digits(fl.Field().String()))
	return n == 5 || n == 9
}

func validUSPhone(fl validator.FieldLevel) bool {
	d := Digits(fl.Field().String())
	return len(d) == 10 || (len(d) == 11 && d[0] == '1')
}

func validIntlPhone(fl validator.FieldLevel) bool {
	n := len(Digits(fl.Field().String()))
	return n >= 10 && n <= 15
}

func validEmail(fl validator.FieldLevel) bool {
	v := NormalizeEmail(fl.Field().String())
	if !emailRegex.MatchString(v) || strings.Contains(v, "..") {
		return false
	}
	return !strings.HasPrefix(v, ".") && !strings.HasSuffix(v, ".")
}

func notDisposable(fl validator.FieldLevel) bool {
	v := NormalizeEmail(fl.Field().String())
	for _, suffix := range typoSuffixes {
		if strings.HasSuffix(v, suffix) {
			return false
		}
	}
	at := strings.LastIndex(v, "@")
	return !disposableDomains[v[at+1:]]
}

func validPersonName(fl validator.FieldLevel) bool {
	v := CleanSpaces(fl.Field().String())
	return nameRegex.MatchString(v) && letterRegex.MatchString(v)
}

func validContactName(fl validator.FieldLevel) bool {
	v := CleanSpaces(fl.Field().String())
	return len(v) >= 2 && letterRegex.MatchString(v) && !placeholderNames[strings.ToLower(v)]
}

func validRouting(fl validator.FieldLevel) bool {
	return routingRegex.MatchString(fl.Field().String())
}

func fieldTime(fl validator.FieldLevel) (time.Time, bool) {
	t, ok := fl.Field().Interface().(time.Time)
	return t, ok
}

func validAdult(fl validator.FieldLevel) bool {
	dob, ok := fieldTime(fl)
	if !ok {
		return false
	}
	age := AgeOn(dob, today())
	return !dob.After(today()) && age >= MinPrincipalAge && age <= MaxPrincipalAge
}

func validNotFuture(fl validator.FieldLevel) bool {
	t, ok := fieldTime(fl)
	return ok && !t.After(today())
}

func validSince2000(fl validator.FieldLevel) bool {
	t, ok := fieldTime(fl)
	return ok && t.Year() >= MinSubmittedYear
}

func validEntityType(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	for _, t := range EntityTypes {
		if t == v {
			return true
		}
	}
	return false
}

// AgeOn is the age in whole years of someone born on dob at the date on.
func AgeOn(dob, on time.Time) int {
	age := on.Year() - dob.Year()
	if on.Month() < dob.Month() || (on.Month() == dob.Month() && on.Day() < dob.Day()) {
		age--
	}
	return age
}
