package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// ValidatorFunc builds the rule for one tag entry.
type ValidatorFunc func(field string, value reflect.Value, params []string) Rule

var (
	registryMu sync.RWMutex
	registry   = map[string]ValidatorFunc{
		"required": requiredValidator,
		"min":      minValidator,
		"max":      maxValidator,
		"email":    emailValidator,
		"in":       inValidator,
	}
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterValidator adds a custom validator function to the registry.
func RegisterValidator(name string, fn ValidatorFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// ValidateStruct checks the `validate` tags of a struct, e.g.
// `validate:"required;min:0"`. Rules are separated by semicolons and take
// comma separated params. It returns ValidationErrors listing every failure.
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("validator: must pass a pointer to struct")
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("validator: must pass a pointer to struct")
	}

	var errs ValidationErrors
	validateStruct(rv, "", &errs)
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func validateStruct(rv reflect.Value, prefix string, errs *ValidationErrors) {
	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}
		sf := rt.Field(i)
		tag := sf.Tag.Get("validate")
		if tag == "-" {
			continue
		}

		path := fieldName(sf)
		if prefix != "" {
			path = prefix + "." + path
		}

		switch {
		case field.Kind() == reflect.Struct && tag == "":
			validateStruct(field, path, errs)
		case field.Kind() == reflect.Pointer:
			if field.IsNil() {
				if tag != "" {
					validateField(path, field, tag, errs)
				}
				continue
			}
			if elem := field.Elem(); elem.Kind() == reflect.Struct && tag == "" {
				validateStruct(elem, path, errs)
			} else if tag != "" {
				validateField(path, elem, tag, errs)
			}
		case tag != "":
			validateField(path, field, tag, errs)
		}
	}
}

// fieldName prefers the JSON name so errors match the request payload.
func fieldName(sf reflect.StructField) string {
	if name, _, _ := strings.Cut(sf.Tag.Get("json"), ","); name != "" && name != "-" {
		return name
	}
	return sf.Name
}

func validateField(path string, field reflect.Value, tag string, errs *ValidationErrors) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, ruleStr := range strings.Split(tag, ";") {
		ruleStr = strings.TrimSpace(ruleStr)
		if ruleStr == "" {
			continue
		}
		name, paramStr, _ := strings.Cut(ruleStr, ":")
		var params []string
		if paramStr = strings.TrimSpace(paramStr); paramStr != "" {
			params = strings.Split(paramStr, ",")
			for i := range params {
				params[i] = strings.TrimSpace(params[i])
			}
		}

		fn, ok := registry[strings.TrimSpace(name)]
		if !ok {
			continue
		}
		if rule := fn(path, field, params); rule.Check != nil && !rule.Check() {
			errs.Add(rule.Error)
		}
	}
}

func pass() Rule {
	return Rule{Check: func() bool { return true }}
}

func requiredValidator(field string, value reflect.Value, _ []string) Rule {
	return Rule{
		Check: func() bool {
			switch value.Kind() {
			case reflect.String:
				return strings.TrimSpace(value.String()) != ""
			case reflect.Slice, reflect.Map, reflect.Array:
				return value.Len() > 0
			case reflect.Pointer, reflect.Interface:
				return !value.IsNil()
			default:
				return !value.IsZero()
			}
		},
		Error: ValidationError{Field: field, Message: "is required"},
	}
}

func minValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return pass()
	}
	switch value.Kind() {
	case reflect.String, reflect.Slice, reflect.Array:
		n, _ := strconv.Atoi(params[0])
		unit := "items"
		length := value.Len()
		if value.Kind() == reflect.String {
			unit = "characters"
			length = len([]rune(value.String()))
		}
		return Rule{
			Check: func() bool { return length >= n },
			Error: ValidationError{Field: field, Message: fmt.Sprintf("must have at least %d %s", n, unit)},
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, _ := strconv.ParseInt(params[0], 10, 64)
		return Rule{
			Check: func() bool { return value.Int() >= n },
			Error: ValidationError{Field: field, Message: fmt.Sprintf("must be at least %d", n)},
		}
	case reflect.Float32, reflect.Float64:
		n, _ := strconv.ParseFloat(params[0], 64)
		return Rule{
			Check: func() bool { return value.Float() >= n },
			Error: ValidationError{Field: field, Message: "must be at least " + params[0]},
		}
	default:
		return pass()
	}
}

func maxValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return pass()
	}
	switch value.Kind() {
	case reflect.String, reflect.Slice, reflect.Array:
		n, _ := strconv.Atoi(params[0])
		unit := "items"
		length := value.Len()
		if value.Kind() == reflect.String {
			unit = "characters"
			length = len([]rune(value.String()))
		}
		return Rule{
			Check: func() bool { return length <= n },
			Error: ValidationError{Field: field, Message: fmt.Sprintf("must have at most %d %s", n, unit)},
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, _ := strconv.ParseInt(params[0], 10, 64)
		return Rule{
			Check: func() bool { return value.Int() <= n },
			Error: ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d", n)},
		}
	case reflect.Float32, reflect.Float64:
		n, _ := strconv.ParseFloat(params[0], 64)
		return Rule{
			Check: func() bool { return value.Float() <= n },
			Error: ValidationError{Field: field, Message: "must be at most " + params[0]},
		}
	default:
		return pass()
	}
}

// emailValidator accepts empty strings; combine with required when needed.
func emailValidator(field string, value reflect.Value, _ []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	s := value.String()
	return Rule{
		Check: func() bool { return s == "" || emailRegex.MatchString(s) },
		Error: ValidationError{Field: field, Message: "must be a valid email address"},
	}
}

func inValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String || len(params) == 0 {
		return pass()
	}
	s := value.String()
	return Rule{
		Check: func() bool { return s == "" || slices.Contains(params, s) },
		Error: ValidationError{Field: field, Message: "must be one of " + strings.Join(params, ", ")},
	}
}
