// Package validation проверяет входящие данные до того, как они попадут в хранилище.
package validation

import (
	"Watchlist/internal/model"
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldError нарушение правила для одного поля.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error ошибка валидации со списком нарушений по полям.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewError собирает ошибку из готовых нарушений.
func NewError(fields ...FieldError) *Error {
	return &Error{Fields: fields}
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	MaxPasswordBytes = 72
)

// Сумма в начале строки: $1M, $1,000,000, 8.5 K. Хвост после суффикса допускается ("$3M/ep").
var budgetAmountRe = regexp.MustCompile(`(?i)^\$?\d+(?:,\d{3})*(?:\.\d+)?\s*[KMB]?`)

var budgetWords = map[string]struct{}{
	"low": {}, "medium": {}, "high": {}, "unknown": {}, "tbd": {}, "n/a": {},
}

// IsBudget проверяет свободный текст бюджета.
func IsBudget(s string) bool {
	if _, ok := budgetWords[strings.ToLower(s)]; ok {
		return true
	}
	return budgetAmountRe.MatchString(s)
}

var labels = map[string]string{
	"yearTime":  "Year/Time",
	"imageUrl":  "Image URL",
	"avatarUrl": "Avatar URL",
}

// Validator обёртка над go-playground/validator с правилами предметной области.
type Validator struct {
	v *validator.Validate
}

// New создаёт валидатор с зарегистрированными правилами budget и entrytype.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// в ошибках используем имена полей из JSON
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("budget", func(fl validator.FieldLevel) bool {
		return IsBudget(fl.Field().String())
	})
	// bcrypt принимает не больше 72 байт, а max считает руны
	_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})
	_ = v.RegisterValidation("entrytype", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseEntryType(fl.Field().String())
		return ok
	})

	return &Validator{v: v}
}

// Struct проверяет структуру по тегам validate.
// Возвращает *Error при нарушениях правил.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	label := labelOf(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		if fe.Param() == "1" {
			return label + " is required"
		}
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return label + " too long"
	case "email":
		return "Invalid email format"
	case "bcryptlen":
		return fmt.Sprintf("%s must not exceed %d bytes", label, MaxPasswordBytes)
	case "entrytype":
		return "Type must be Movie or TV Show"
	case "budget":
		return `Budget must be in format like $1M, $100K, $1.5B, or text like "Low", "High", etc.`
	}
	return label + " is invalid"
}

func labelOf(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	r := []rune(field)
	if len(r) == 0 {
		return field
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// ParsePagination разбирает page и limit из query-строки.
// Пустые значения заменяются значениями по умолчанию, некорректные отклоняются.
func ParsePagination(pageStr, limitStr string) (page, limit int, err error) {
	var fields []FieldError

	page, ok := parsePositive(pageStr, DefaultPage)
	if !ok {
		fields = append(fields, FieldError{Field: "page", Message: "Page must be a positive integer"})
	}
	limit, ok = parsePositive(limitStr, DefaultLimit)
	if !ok {
		fields = append(fields, FieldError{Field: "limit", Message: "Limit must be a positive integer"})
	} else if limit > MaxLimit {
		fields = append(fields, FieldError{Field: "limit", Message: fmt.Sprintf("Limit must not exceed %d", MaxLimit)})
	}

	// page*limit должен помещаться в int, иначе смещение переполнится
	if len(fields) == 0 && page > math.MaxInt/limit {
		fields = append(fields, FieldError{Field: "page", Message: "Page is out of range"})
	}

	if len(fields) > 0 {
		return 0, 0, NewError(fields...)
	}
	return page, limit, nil
}

func parsePositive(s string, def int) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
