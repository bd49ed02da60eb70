// Package validation centraliza a validação de entrada das entidades do GoCine
// sobre o go-playground/validator, com um validador singleton e tags próprias:
//
//	notblank         string não pode ser vazia nem só espaços
//	maxbytes=N       tamanho em bytes (não em runes) <= N
//	notfuture        data não pode ser posterior a hoje (UTC)
//	notbefore=DATA   data não pode ser anterior a DATA (YYYY-MM-DD)
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"gocine/internal/domain"
	apperror "gocine/internal/errors"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	// now é substituível em testes.
	now = time.Now
)

// GetValidator devolve a instância singleton, inicializada uma única vez.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Mensagens usam o nome do campo no JSON, não o nome Go.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		// Date é validada como time.Time; data vazia vira nil e falha em "required".
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(domain.Date); ok {
				if d.IsZero() {
					return nil
				}
				return d.Time
			}
			return nil
		}, domain.Date{})

		mustRegister(v, "notblank", notBlank)
		mustRegister(v, "maxbytes", maxBytes)
		mustRegister(v, "notfuture", notFuture)
		mustRegister(v, "notbefore", notBefore)

		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: falha ao registrar tag %q: %v", tag, err))
	}
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

func notFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !domain.DateOf(t).IsAfter(domain.DateOf(now().UTC()))
}

func notBefore(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	limit, err := domain.ParseDate(fl.Param())
	if err != nil {
		return false
	}
	return !domain.DateOf(t).IsBefore(limit)
}

// ValidateStruct valida a struct e traduz as falhas para um ValidationError da aplicação.
// Quando há mais de uma falha, as mensagens são unidas por "; ".
func ValidateStruct(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.NewValidationError(err.Error())
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, translateError(fe))
	}
	return apperror.NewValidationError(strings.Join(messages, "; "))
}

var errorMessageTemplates = map[string]string{
	"required":  "%s é obrigatório",
	"notblank":  "%s não pode ser vazio",
	"notfuture": "%s não pode estar no futuro",
}

var errorMessageWithParam = map[string]string{
	"contains":  "%s deve conter '%s'",
	"maxbytes":  "%s deve ter no máximo %s bytes",
	"notbefore": "%s não pode ser anterior a %s",
	"gte":       "%s deve ser maior ou igual a %s",
}

func translateError(fe validator.FieldError) string {
	field := fe.Field()
	if tpl, ok := errorMessageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(tpl, field)
	}
	if tpl, ok := errorMessageWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(tpl, field, fe.Param())
	}
	return fmt.Sprintf("%s falhou na validação %s", field, fe.Tag())
}
