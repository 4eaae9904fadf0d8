package helper

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/tr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	tr_translations "github.com/go-playground/validator/v10/translations/tr"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

const (
	notBlankTag  = "notblank"
	notBlankText = "{0} alanı boş bırakılamaz"
)

// Validator wraps validator/v10 with a Turkish translator so field errors can
// go straight to the client.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func NewValidator() *Validator {
	locale := tr.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("tr")

	v := validator.New()
	_ = tr_translations.RegisterDefaultTranslations(v, trans)

	// JSON tag names in field errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	registerTranslation(v, trans, notBlankTag, notBlankText)

	return &Validator{validate: v, translator: trans}
}

// RegisterEnum adds tag as a validation accepting exactly values.
func (v *Validator) RegisterEnum(tag string, values []string) {
	allowed := make(map[string]struct{}, len(values))
	for _, val := range values {
		allowed[val] = struct{}{}
	}
	_ = v.validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		_, ok := allowed[fl.Field().String()]
		return ok
	})
	registerTranslation(v.validate, v.translator, tag, "{0} alanı şunlardan biri olmalıdır: "+strings.Join(values, ", "))
}

func registerTranslation(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(
		tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Struct validates s. Field failures come back as a 400 *HTTPError whose
// Fields map is keyed by JSON name.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "validate")
	}
	return v.ToHTTPError(verrs)
}

func (v *Validator) ToHTTPError(verrs validator.ValidationErrors) *HTTPError {
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Translate(v.translator)
	}
	return &HTTPError{
		Code:    fiber.StatusBadRequest,
		Message: "Geçersiz veri",
		Fields:  fields,
		Err:     verrs,
	}
}
