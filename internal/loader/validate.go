package loader

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"timetable/internal/faults"
)

const notBlankTag = "notblank"

func newValidator() (*validator.Validate, ut.Translator) {
	v := validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	trans, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	// Report fields by their JSON names, which match the exported columns.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(notBlankTag, notBlankValidation)
	_ = v.RegisterTranslation(notBlankTag, trans,
		func(ut.Translator) error { return nil },
		func(_ ut.Translator, fe validator.FieldError) string {
			return fe.Field() + " cannot be blank"
		})
	return v, trans
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func (l *Loader) validateBatch(b Batch) error {
	for i := range b.Lectures {
		if err := l.check("lecture", i, b.Lectures[i]); err != nil {
			return err
		}
	}
	for i := range b.Enrollments {
		if err := l.check("enrollment", i, b.Enrollments[i]); err != nil {
			return err
		}
	}
	for i := range b.Periods {
		if err := l.check("period", i, b.Periods[i]); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) check(kind string, index int, record any) error {
	err := l.validate.Struct(record)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return faults.Wrap(faults.ErrValidation, stage, "validate "+kind, fmt.Sprintf("record %d", index), err)
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fe.Translate(l.translator))
	}
	return faults.Wrap(faults.ErrValidation, stage, "validate "+kind,
		fmt.Sprintf("record %d %+v: %s", index, record, strings.Join(messages, "; ")), nil)
}
