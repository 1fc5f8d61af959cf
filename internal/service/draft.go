package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// OrderDraft — данные формы оформления заказа.
// Платёжные поля существуют только на время отправки и никуда не сохраняются
type OrderDraft struct {
	FullName   string `json:"fullName" validate:"required,min=2"`
	Email      string `json:"email" validate:"required,email"`
	Address    string `json:"address" validate:"required,min=5"`
	City       string `json:"city" validate:"required,min=2"`
	Zip        string `json:"zip" validate:"required,min=4"`
	CardNumber string `json:"cardNumber" validate:"required,min=16,max=19"`
	Expiry     string `json:"expiry" validate:"required,expiry"`
	CVC        string `json:"cvc" validate:"required,min=3"`
	Currency   string `json:"currency,omitempty"`
}

// ValidationError — ошибки валидации формы по полям
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("order draft validation failed: %d field(s)", len(e.Fields))
}

var draftValidate = newDraftValidator()

func newDraftValidator() *validator.Validate {
	v := validator.New()
	// имена полей в ошибках — как в json, их показывает фронтенд
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// срок действия карты: строго "MM/YY"
	if err := v.RegisterValidation("expiry", validateExpiry); err != nil {
		panic(err)
	}
	return v
}

func validateExpiry(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 5 || s[2] != '/' {
		return false
	}
	for i, c := range s {
		if i == 2 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// сообщения для пользователя по каждому полю формы
var draftMessages = map[string]string{
	"fullName":   "Full Name is required",
	"email":      "Invalid email address",
	"address":    "Address is required",
	"city":       "City is required",
	"zip":        "ZIP code is required",
	"cardNumber": "Invalid card number",
	"expiry":     "Format MM/YY",
	"cvc":        "CVC required",
}

// ValidateDraft проверяет форму локально и синхронно, без обращений к шлюзам.
// При любом нарушении возвращает *ValidationError с картой поле → сообщение
func ValidateDraft(draft OrderDraft) error {
	err := draftValidate.Struct(draft)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := draftMessages[fe.Field()]
		if !ok {
			msg = "invalid value"
		}
		fields[fe.Field()] = msg
	}
	return &ValidationError{Fields: fields}
}
