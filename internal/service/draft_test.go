package service_test

import (
	"testing"

	"github.com/linemk/nexus-shop/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestValidateDraft_Valid(t *testing.T) {
	assert.NoError(t, service.ValidateDraft(validDraft()))
}

func TestValidateDraft_EmptyForm(t *testing.T) {
	err := service.ValidateDraft(service.OrderDraft{})

	var verr *service.ValidationError
	assert.ErrorAs(t, err, &verr)
	// каждое обязательное поле получает свое сообщение
	assert.Equal(t, map[string]string{
		"fullName":   "Full Name is required",
		"email":      "Invalid email address",
		"address":    "Address is required",
		"city":       "City is required",
		"zip":        "ZIP code is required",
		"cardNumber": "Invalid card number",
		"expiry":     "Format MM/YY",
		"cvc":        "CVC required",
	}, verr.Fields)
}

func TestValidateDraft_Expiry(t *testing.T) {
	cases := []struct {
		name   string
		expiry string
		ok     bool
	}{
		{name: "valid", expiry: "12/27", ok: true},
		{name: "missing slash", expiry: "1227", ok: false},
		{name: "dash separator", expiry: "12-27", ok: false},
		{name: "too long", expiry: "12/277", ok: false},
		{name: "letters", expiry: "ab/cd", ok: false},
		{name: "empty", expiry: "", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := validDraft()
			draft.Expiry = tc.expiry

			err := service.ValidateDraft(draft)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			var verr *service.ValidationError
			assert.ErrorAs(t, err, &verr)
			assert.Equal(t, "Format MM/YY", verr.Fields["expiry"])
		})
	}
}

func TestValidateDraft_ShortCardNumber(t *testing.T) {
	draft := validDraft()
	draft.CardNumber = "4242"

	err := service.ValidateDraft(draft)
	var verr *service.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "Invalid card number", verr.Fields["cardNumber"])
	assert.NotContains(t, verr.Fields, "email")
}

func TestValidateDraft_CurrencyOptional(t *testing.T) {
	draft := validDraft()
	draft.Currency = ""
	assert.NoError(t, service.ValidateDraft(draft))

	draft.Currency = "EUR"
	assert.NoError(t, service.ValidateDraft(draft))
}
