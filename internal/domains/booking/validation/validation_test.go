package validation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trekking/internal/domains/booking/model"
	"trekking/internal/domains/booking/validation"
)

func validLead() model.LeadTraveler {
	return model.LeadTraveler{
		Title:      "Ms",
		FirstName:  "Pema",
		LastName:   "Sherpa",
		Email:      "pema@example.com",
		Phone:      "+977 980-1234567",
		Experience: model.ExperienceIntermediate,
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{email: "pema@example.com", want: true},
		{email: "  pema.sherpa+trek@mail.example.np ", want: true},
		{email: "pema@example", want: false},
		{email: "pema.example.com", want: false},
		{email: "pema @example.com", want: false},
		{email: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.ValidateEmail(tt.email))
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{phone: "+97798012345678", want: true},
		{phone: "9801234567", want: true},
		{phone: "(980) 123-4567", want: true},
		{phone: "+1 415 555 0100", want: true},
		{phone: "980123456", want: false},
		{phone: "+1234567890123456", want: false},
		{phone: "98012abc45", want: false},
		{phone: "++9801234567", want: false},
		{phone: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.ValidatePhone(tt.phone))
		})
	}
}

func TestValidateExperienceLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{level: "beginner", want: true},
		{level: "Advanced", want: true},
		{level: " EXPERT ", want: true},
		{level: "legendary", want: false},
		{level: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.ValidateExperienceLevel(tt.level))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	national := validation.NormalizePhone("98012345678", "977")
	international := validation.NormalizePhone("+97798012345678", "977")

	assert.Equal(t, "+97798012345678", national)
	assert.Equal(t, national, international)
	assert.Equal(t, national, validation.NormalizePhone(national, "977"))
	assert.Equal(t, "+97798012345678", validation.NormalizePhone("980-1234-5678", "+977"))
	assert.Equal(t, "", validation.NormalizePhone("  ", "977"))
}

func TestComputeFormValid(t *testing.T) {
	start := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		mutate   func(lead *model.LeadTraveler)
		start    time.Time
		party    int
		accepted bool
		want     bool
	}{
		{name: "all valid", start: start, party: 1, accepted: true, want: true},
		{name: "terms not accepted", start: start, party: 1, accepted: false, want: false},
		{name: "no start date", start: time.Time{}, party: 1, accepted: true, want: false},
		{name: "zero party", start: start, party: 0, accepted: true, want: false},
		{name: "blank first name", mutate: func(l *model.LeadTraveler) { l.FirstName = "   " }, start: start, party: 1, accepted: true, want: false},
		{name: "blank last name", mutate: func(l *model.LeadTraveler) { l.LastName = "" }, start: start, party: 1, accepted: true, want: false},
		{name: "bad email", mutate: func(l *model.LeadTraveler) { l.Email = "pema@" }, start: start, party: 1, accepted: true, want: false},
		{name: "bad phone", mutate: func(l *model.LeadTraveler) { l.Phone = "12345" }, start: start, party: 1, accepted: true, want: false},
		{name: "optional fields empty", mutate: func(l *model.LeadTraveler) { l.Country = ""; l.DietaryNotes = "" }, start: start, party: 4, accepted: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := validLead()
			if tt.mutate != nil {
				tt.mutate(&lead)
			}

			assert.Equal(t, tt.want, validation.ComputeFormValid(lead, tt.start, tt.party, tt.accepted))
		})
	}
}

func TestAcceptanceTogglesValidity(t *testing.T) {
	lead := validLead()
	start := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)

	assert.False(t, validation.ComputeFormValid(lead, start, 2, false))
	assert.True(t, validation.ComputeFormValid(lead, start, 2, true))
	assert.False(t, validation.ComputeFormValid(lead, start, 2, false))
}

func TestEvaluate_FieldFlags(t *testing.T) {
	lead := validLead()
	lead.Email = "broken"

	state := validation.Evaluate(lead, time.Time{}, 1, true)

	assert.False(t, state.EmailValid)
	assert.True(t, state.PhoneValid)
	assert.True(t, state.FirstNameValid)
	assert.False(t, state.StartDateSet)
	assert.True(t, state.PartySizeValid)
	assert.True(t, state.Accepted)
	assert.False(t, state.FormValid)
}
