// Package validation derives whether the booking form can be submitted.
package validation

import (
	"regexp"
	"strings"
	"time"

	"trekking/internal/domains/booking/model"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?\d{10,15}$`)
	phoneNoise   = strings.NewReplacer(" ", "", "(", "", ")", "", "-", "")
)

// ValidateEmail catches obvious typos; it is not an RFC 5322 parser.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// CleanPhone strips spaces, parentheses and hyphens.
func CleanPhone(phone string) string {
	return phoneNoise.Replace(strings.TrimSpace(phone))
}

// ValidatePhone accepts an optional leading + followed by 10 to 15 digits.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(CleanPhone(phone))
}

// ValidateExperienceLevel accepts the known levels in any letter case.
func ValidateExperienceLevel(level string) bool {
	return model.ParseExperienceLevel(level).IsValid()
}

// NormalizePhone returns the phone in leading-+ form, prefixing defaultCode to national numbers.
func NormalizePhone(phone, defaultCode string) string {
	cleaned := CleanPhone(phone)
	if cleaned == "" || strings.HasPrefix(cleaned, "+") {
		return cleaned
	}

	return "+" + strings.TrimPrefix(defaultCode, "+") + cleaned
}

// Evaluate derives the per-field flags and the overall submit gate.
func Evaluate(lead model.LeadTraveler, startDate time.Time, partySize int, accepted bool) model.ValidationState {
	state := model.ValidationState{
		EmailValid:     ValidateEmail(lead.Email),
		PhoneValid:     ValidatePhone(lead.Phone),
		FirstNameValid: strings.TrimSpace(lead.FirstName) != "",
		LastNameValid:  strings.TrimSpace(lead.LastName) != "",
		StartDateSet:   !startDate.IsZero(),
		PartySizeValid: partySize > 0,
		Accepted:       accepted,
	}

	state.FormValid = state.StartDateSet &&
		state.PartySizeValid &&
		state.FirstNameValid &&
		state.LastNameValid &&
		state.EmailValid &&
		state.PhoneValid &&
		state.Accepted

	return state
}

// ComputeFormValid is true only when every mandatory condition holds.
func ComputeFormValid(lead model.LeadTraveler, startDate time.Time, partySize int, accepted bool) bool {
	return Evaluate(lead, startDate, partySize, accepted).FormValid
}
