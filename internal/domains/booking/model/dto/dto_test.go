package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trekking/internal/domains/booking/form"
	"trekking/internal/domains/booking/model"
	"trekking/internal/domains/booking/model/dto"
	"trekking/internal/domains/booking/pricing"
	trekModel "trekking/internal/domains/trek/model"
	"trekking/shared/money"
	"trekking/shared/validator"
)

func ptr(s string) *string {
	return &s
}

func TestUpdateLeadRequest_Changes(t *testing.T) {
	req := dto.UpdateLeadRequest{
		Phone:     ptr("+977 9812345678"),
		FirstName: ptr("Pasang"),
		Email:     ptr(""),
	}

	assert.Equal(t, []dto.FieldChange{
		{Name: model.FieldFirstName, Value: "Pasang"},
		{Name: model.FieldEmail, Value: ""},
		{Name: model.FieldPhone, Value: "+977 9812345678"},
	}, req.Changes())

	assert.Empty(t, dto.UpdatePreferencesRequest{}.Changes())
}

func TestUpdateLeadRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.UpdateLeadRequest
		wantMsg string
	}{
		{name: "absent phone", req: dto.UpdateLeadRequest{}},
		{name: "formatted phone", req: dto.UpdateLeadRequest{Phone: ptr("(980) 123-45678")}},
		{name: "short phone", req: dto.UpdateLeadRequest{Phone: ptr("12345")}, wantMsg: "phone must be a valid phone number"},
		{name: "capitalised level", req: dto.UpdateLeadRequest{ExperienceLevel: ptr("Advanced")}},
		{name: "padded level", req: dto.UpdateLeadRequest{ExperienceLevel: ptr(" EXPERT ")}},
		{name: "cleared level", req: dto.UpdateLeadRequest{ExperienceLevel: ptr("")}},
		{name: "unknown level", req: dto.UpdateLeadRequest{ExperienceLevel: ptr("pro")}, wantMsg: "experience_level must be one of beginner intermediate advanced expert"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)
			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestSetStartDateRequest_Validation(t *testing.T) {
	assert.NoError(t, validator.ValidateStruct(&dto.SetStartDateRequest{StartDate: "2026-02-08"}))
	assert.Error(t, validator.ValidateStruct(&dto.SetStartDateRequest{StartDate: "08/02/2026"}))
	assert.Error(t, validator.ValidateStruct(&dto.SetStartDateRequest{}))
}

func TestQuoteResponse_FromModel(t *testing.T) {
	var res dto.QuoteResponse
	res.FromModel(pricing.Quote(money.FromFloat(1490), 3), "USD")

	assert.Equal(t, 4470.0, res.TotalPrice)
	assert.Equal(t, 894.0, res.InitialPayment)
	assert.Equal(t, 3576.0, res.DueAmount)
	assert.Equal(t, "USD 4,470.00", res.TotalDisplay)
	assert.Equal(t, "USD 894.00", res.InitialDisplay)
	assert.Equal(t, "USD 3,576.00", res.DueDisplay)
	assert.True(t, res.Available)
}

func TestDraftResponse_FromState(t *testing.T) {
	start := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)

	state := form.State{
		Trek:      trekModel.Trek{Slug: "ebc", Name: "Everest Base Camp", Duration: "10 Days", Currency: "USD"},
		Dates:     model.TripDates{Start: start, End: start.AddDate(0, 0, 9)},
		PartySize: 1,
		Stage:     form.StageHandoff,
		Quote:     pricing.Quote(money.FromFloat(1490), 1),
		Handoff: &model.Handoff{
			BookingRef: "BK-1",
			Status:     model.StatusPending,
			Quote:      pricing.Split(money.FromFloat(1490)),
			Currency:   "USD",
		},
		Warnings: []model.Warning{{Code: model.WarningDurationMismatch, Message: "mismatch"}},
	}

	var res dto.DraftResponse
	res.FromState("draft-1", state)

	assert.Equal(t, "draft-1", res.ID)
	assert.Equal(t, "2026-02-08", res.StartDate)
	assert.Equal(t, "2026-02-17", res.EndDate)
	assert.Equal(t, "handoff", res.Stage)
	require.NotNil(t, res.Handoff)
	assert.Equal(t, "/payment/BK-1", res.Handoff.PaymentPath)
	assert.Equal(t, 298.0, res.Handoff.Quote.InitialPayment)
	assert.Equal(t, 1192.0, res.Handoff.Quote.DueAmount)
	assert.Equal(t, []dto.WarningResponse{{Code: model.WarningDurationMismatch, Message: "mismatch"}}, res.Warnings)
}
