package dto

import (
	"trekking/infras/stripe"
	bookingDto "trekking/internal/domains/booking/model/dto"
	"trekking/internal/domains/payment/receipt"
	"trekking/internal/domains/payment/step"
)

type ConfirmPaymentRequest struct {
	ClientSecret    string `json:"client_secret"     validate:"omitempty,max=255"`
	PaymentMethodID string `json:"payment_method_id" validate:"required,max=255"`
	ReceiptEmail    string `json:"receipt_email"     validate:"omitempty,email,max=254"`
}

func (r ConfirmPaymentRequest) ToModel() stripe.CardPayment {
	return stripe.CardPayment{
		PaymentMethodID: r.PaymentMethodID,
		ReceiptEmail:    r.ReceiptEmail,
	}
}

type ConfirmationResponse struct {
	IntentID  string `json:"payment_intent_id"`
	Status    string `json:"status"`
	Succeeded bool   `json:"succeeded"`
	Message   string `json:"message,omitempty"`
}

type PaymentResponse struct {
	Ref           string                      `json:"booking_ref"`
	Phase         string                      `json:"phase"`
	Booking       *bookingDto.BookingResponse `json:"booking,omitempty"`
	Confirmation  *ConfirmationResponse       `json:"confirmation,omitempty"`
	Error         string                      `json:"error,omitempty"`
	LoginRedirect string                      `json:"login_redirect,omitempty"`
	Retryable     bool                        `json:"retryable"`
	CanMarkPaid   bool                        `json:"can_mark_paid"`
}

func (r *PaymentResponse) FromState(state step.State, canMarkPaid bool) {
	r.Ref = state.Ref
	r.Phase = string(state.Phase)
	r.Error = state.LastError
	r.LoginRedirect = state.LoginRedirect
	r.Retryable = state.Retryable
	r.CanMarkPaid = canMarkPaid

	if state.Booking != nil {
		r.Booking = &bookingDto.BookingResponse{}
		r.Booking.FromModel(*state.Booking, state.Quote)
		r.CanMarkPaid = canMarkPaid && !state.Booking.Status.IsSettled()
	}

	if state.Confirmation != nil {
		r.Confirmation = &ConfirmationResponse{
			IntentID:  state.Confirmation.IntentID,
			Status:    state.Confirmation.Status,
			Succeeded: state.Confirmation.Succeeded,
			Message:   state.Confirmation.Message,
		}
	}
}

type PaymentIntentResponse struct {
	Ref           string `json:"booking_ref"`
	IntentID      string `json:"payment_intent_id"`
	ClientSecret  string `json:"client_secret"`
	Phase         string `json:"phase"`
	Error         string `json:"error,omitempty"`
	LoginRedirect string `json:"login_redirect,omitempty"`
}

// ReceiptResult carries the rendered receipt, or where to sign in when the booking could not be read.
type ReceiptResult struct {
	Ref           string
	Receipt       receipt.Receipt
	LoginRedirect string
}
