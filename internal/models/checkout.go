package models

// Address is the shipping address draft captured during the first checkout
// phase. Only the server-issued opaque address id is retained once the
// gateway confirms it.
type Address struct {
	RecipientName string `json:"recipient_name"`
	Street        string `json:"street"`
	City          string `json:"city"`
	State         string `json:"state"`
	Phone         string `json:"phone"`
	IsDefault     bool   `json:"is_default"`
}

type AddressFormRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
}

type PaymentFormRequest struct {
	CardNumber    string `json:"card_number"`
	CardName      string `json:"card_name"`
	ExpiryDate    string `json:"expiry_date"`
	CVV           string `json:"cvv"`
	PaymentMethod string `json:"payment_method"`
}

type CheckoutStateResponse struct {
	Phase       string            `json:"phase"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
	Submitting  bool              `json:"submitting"`
}
