package models

// Profile is the identity-provider view of the signed-in user, sent to the
// backend's idempotent profile upsert once per session.
type Profile struct {
	SubjectID string `json:"subjectId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	PhotoURL  string `json:"photoUrl"`
}

// PaymentResult is the signed outcome the external checkout hands back on
// completion. It is forwarded to the backend verbatim for verification.
type PaymentResult struct {
	OrderID   string `json:"gatewayOrderId"`
	PaymentID string `json:"gatewayPaymentId"`
	Signature string `json:"gatewaySignature"`
}
