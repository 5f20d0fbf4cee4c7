package models

// SignatureVerification is the JSON encoded signatureVerification form field. It proves the
// submitter controls Address. Encodings are checked by the signature verifier.
type SignatureVerification struct {
	// Address of the signing wallet, 0x prefixed hex
	Address string `json:"address" validate:"required"`

	// Message which was signed, must contain a "timestamp:" label followed by an
	// ISO-8601 date
	Message string `json:"message" validate:"required"`

	// Signature is the 65 byte personal message signature, 0x prefixed hex
	Signature string `json:"signature" validate:"required"`
}
