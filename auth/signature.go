package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/hyperlane-deploy/deploy-api/models"
	"github.com/hyperlane-deploy/deploy-api/validation"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Errors returned by SignatureVerifier.Verify. Their messages are shown to submitters.
var (
	ErrInvalidSignature  = errors.New("Invalid signature")
	ErrTimestampNotFound = errors.New("Timestamp not found in message")
	ErrInvalidTimestamp  = errors.New("Invalid timestamp format")
	ErrExpiredSignature  = errors.New("Expired signature")
)

// DefaultMaxAge is how old a signed message may be before it is rejected
const DefaultMaxAge = 2 * time.Minute

// timestampLabel precedes the signing time inside signed messages
const timestampLabel = "timestamp:"

// timestampLayouts are the ISO-8601 layouts accepted after timestampLabel
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// SignatureVerifier checks a submitter signed a recent message with the wallet they claim
type SignatureVerifier struct {
	// MaxAge is the freshness window of signed messages
	MaxAge time.Duration

	// Now returns the current time
	Now func() time.Time
}

// NewSignatureVerifier creates a SignatureVerifier which uses the system clock
func NewSignatureVerifier(maxAge time.Duration) SignatureVerifier {
	return SignatureVerifier{
		MaxAge: maxAge,
		Now:    time.Now,
	}
}

// Verify returns nil if sig.Signature is a personal message signature of sig.Message by
// sig.Address and the timestamp in the message lies within MaxAge of now. Messages
// signed further in the future than MaxAge are rejected as expired.
func (v SignatureVerifier) Verify(sig models.SignatureVerification) error {
	// {{{1 Check encoding
	if !validation.IsEthAddress(sig.Address) || !validation.IsHexString(sig.Signature) {
		return ErrInvalidSignature
	}

	// {{{1 Recover signer
	valid, err := VerifyPersonalMessage(sig.Address, sig.Message, sig.Signature)
	if err != nil || !valid {
		return ErrInvalidSignature
	}

	// {{{1 Check freshness
	signedAt, err := MessageTimestamp(sig.Message)
	if err != nil {
		return err
	}

	age := v.Now().Sub(signedAt)
	if age > v.MaxAge || age < -v.MaxAge {
		return ErrExpiredSignature
	}

	return nil
}

// VerifyPersonalMessage returns true if signature is an EIP-191 personal message signature
// of message made by the private key behind address
func VerifyPersonalMessage(address, message, signature string) (bool, error) {
	sigBytes, err := hexutil.Decode(signature)
	if err != nil {
		return false, err
	}

	if len(sigBytes) != crypto.SignatureLength {
		return false, errors.New("signature must be 65 bytes")
	}

	// Wallets set the recovery ID to 27 or 28, go-ethereum expects 0 or 1
	if sigBytes[crypto.RecoveryIDOffset] >= 27 {
		sigBytes[crypto.RecoveryIDOffset] -= 27
	}

	pubKey, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sigBytes)
	if err != nil {
		return false, err
	}

	return crypto.PubkeyToAddress(*pubKey) == common.HexToAddress(address), nil
}

// MessageTimestamp extracts the time following the single "timestamp:" label in message
func MessageTimestamp(message string) (time.Time, error) {
	parts := strings.Split(message, timestampLabel)
	if len(parts) != 2 {
		return time.Time{}, ErrTimestampNotFound
	}

	raw := strings.TrimSpace(parts[1])
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}

	return time.Time{}, ErrInvalidTimestamp
}
