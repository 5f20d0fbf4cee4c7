package auth

import (
	"fmt"
	"testing"
	"time"

	"github.com/hyperlane-deploy/deploy-api/models"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var signedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// sign signs message the way browser wallets do for personal_sign
func sign(t *testing.T, message string) models.SignatureVerification {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)
	sig[crypto.RecoveryIDOffset] += 27

	return models.SignatureVerification{
		Address:   crypto.PubkeyToAddress(key.PublicKey).Hex(),
		Message:   message,
		Signature: hexutil.Encode(sig),
	}
}

// verifierAt returns a verifier whose clock reads now
func verifierAt(now time.Time) SignatureVerifier {
	v := NewSignatureVerifier(DefaultMaxAge)
	v.Now = func() time.Time {
		return now
	}
	return v
}

func message(ts string) string {
	return fmt.Sprintf("Submit warp route USDC/ethereum-arbitrum to the registry\ntimestamp: %s", ts)
}

func TestVerifyFreshSignature(t *testing.T) {
	sig := sign(t, message(signedAt.Format(time.RFC3339Nano)))

	assert.NoError(t, verifierAt(signedAt.Add(30*time.Second)).Verify(sig))
}

func TestVerifyWindowBoundary(t *testing.T) {
	sig := sign(t, message("2024-05-01T12:00:00.000Z"))

	assert.NoError(t, verifierAt(signedAt.Add(2*time.Minute)).Verify(sig),
		"exactly the window should be accepted")
	assert.Equal(t, ErrExpiredSignature,
		verifierAt(signedAt.Add(2*time.Minute+time.Millisecond)).Verify(sig))
	assert.Equal(t, ErrExpiredSignature,
		verifierAt(signedAt.Add(10*time.Minute)).Verify(sig))
}

func TestVerifyFutureTimestamp(t *testing.T) {
	sig := sign(t, message("2024-05-01T12:00:00Z"))

	assert.NoError(t, verifierAt(signedAt.Add(-time.Minute)).Verify(sig))
	assert.Equal(t, ErrExpiredSignature, verifierAt(signedAt.Add(-time.Hour)).Verify(sig))
}

func TestVerifyTimestampMarker(t *testing.T) {
	missing := sign(t, "Submit warp route without a time")
	assert.Equal(t, ErrTimestampNotFound, verifierAt(signedAt).Verify(missing))

	twice := sign(t, "timestamp: 2024-05-01T12:00:00Z\ntimestamp: 2024-05-01T12:00:00Z")
	assert.Equal(t, ErrTimestampNotFound, verifierAt(signedAt).Verify(twice))

	garbage := sign(t, message("yesterday-ish"))
	assert.Equal(t, ErrInvalidTimestamp, verifierAt(signedAt).Verify(garbage))
}

func TestVerifyRejectsWrongSigner(t *testing.T) {
	sig := sign(t, message(signedAt.Format(time.RFC3339)))
	other := sign(t, sig.Message)

	sig.Address = other.Address
	assert.Equal(t, ErrInvalidSignature, verifierAt(signedAt).Verify(sig))
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	sig := sign(t, message(signedAt.Format(time.RFC3339)))
	sig.Message = message(signedAt.Add(time.Second).Format(time.RFC3339))

	assert.Equal(t, ErrInvalidSignature, verifierAt(signedAt).Verify(sig))
}

func TestVerifyRejectsMalformedHex(t *testing.T) {
	good := sign(t, message(signedAt.Format(time.RFC3339)))

	badAddress := good
	badAddress.Address = "0xnothex"
	assert.Equal(t, ErrInvalidSignature, verifierAt(signedAt).Verify(badAddress))

	badSig := good
	badSig.Signature = "deadbeef"
	assert.Equal(t, ErrInvalidSignature, verifierAt(signedAt).Verify(badSig))

	shortSig := good
	shortSig.Signature = "0xdeadbeef"
	assert.Equal(t, ErrInvalidSignature, verifierAt(signedAt).Verify(shortSig))
}

func TestVerifyAcceptsZeroOneRecoveryID(t *testing.T) {
	sig := sign(t, message(signedAt.Format(time.RFC3339)))

	raw, err := hexutil.Decode(sig.Signature)
	require.NoError(t, err)
	raw[crypto.RecoveryIDOffset] -= 27
	sig.Signature = hexutil.Encode(raw)

	assert.NoError(t, verifierAt(signedAt).Verify(sig))
}

func TestMessageTimestamp(t *testing.T) {
	ts, err := MessageTimestamp("hello\ntimestamp:   2024-05-01T12:00:00.123Z  ")
	require.NoError(t, err)
	assert.True(t, ts.Equal(signedAt.Add(123*time.Millisecond)))
}
