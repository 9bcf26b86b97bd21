package avm

import "errors"

var (
	// ErrNullCB58 ...
	ErrNullCB58 = errors.New("cb58 string must not be null")
	// ErrInvalidChecksum ...
	ErrInvalidChecksum = errors.New("invalid checksum")
	// ErrInvalidID ...
	ErrInvalidID = errors.New("invalid id")
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("invalid address")
	// ErrNullTxHex ...
	ErrNullTxHex = errors.New("transaction hex must not be null")
	// ErrUnsupportedCodec ...
	ErrUnsupportedCodec = errors.New("unsupported codec version")
	// ErrUnsupportedType ...
	ErrUnsupportedType = errors.New("unsupported type id")
	// ErrCredentialsMismatch is returned when the number of credentials
	// differs from the number of inputs.
	ErrCredentialsMismatch = errors.New("credentials must match inputs one to one")
	// ErrMalformedTx is returned for bytes the codec cannot parse, trailing
	// bytes included.
	ErrMalformedTx = errors.New("malformed transaction")
	// ErrMemoTooLong ...
	ErrMemoTooLong = errors.New("memo exceeds max length")
	// ErrInvalidSignatureLength ...
	ErrInvalidSignatureLength = errors.New("invalid signature length")
)
