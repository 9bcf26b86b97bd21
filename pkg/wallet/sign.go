package wallet

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	log "github.com/sirupsen/logrus"
	"github.com/xswap-network/xswap/pkg/avm"
)

const compactSigMagicOffset = 27 + 4

// Signer is what PartialSign needs to fill the credentials of a tx: telling
// whether an address is under its control and signing a message for it.
type Signer interface {
	Controls(address string) bool
	SignMessage(address string, hash []byte) (avm.Signature, error)
}

// Controls returns whether the wallet holds the key of the given address.
func (w *Wallet) Controls(address string) bool {
	return len(address) > 0 && address == w.address
}

// SignMessage signs the given 32-byte hash with the key of address and
// returns the signature in the r || s || recovery id format.
func (w *Wallet) SignMessage(address string, hash []byte) (avm.Signature, error) {
	var sig avm.Signature
	if err := w.validate(); err != nil {
		return sig, err
	}
	if !w.Controls(address) {
		return sig, fmt.Errorf("%w: %s", ErrAddressNotControlled, address)
	}

	compact, err := ecdsa.SignCompact(w.privateKey, hash, true)
	if err != nil {
		return sig, err
	}
	if len(compact) != avm.SignatureLen {
		return sig, avm.ErrInvalidSignatureLength
	}
	copy(sig[:], compact[1:])
	sig[avm.SignatureLen-1] = compact[0] - compactSigMagicOffset

	return sig, nil
}

// RecoverShortID returns the address payload of the key that produced sig
// over hash.
func RecoverShortID(hash []byte, sig avm.Signature) (avm.ShortID, error) {
	compact := make([]byte, avm.SignatureLen)
	compact[0] = sig[avm.SignatureLen-1] + compactSigMagicOffset
	copy(compact[1:], sig[:avm.SignatureLen-1])

	pubkey, _, err := ecdsa.RecoverCompact(compact, hash)
	if err != nil {
		return avm.ShortID{}, err
	}
	return ShortIDFromPubKey(pubkey), nil
}

// PartialSignOpts is the struct given to PartialSign method
type PartialSignOpts struct {
	Tx     *avm.Tx
	Signer Signer
	// References maps the utxo id of every input to its owner address.
	References map[string]string
}

func (o PartialSignOpts) validate() error {
	if o.Tx == nil || o.Tx.Unsigned == nil {
		return ErrNullTx
	}
	if o.Signer == nil {
		return ErrNullSigner
	}
	if len(o.Tx.Credentials) > len(o.Tx.Unsigned.Inputs) {
		return avm.ErrCredentialsMismatch
	}
	return nil
}

// PartialSign signs every input whose owner, looked up in the references by
// utxo id, is controlled by the signer. Any other input is skipped and its
// credential is left as it is. The returned tx is a copy of the given one
// with updated credentials.
func PartialSign(opts PartialSignOpts) (*avm.Tx, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	hash, err := opts.Tx.Unsigned.Hash()
	if err != nil {
		return nil, err
	}

	ins := opts.Tx.Unsigned.Inputs
	creds := make([]*avm.Credential, len(ins))
	for i := range creds {
		creds[i] = &avm.Credential{}
		if i < len(opts.Tx.Credentials) && opts.Tx.Credentials[i] != nil {
			sigs := opts.Tx.Credentials[i].Signatures
			creds[i].Signatures = append([]avm.Signature{}, sigs...)
		}
	}

	for i, in := range ins {
		utxoID := in.UTXOID()
		address, ok := opts.References[utxoID]
		if !ok || !opts.Signer.Controls(address) {
			log.Infof("input %d: skipping, address is not controlled by the signer (%s)", i, utxoID)
			continue
		}

		sig, err := opts.Signer.SignMessage(address, hash)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		if err := verifySignature(hash, sig, address); err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}

		creds[i] = &avm.Credential{Signatures: []avm.Signature{sig}}
		log.Infof("input %d: successfully signed (%s signed with %s)", i, utxoID, address)
	}

	return &avm.Tx{Unsigned: opts.Tx.Unsigned, Credentials: creds}, nil
}

func verifySignature(hash []byte, sig avm.Signature, address string) error {
	signer, err := RecoverShortID(hash, sig)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSignatureVerification, err)
	}
	_, _, expected, err := avm.ParseAddress(address)
	if err != nil {
		return err
	}
	if signer != expected {
		return ErrSignatureVerification
	}
	return nil
}
