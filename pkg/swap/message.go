package swap

import (
	"encoding/json"
	"fmt"

	"github.com/xswap-network/xswap/pkg/avm"
)

// References maps the id of every utxo spent by a swap transaction to the
// address that controls it. Signers need it because inputs do not carry
// their owner's address.
type References map[string]string

// ParseReferences decodes a JSON object of utxo id -> address.
func ParseReferences(str string) (References, error) {
	if len(str) <= 0 {
		return nil, ErrNullReferences
	}
	refs := References{}
	if err := json.Unmarshal([]byte(str), &refs); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidReferences, err)
	}
	return refs, nil
}

// String returns the JSON encoding of the references.
func (r References) String() string {
	if r == nil {
		return "{}"
	}
	buf, _ := json.Marshal(map[string]string(r))
	return string(buf)
}

// Merge returns a copy of r extended with the entries of other.
func (r References) Merge(other References) References {
	res := make(References, len(r)+len(other))
	for k, v := range r {
		res[k] = v
	}
	for k, v := range other {
		res[k] = v
	}
	return res
}

// Message is what parties of a swap exchange at every phase: the swap
// transaction and the references of its inputs.
type Message struct {
	Tx         *avm.Tx
	References References
}

// EncodedMessage is the transport format of a Message.
type EncodedMessage struct {
	TxHex          string `json:"txHex"`
	AddrReferences string `json:"addrReferences"`
}

// Encode serializes the message.
func (m *Message) Encode() (*EncodedMessage, error) {
	if m == nil || m.Tx == nil {
		return nil, ErrNullMessage
	}
	txHex, err := m.Tx.ToHex()
	if err != nil {
		return nil, err
	}
	return &EncodedMessage{
		TxHex:          txHex,
		AddrReferences: m.References.String(),
	}, nil
}

// Decode parses the transaction and the references of the message.
func (m EncodedMessage) Decode() (*Message, error) {
	if len(m.TxHex) <= 0 {
		return nil, ErrNullTxHex
	}
	refs, err := ParseReferences(m.AddrReferences)
	if err != nil {
		return nil, err
	}
	tx, err := avm.NewTxFromHex(m.TxHex)
	if err != nil {
		return nil, err
	}
	return &Message{tx, refs}, nil
}
