package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/xswap-network/xswap/pkg/swap"
)

// Role is the side of the swap the local wallet plays.
type Role string

const (
	// RoleMaker ...
	RoleMaker Role = "maker"
	// RoleTaker ...
	RoleTaker Role = "taker"
)

// Timestamp holds the unix time of every step reached by an offer.
type Timestamp struct {
	Make     int64
	Take     int64
	Accept   int64
	Complete int64
	Fail     int64
}

// Offer is the local journal entry of a swap, as seen by one party. The swap
// itself does not depend on it: all its state travels within the messages
// exchanged by the parties.
type Offer struct {
	ID      uuid.UUID
	Role    Role
	Wallet  string
	Network string
	// Asset is sold by the maker for Price of fee asset.
	Asset  string
	Amount uint64
	Price  uint64
	Status swap.Status
	// InputIDs are the ids of the utxos spent by the made offer.
	InputIDs       []string
	TxHex          string
	AddrReferences string
	TxID           string
	FailReason     string
	CreatedAt      int64
	Timestamp      Timestamp
}

// NewOffer returns a new offer for the given wallet. A maker offer starts
// MakePending, a taker one starts TakePending since it joins an offer already
// made.
func NewOffer(role Role, wallet, network string) (*Offer, error) {
	var status swap.Status
	switch role {
	case RoleMaker:
		status = swap.StatusMakePending
	case RoleTaker:
		status = swap.StatusTakePending
	default:
		return nil, ErrOfferInvalidRole
	}
	if len(wallet) <= 0 {
		return nil, ErrOfferNullWallet
	}
	return &Offer{
		ID:        uuid.New(),
		Role:      role,
		Wallet:    wallet,
		Network:   network,
		Status:    status,
		CreatedAt: time.Now().Unix(),
	}, nil
}

// Make brings a maker offer from MakePending to TakePending, recording the
// made message and its terms.
func (o *Offer) Make(msg swap.EncodedMessage, terms swap.Terms, inputIDs []string) (bool, error) {
	if o.Status.Code() >= swap.StatusTakePending.Code() {
		return true, nil
	}
	if o.Role != RoleMaker {
		return false, ErrOfferWrongRole
	}
	if !o.Status.CanMoveTo(swap.StatusTakePending) {
		return false, ErrOfferMustBeMakePending
	}
	if len(msg.TxHex) <= 0 {
		return false, ErrOfferNullTx
	}

	o.setTerms(terms)
	o.InputIDs = inputIDs
	o.TxHex = msg.TxHex
	o.AddrReferences = msg.AddrReferences
	o.Status = swap.StatusTakePending
	o.Timestamp.Make = time.Now().Unix()
	return true, nil
}

// Take brings a taker offer to AcceptPending, recording the taken message.
func (o *Offer) Take(msg swap.EncodedMessage, terms swap.Terms, inputIDs []string) (bool, error) {
	if o.Status.Code() >= swap.StatusAcceptPending.Code() {
		return true, nil
	}
	if o.Role != RoleTaker {
		return false, ErrOfferWrongRole
	}
	if !o.Status.CanMoveTo(swap.StatusAcceptPending) {
		return false, ErrOfferMustBeTakePending
	}
	if len(msg.TxHex) <= 0 {
		return false, ErrOfferNullTx
	}

	o.setTerms(terms)
	o.InputIDs = inputIDs
	o.TxHex = msg.TxHex
	o.AddrReferences = msg.AddrReferences
	o.Status = swap.StatusAcceptPending
	o.Timestamp.Take = time.Now().Unix()
	return true, nil
}

// Accept records the fully signed message of a maker offer and brings it to
// AcceptPending, the status of signed offers not broadcasted yet.
func (o *Offer) Accept(msg swap.EncodedMessage, txID string) (bool, error) {
	if o.Status.Code() >= swap.StatusComplete.Code() {
		return true, nil
	}
	if o.Role != RoleMaker {
		return false, ErrOfferWrongRole
	}
	// an accepted offer whose broadcast failed can be accepted again
	if o.Status != swap.StatusAcceptPending &&
		!o.Status.CanMoveTo(swap.StatusAcceptPending) {
		return false, ErrOfferMustBeTakePending
	}
	if len(msg.TxHex) <= 0 {
		return false, ErrOfferNullTx
	}

	o.TxHex = msg.TxHex
	o.AddrReferences = msg.AddrReferences
	o.TxID = txID
	o.Status = swap.StatusAcceptPending
	o.Timestamp.Accept = time.Now().Unix()
	return true, nil
}

// Complete marks the offer as broadcasted with the given txid.
func (o *Offer) Complete(txID string) (bool, error) {
	if o.Status == swap.StatusComplete {
		return true, nil
	}
	if !o.Status.CanMoveTo(swap.StatusComplete) {
		return false, ErrOfferMustBeAcceptPending
	}
	if len(txID) <= 0 {
		return false, ErrOfferNullTxID
	}

	o.TxID = txID
	o.Status = swap.StatusComplete
	o.Timestamp.Complete = time.Now().Unix()
	return true, nil
}

// Fail brings a non final offer to the Failed status.
func (o *Offer) Fail(reason string) {
	if !o.Status.CanMoveTo(swap.StatusFailed) {
		return
	}
	o.Status = swap.StatusFailed
	o.FailReason = reason
	o.Timestamp.Fail = time.Now().Unix()
}

// SpendsAll returns whether every input of the offer is among the given utxo
// ids.
func (o *Offer) SpendsAll(utxoIDs []string) bool {
	if len(o.InputIDs) <= 0 {
		return false
	}
	set := make(map[string]struct{}, len(utxoIDs))
	for _, id := range utxoIDs {
		set[id] = struct{}{}
	}
	for _, id := range o.InputIDs {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}

func (o *Offer) setTerms(terms swap.Terms) {
	o.Asset = terms.Asset
	o.Amount = terms.Amount
	o.Price = terms.Price
}
