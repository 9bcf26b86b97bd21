package swap

import "errors"

var (
	// ErrNullWallet ...
	ErrNullWallet = errors.New("wallet must not be null")
	// ErrNullMessage ...
	ErrNullMessage = errors.New("swap message must not be null")
	// ErrNullTxHex ...
	ErrNullTxHex = errors.New("transaction hex must not be null")
	// ErrNullReferences ...
	ErrNullReferences = errors.New("address references must not be null")
	// ErrInvalidReferences ...
	ErrInvalidReferences = errors.New(
		"address references must be a JSON object mapping utxo ids to addresses",
	)
	// ErrNullAsset ...
	ErrNullAsset = errors.New("asset to sell must not be null")
	// ErrZeroAmount ...
	ErrZeroAmount = errors.New("amount to sell must be positive")
	// ErrZeroPrice ...
	ErrZeroPrice = errors.New("requested amount of fee asset must be positive")
	// ErrSellingFeeAsset ...
	ErrSellingFeeAsset = errors.New("the fee asset can only be requested, not sold")
	// ErrNetworkMismatch ...
	ErrNetworkMismatch = errors.New("transaction belongs to another network or chain")

	// ErrInsufficientFunds is returned when the wallet does not hold any of
	// the asset to spend.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrNotEnoughAsset is returned when the wallet holds less of the asset
	// than the amount to spend.
	ErrNotEnoughAsset = errors.New("not enough assets to be sent")
	// ErrNoSuitableUnspent is returned when no single utxo covers the
	// amount to sell.
	ErrNoSuitableUnspent = errors.New("no single utxo covers the amount to be sent")
	// ErrNotEnoughFeeAsset is returned when no single fee asset utxo covers
	// the requested price plus network fee.
	ErrNotEnoughFeeAsset = errors.New("not enough avax in the selected utxo")

	// ErrInvalidOffer ...
	ErrInvalidOffer = errors.New("invalid offer")
	// ErrOfferAlreadySigned ...
	ErrOfferAlreadySigned = errors.New("offer must not carry signatures before being taken")
	// ErrMissingReference ...
	ErrMissingReference = errors.New("unsigned input has no address reference")
	// ErrOfferMismatch ...
	ErrOfferMismatch = errors.New("transaction does not extend the given offer")
	// ErrUnknownOffer is returned when accepting an offer that is neither
	// known nor described by the expected terms.
	ErrUnknownOffer = errors.New("offer is unknown, expected terms must be given")
	// ErrTermsNotHonored ...
	ErrTermsNotHonored = errors.New("transaction does not honor the expected terms")
	// ErrTxNotFullySigned ...
	ErrTxNotFullySigned = errors.New("transaction is not fully signed")
)
