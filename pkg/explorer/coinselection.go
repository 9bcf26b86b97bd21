package explorer

// SelectUnspent returns the utxo of type targetAsset with the smallest value
// that still covers targetAmount, or false if none qualifies. Ties resolve to
// the first seen. Value from multiple utxos is never combined.
func SelectUnspent(
	utxos []Utxo,
	targetAmount uint64,
	targetAsset string,
) (Utxo, bool) {
	var selected Utxo

	for _, u := range utxos {
		if u == nil || u.Asset() != targetAsset {
			continue
		}
		if u.Value() < targetAmount {
			continue
		}
		if selected == nil || u.Value() < selected.Value() {
			selected = u
		}
	}

	return selected, selected != nil
}

// FilterUnspentsByAsset returns the utxos of the given asset preserving their
// order.
func FilterUnspentsByAsset(utxos []Utxo, asset string) []Utxo {
	res := make([]Utxo, 0, len(utxos))
	for _, u := range utxos {
		if u.Asset() == asset {
			res = append(res, u)
		}
	}
	return res
}
