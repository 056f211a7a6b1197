package repository

// Utxo is a plain output as returned by GetUtxos.
type Utxo struct {
	TxID        string `json:"txId"`
	OutputIndex uint32 `json:"outputIndex"`
	Satoshis    uint64 `json:"satoshis"`
	Address     string `json:"address"`
}

type TokenUtxo struct {
	TxID         string `json:"txId"`
	OutputIndex  uint32 `json:"outputIndex"`
	TokenAddress string `json:"tokenAddress"`
	// TokenAmount is a decimal string, amounts are not limited to 64 bits
	TokenAmount string `json:"tokenAmount"`
}

type NftUtxo struct {
	TxID            string `json:"txId"`
	OutputIndex     uint32 `json:"outputIndex"`
	TokenAddress    string `json:"tokenAddress"`
	TokenIndex      string `json:"tokenIndex"`
	MetaOutputIndex uint32 `json:"metaOutputIndex"`
	MetaTxID        string `json:"metaTxId"`
}

type NftSellDetail struct {
	TxID    string `json:"txid"`
	Vout    uint32 `json:"vout"`
	Address string `json:"address"`
	Price   uint64 `json:"price"`
}

// TokenBalance carries the summed amount. PendingBalance, UtxoCount and Decimal are
// always zero values since unconfirmed state and token metadata are not tracked.
type TokenBalance struct {
	Balance        string `json:"balance"`
	PendingBalance string `json:"pendingBalance"`
	UtxoCount      int    `json:"utxoCount"`
	Decimal        int    `json:"decimal"`
}

type Balance struct {
	Balance        int64 `json:"balance"`
	PendingBalance int64 `json:"pendingBalance"`
}

type Token struct {
	Codehash string `json:"codehash"`
	Genesis  string `json:"genesis"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Balance  string `json:"balance"`
}

type NftCollection struct {
	Codehash string `json:"codehash"`
	Genesis  string `json:"genesis"`
	Count    int    `json:"count"`
}

// QueryParams is accepted for compatibility with paginated indexers. It is not applied.
type QueryParams struct {
	Cursor int `json:"cursor"`
	Size   int `json:"size"`
}

type SellQueryParams struct {
	Ready bool `json:"ready"`
}
