package chain

// RawBlock is a block as returned by eth_getBlockByNumber/eth_getBlockByHash with
// full transactions. Every scalar keeps its 0x-prefixed wire form; an absent field
// decodes to the empty string.
type RawBlock struct {
	Number           string           `json:"number"`
	Hash             string           `json:"hash"`
	ParentHash       string           `json:"parentHash"`
	Nonce            string           `json:"nonce"`
	Sha3Uncles       string           `json:"sha3Uncles"`
	LogsBloom        string           `json:"logsBloom"`
	TransactionsRoot string           `json:"transactionsRoot"`
	StateRoot        string           `json:"stateRoot"`
	ReceiptsRoot     string           `json:"receiptsRoot"`
	Miner            string           `json:"miner"`
	MixHash          string           `json:"mixHash"`
	Difficulty       string           `json:"difficulty"`
	TotalDifficulty  string           `json:"totalDifficulty,omitempty"`
	ExtraData        string           `json:"extraData"`
	Size             string           `json:"size"`
	GasLimit         string           `json:"gasLimit"`
	GasUsed          string           `json:"gasUsed"`
	BaseFeePerGas    string           `json:"baseFeePerGas,omitempty"`
	Timestamp        string           `json:"timestamp"`
	Transactions     []RawTransaction `json:"transactions"`
	Uncles           []string         `json:"uncles"`
}

// RawTransaction is a transaction object inlined in a RawBlock.
type RawTransaction struct {
	BlockHash            string `json:"blockHash"`
	BlockNumber          string `json:"blockNumber"`
	From                 string `json:"from"`
	Gas                  string `json:"gas"`
	GasPrice             string `json:"gasPrice"`
	MaxFeePerGas         string `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas string `json:"maxPriorityFeePerGas,omitempty"`
	Hash                 string `json:"hash"`
	Input                string `json:"input"`
	Nonce                string `json:"nonce"`
	To                   string `json:"to,omitempty"`
	TransactionIndex     string `json:"transactionIndex"`
	Type                 string `json:"type,omitempty"`
	Value                string `json:"value"`
	V                    string `json:"v"`
	R                    string `json:"r"`
	S                    string `json:"s"`
}
