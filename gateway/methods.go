package gateway

// Cache-hint header names understood by the gateway's edge cache.
const (
	headerGetBlock    = "X-Eth-Get-Block"
	headerBlockNumber = "X-Eth-Block"
)

const methodGetBlockByNumber = "eth_getBlockByNumber"

// postMethods is the fixed set of methods sent as HTTP POST, mapped to the
// cache-hint header the gateway accepts for them ("" when none applies).
var postMethods = map[string]string{
	"eth_blockNumber":           headerBlockNumber,
	methodGetBlockByNumber:      headerGetBlock,
	"eth_call":                  "",
	"eth_estimateGas":           "",
	"eth_sendRawTransaction":    "",
	"eth_getTransactionReceipt": "",
	"eth_getLogs":               "",
}

// classifyMethod reports whether method must be sent as POST and, when it is,
// the cache-hint header to attach. Unknown methods default to GET with no
// cache hint.
func classifyMethod(method string) (post bool, cacheHint string) {
	cacheHint, post = postMethods[method]
	return post, cacheHint
}
