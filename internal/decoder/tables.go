package decoder

// Interface tables tried in priority order: the privacy-protocol events
// are more specific and must win over the generic ERC-20/DEX shapes.

const railgunEventsABI = `[
  {"type":"event","name":"Shield","anonymous":false,"inputs":[
    {"name":"treeNumber","type":"uint256","indexed":false},
    {"name":"startPosition","type":"uint256","indexed":false},
    {"name":"commitments","type":"tuple[]","indexed":false,"components":[
      {"name":"npk","type":"bytes32"},
      {"name":"token","type":"tuple","components":[
        {"name":"tokenType","type":"uint8"},
        {"name":"tokenAddress","type":"address"},
        {"name":"tokenSubID","type":"uint256"}]},
      {"name":"value","type":"uint120"}]},
    {"name":"shieldCiphertext","type":"tuple[]","indexed":false,"components":[
      {"name":"encryptedBundle","type":"bytes32[3]"},
      {"name":"shieldKey","type":"bytes32"}]},
    {"name":"fees","type":"uint256[]","indexed":false}]},
  {"type":"event","name":"Transact","anonymous":false,"inputs":[
    {"name":"treeNumber","type":"uint256","indexed":false},
    {"name":"startPosition","type":"uint256","indexed":false},
    {"name":"hash","type":"bytes32[]","indexed":false},
    {"name":"ciphertext","type":"tuple[]","indexed":false,"components":[
      {"name":"ciphertext","type":"bytes32[4]"},
      {"name":"blindedSenderViewingKey","type":"bytes32"},
      {"name":"blindedReceiverViewingKey","type":"bytes32"},
      {"name":"annotationData","type":"bytes"},
      {"name":"memo","type":"bytes"}]}]},
  {"type":"event","name":"Unshield","anonymous":false,"inputs":[
    {"name":"to","type":"address","indexed":false},
    {"name":"token","type":"tuple","indexed":false,"components":[
      {"name":"tokenType","type":"uint8"},
      {"name":"tokenAddress","type":"address"},
      {"name":"tokenSubID","type":"uint256"}]},
    {"name":"amount","type":"uint256","indexed":false},
    {"name":"fee","type":"uint256","indexed":false}]},
  {"type":"event","name":"Nullified","anonymous":false,"inputs":[
    {"name":"treeNumber","type":"uint16","indexed":false},
    {"name":"nullifier","type":"bytes32[]","indexed":false}]}
]`

const standardEventsABI = `[
  {"type":"event","name":"Transfer","anonymous":false,"inputs":[
    {"name":"from","type":"address","indexed":true},
    {"name":"to","type":"address","indexed":true},
    {"name":"value","type":"uint256","indexed":false}]},
  {"type":"event","name":"Approval","anonymous":false,"inputs":[
    {"name":"owner","type":"address","indexed":true},
    {"name":"spender","type":"address","indexed":true},
    {"name":"value","type":"uint256","indexed":false}]},
  {"type":"event","name":"Swap","anonymous":false,"inputs":[
    {"name":"sender","type":"address","indexed":true},
    {"name":"amount0In","type":"uint256","indexed":false},
    {"name":"amount1In","type":"uint256","indexed":false},
    {"name":"amount0Out","type":"uint256","indexed":false},
    {"name":"amount1Out","type":"uint256","indexed":false},
    {"name":"to","type":"address","indexed":true}]},
  {"type":"event","name":"Sync","anonymous":false,"inputs":[
    {"name":"reserve0","type":"uint112","indexed":false},
    {"name":"reserve1","type":"uint112","indexed":false}]},
  {"type":"event","name":"Deposit","anonymous":false,"inputs":[
    {"name":"dst","type":"address","indexed":true},
    {"name":"wad","type":"uint256","indexed":false}]},
  {"type":"event","name":"Withdrawal","anonymous":false,"inputs":[
    {"name":"src","type":"address","indexed":true},
    {"name":"wad","type":"uint256","indexed":false}]}
]`

const standardFunctionsABI = `[
  {"type":"function","name":"transfer","inputs":[
    {"name":"to","type":"address"},
    {"name":"value","type":"uint256"}]},
  {"type":"function","name":"approve","inputs":[
    {"name":"spender","type":"address"},
    {"name":"value","type":"uint256"}]},
  {"type":"function","name":"transferFrom","inputs":[
    {"name":"from","type":"address"},
    {"name":"to","type":"address"},
    {"name":"value","type":"uint256"}]},
  {"type":"function","name":"deposit","stateMutability":"payable","inputs":[]},
  {"type":"function","name":"withdraw","inputs":[
    {"name":"wad","type":"uint256"}]},
  {"type":"function","name":"swapExactTokensForTokens","inputs":[
    {"name":"amountIn","type":"uint256"},
    {"name":"amountOutMin","type":"uint256"},
    {"name":"path","type":"address[]"},
    {"name":"to","type":"address"},
    {"name":"deadline","type":"uint256"}]},
  {"type":"function","name":"swapExactETHForTokens","stateMutability":"payable","inputs":[
    {"name":"amountOutMin","type":"uint256"},
    {"name":"path","type":"address[]"},
    {"name":"to","type":"address"},
    {"name":"deadline","type":"uint256"}]},
  {"type":"function","name":"swapExactTokensForETH","inputs":[
    {"name":"amountIn","type":"uint256"},
    {"name":"amountOutMin","type":"uint256"},
    {"name":"path","type":"address[]"},
    {"name":"to","type":"address"},
    {"name":"deadline","type":"uint256"}]}
]`
