package domain

import "time"

// KeyPrefix namespaces every key this service writes to the search backend.
const KeyPrefix = "bdnbq:"

// DefaultCollection is the collection prefix shard indexes are advertised under.
const DefaultCollection = "bdnb_buildings"

// DefaultTopK is the number of documents retrieved per semantic query.
const DefaultTopK = 5

// DefaultCacheTTL is how long a computed answer stays valid in the response cache.
const DefaultCacheTTL = time.Hour

// DefaultOracleTimeout bounds a single LLM oracle call. Generation over large
// prompts is slow; the backend client keeps the connection open this long.
const DefaultOracleTimeout = time.Hour
