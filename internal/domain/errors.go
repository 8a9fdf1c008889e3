package domain

import "errors"

var (
	// ErrEmptyQuery signals an empty or blank question (client input error).
	ErrEmptyQuery = errors.New("empty query")
	// ErrClassificationParse signals that the classification oracle produced
	// no parseable verdict. Recovered internally: the router treats the
	// question as descriptive.
	ErrClassificationParse = errors.New("classification parse failed")
	// ErrStructuredQuery signals a relational backend failure. Recovered
	// internally: the router falls back to the retrieval path.
	ErrStructuredQuery = errors.New("structured query failed")
	// ErrShardUnavailable signals that no usable shard exists for the request.
	// Surfaced: the retrieval path has no further fallback.
	ErrShardUnavailable = errors.New("shard unavailable")
	// ErrOracleTimeout signals that an oracle call exceeded its deadline.
	ErrOracleTimeout = errors.New("oracle call timed out")
	// ErrOracleUnavailable signals an oracle transport failure.
	ErrOracleUnavailable = errors.New("oracle unavailable")
)
