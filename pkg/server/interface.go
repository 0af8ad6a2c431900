/*
Package server implements a msgpack IPC for dictionary lookups.

Editors and scripts that cannot drive the interactive screen can run
wordlook with -serve and talk to it over stdin/stdout. Each request is one
msgpack map; each response is one msgpack map written back in order.

A lookup request:

	{"id": "req_001", "q": "ap", "l": 10}

The response lists matching record indices, in dictionary order, with all
their fields:

	{"id": "req_001", "r": [{"i": 0, "f": ["apple", "사과"]}, {"i": 2, "f": ["apricot", "살구"]}], "c": 2, "t": 41}

t is the lookup time in microseconds. An empty query returns no results,
the same as the interactive screen showing nothing for an empty buffer.
Requests that cannot be decoded get a LookupError with code 400.
*/
package server

// LookupRequest asks for records matching Query
type LookupRequest struct {
	ID    string `msgpack:"id"`
	Query string `msgpack:"q"`
	Limit int    `msgpack:"l,omitempty"`
}

// LookupResult is one matching record
type LookupResult struct {
	Index  int      `msgpack:"i"`
	Fields []string `msgpack:"f"`
}

// LookupResponse answers a LookupRequest
type LookupResponse struct {
	ID        string         `msgpack:"id"`
	Results   []LookupResult `msgpack:"r"`
	Count     int            `msgpack:"c"`
	TimeTaken int64          `msgpack:"t"`
}

// LookupError holds basic error information for failed requests
type LookupError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
