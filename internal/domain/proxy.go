package domain

import "encoding/json"

// UpstreamResult is what the proxy relays back to the browser: the POS
// backend's own status code and its JSON body, bit for bit.
type UpstreamResult struct {
	Status int
	Body   json.RawMessage
}
