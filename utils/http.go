// utils/http.go
package utils

import (
	"net/http"
	"time"
)

// HTTPClient is shared by the remote store and the client facade. Image
// payloads travel inline as base64, so the timeout is generous.
var HTTPClient = &http.Client{
	Timeout: 30 * time.Second,
}
