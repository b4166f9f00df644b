package cli

import (
	"errors"
	"fmt"

	"github.com/pkozlov/flowdeck/internal/client/api"
	"github.com/pkozlov/flowdeck/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with
// a stub.
var printlnFn = fmt.Println

// reportError prints a user-facing message for err, preferring the server's
// detail text when one is present, and returns err for the caller.
func reportError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *api.Error
	switch {
	case errors.Is(err, common.ErrLoginRequired):
		printlnFn("Please login first.")
	case errors.Is(err, common.ErrUnavailable):
		printlnFn("Server unavailable. Check the address or try offline mode.")
	case errors.As(err, &apiErr) && apiErr.Detail != "":
		printlnFn("Error:", apiErr.Detail)
	default:
		printlnFn("Error:", err.Error())
	}
	return err
}
