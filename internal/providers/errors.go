package providers

import "errors"

// ErrProviderUnavailable signals a provider that was never configured or has
// been shut down.
var ErrProviderUnavailable = errors.New("provider unavailable")

// ErrNoData signals an upstream source that responded but had nothing for the
// requested date. The engine treats this as an empty slate, not a failure.
var ErrNoData = errors.New("provider returned no data")
