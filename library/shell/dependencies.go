package shell

import (
	"time"

	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// Dependencies is what every feature handler is constructed with.
// Engine is required; all other fields are optional.
type Dependencies struct {
	Engine       recordstore.Engine
	Publisher    Publisher
	Clock        func() time.Time
	Logger       ContextualLogger
	RetryOptions []RetryOption
}

// Now returns the current time of the configured clock, normalized to UTC.
func (d Dependencies) Now() time.Time {
	if d.Clock == nil {
		return time.Now().UTC()
	}

	return d.Clock().UTC()
}
