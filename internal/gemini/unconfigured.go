package gemini

import "context"

// unconfigured fails every call with the configuration error. The server
// boots without a key so the boundary can report the misconfiguration per
// request instead of crash-looping.
type unconfigured struct{}

func (unconfigured) Invoke(context.Context, Task, Payload) (*Result, error) {
	return nil, ErrMissingAPIKey
}

// Unconfigured returns an Invoker for a server missing its API key.
func Unconfigured() Invoker { return unconfigured{} }
