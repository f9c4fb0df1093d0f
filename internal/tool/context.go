package tool

import "time"

// Context carries per-call metadata from the dispatcher into a tool execution.
// It is distinct from context.Context: cancellation and deadlines travel on the
// standard context, while this type carries identity and request bookkeeping.
type Context struct {
	SessionID  string
	RequestID  string
	ClientID   string
	ClientInfo map[string]any
	StartTime  time.Time
	props      map[string]any
}

// NewContext creates a call context stamped with the current time.
func NewContext(sessionID, requestID string) *Context {
	return &Context{
		SessionID: sessionID,
		RequestID: requestID,
		StartTime: time.Now(),
		props:     make(map[string]any),
	}
}

// SetProperty stores an arbitrary key/value on the call.
func (c *Context) SetProperty(key string, value any) {
	if c.props == nil {
		c.props = make(map[string]any)
	}
	c.props[key] = value
}

// Property fetches a previously stored value.
func (c *Context) Property(key string) (any, bool) {
	v, ok := c.props[key]
	return v, ok
}

// StringProperty fetches a stored value when it is a string.
func (c *Context) StringProperty(key string) (string, bool) {
	v, ok := c.props[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Elapsed reports how long the call has been running.
func (c *Context) Elapsed() time.Duration {
	return time.Since(c.StartTime)
}
