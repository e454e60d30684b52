// Package html wraps the output of Runtime.Render the way an HTTP
// framework expects a rendered body -- a string plus its content type.
package html

// Response is the body returned by a page render.
type Response struct {
	Body string
}

// ContentType is the header value a host HTTP handler should set.
func (Response) ContentType() string {
	return "text/html; charset=utf-8"
}
