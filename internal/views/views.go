// Package views renders service results and errors as JSON responses. Each
// endpoint owns a view so the error mapping stays next to the data it
// belongs to.
package views

import "net/http"

type View[T any] interface {
	Render(w http.ResponseWriter, r *http.Request, data T)
	RenderError(w http.ResponseWriter, r *http.Request, err error)
}
