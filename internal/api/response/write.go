package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes data as a JSON body. The value is marshalled before the status
// goes out, so an unencodable value becomes a bare 500.
func JSON(w http.ResponseWriter, status int, data any) {
	h := w.Header()
	h.Set("X-Content-Type-Options", "nosniff")
	if data == nil {
		w.WriteHeader(status)
		return
	}

	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// List writes items as a JSON array; a nil slice is sent as [].
func List[T any](w http.ResponseWriter, status int, items []T) {
	if items == nil {
		items = []T{}
	}
	JSON(w, status, items)
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func mapSlice[S, T any](in []S, fn func(S) T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}
