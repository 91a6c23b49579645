package diagram

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JailtonJunior94/actionlog/pkg/httpserver"
	"github.com/JailtonJunior94/actionlog/pkg/responses"
)

const contentTypeDot = "text/vnd.graphviz"

// Routes returns the Diagram API routes (§6): GET /diagram/arch and
// GET /diagram/action/{id}, both rendering Graphviz dot text.
func Routes(builder *Builder) []httpserver.Route {
	return []httpserver.Route{
		httpserver.NewRoute(http.MethodGet, "/diagram/arch", archHandler(builder)),
		httpserver.NewRoute(http.MethodGet, "/diagram/action/{id}", actionHandler(builder)),
	}
}

func archHandler(builder *Builder) httpserver.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		hours := 24
		if raw := r.URL.Query().Get("hours"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				responses.Error(w, http.StatusBadRequest, "hours must be a positive integer")
				return nil
			}
			hours = parsed
		}

		var exclude []string
		if raw := r.URL.Query().Get("exclude"); raw != "" {
			exclude = strings.Split(raw, ",")
		}

		dot, err := builder.Arch(r.Context(), hours, exclude)
		if err != nil {
			return err
		}

		w.Header().Set("Content-Type", contentTypeDot)
		_, writeErr := w.Write([]byte(dot))
		return writeErr
	}
}

func actionHandler(builder *Builder) httpserver.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		id := chi.URLParam(r, "id")

		dot, err := builder.Action(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrActionNotFound) {
				responses.Error(w, http.StatusNotFound, "action not found")
				return nil
			}
			return err
		}

		w.Header().Set("Content-Type", contentTypeDot)
		_, writeErr := w.Write([]byte(dot))
		return writeErr
	}
}
