package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/courierlabs/nameplate/internal/engine"
	"github.com/courierlabs/nameplate/internal/httpserver/deps"
	"github.com/courierlabs/nameplate/internal/logger"
	"github.com/courierlabs/nameplate/internal/naming"
	"github.com/courierlabs/nameplate/internal/registry"
)

type namesResponse struct {
	Count   int               `json:"count"`
	Entries []*registry.Entry `json:"entries"`
}

// Names lists registered identifiers, optionally filtered by ?kind= and
// ?context= (matching the identifier's context property).
func Names(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := r.URL.Query().Get("kind")
		ctxFilter := r.URL.Query().Get("context")

		entries := make([]*registry.Entry, 0)
		for _, e := range d.Registry.All() {
			if kind != "" && e.Kind != kind {
				continue
			}
			if ctxFilter != "" && e.Keys[naming.KeyContext] != ctxFilter {
				continue
			}
			entries = append(entries, e)
		}

		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Canonical < entries[j].Canonical
		})

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(namesResponse{
			Count:   len(entries),
			Entries: entries,
		})
	}
}

// NameLookup returns one entry by its full identifier text, passed as
// ?name= (URL-encoded). Pair order in the query does not matter.
func NameLookup(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		text := r.URL.Query().Get("name")
		if text == "" {
			http.Error(w, "missing name parameter", http.StatusBadRequest)
			return
		}

		on, err := naming.ParseObjectName(text)
		if err != nil {
			writeMalformed(w, d, err)
			return
		}

		entry, ok := d.Registry.Get(on.Canonical())
		if !ok {
			http.Error(w, "name not registered", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(entry)
	}
}

type previewRequest struct {
	Kind       string `json:"kind"` // context | endpoint | route
	Context    string `json:"context,omitempty"`
	URI        string `json:"uri,omitempty"`
	Singleton  *bool  `json:"singleton,omitempty"`
	Group      string `json:"group,omitempty"`
	ParentType string `json:"parentType,omitempty"`
}

type previewResponse struct {
	Name      string            `json:"name"`
	Canonical string            `json:"canonical"`
	Domain    string            `json:"domain"`
	Keys      map[string]string `json:"keys"`
}

// NamePreview derives the identifier for a JSON-described entity without
// registering it. Useful to see what a registry key will look like
// before wiring the entity into the topology.
func NamePreview(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req previewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		on, err := derivePreview(d.Strategy, req)
		if err != nil {
			writeMalformed(w, d, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(previewResponse{
			Name:      on.String(),
			Canonical: on.Canonical(),
			Domain:    on.Domain(),
			Keys:      on.Properties(),
		})
	}
}

func derivePreview(s *naming.Strategy, req previewRequest) (naming.ObjectName, error) {
	ctx := engine.NewContext(req.Context)

	switch req.Kind {
	case registry.KindContext:
		return s.ContextName(ctx)
	case registry.KindEndpoint:
		singleton := true
		if req.Singleton != nil {
			singleton = *req.Singleton
		}
		return s.EndpointName(engine.NewEndpoint(req.URI, singleton, ctx))
	case registry.KindRoute:
		var ep *engine.Endpoint
		if req.URI != "" {
			ep = engine.NewEndpoint(req.URI, true, ctx)
		}
		rt := engine.NewRoute(ep, req.Group, req.ParentType, req.ParentType != "")
		return s.RouteName(rt)
	default:
		return naming.ObjectName{}, errors.New("unsupported kind, want context, endpoint or route")
	}
}

// writeMalformed reports an identifier failure: 422 with the offending
// text when it is the structured-name syntax complaining, 400 otherwise.
func writeMalformed(w http.ResponseWriter, d deps.Deps, err error) {
	var malformed *naming.MalformedObjectNameError
	if errors.As(err, &malformed) {
		d.Logger.Warn("rejected malformed identifier",
			logger.String("text", malformed.Text),
			logger.Error(malformed.Reason))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": "malformed identifier",
			"text":  malformed.Text,
			"cause": malformed.Reason.Error(),
		})
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}
