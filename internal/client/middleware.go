package client

import (
	"net/http"

	"github.com/gofrs/uuid/v5"

	"github.com/liomshq/lioms-client/internal/envelope"
	"github.com/liomshq/lioms-client/internal/tokenstore"
)

// RequestTransform is one stage of the outgoing pipeline. Stages mutate the
// request in place and run in registration order, before encoding.
type RequestTransform func(*Request) error

// ResponseTransform is one stage of the incoming pipeline, applied to every
// response regardless of status.
type ResponseTransform func(*Response) error

// RequestID stamps an X-Request-Id header for server-side correlation.
// Existing ids (e.g. on a replay) are kept.
func RequestID() RequestTransform {
	return func(r *Request) error {
		if r.Header.Get("X-Request-Id") != "" {
			return nil
		}
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		r.Header.Set("X-Request-Id", id.String())
		return nil
	}
}

// Bearer attaches the store's current access token to every request. No
// token, no header; the server answers 401 and the refresh protocol takes
// over.
func Bearer(store *tokenstore.Store) RequestTransform {
	return func(r *Request) error {
		if tok := store.AccessToken(); tok != "" {
			r.Header.Set("Authorization", "Bearer "+tok)
		}
		return nil
	}
}

// WrapEntityBody envelopes create/update bodies for recognized entity paths
// per the backend's DTO naming convention. Raw (multipart) bodies, non-object
// bodies, exempt paths, and already-wrapped bodies pass through untouched.
func WrapEntityBody() RequestTransform {
	return func(r *Request) error {
		if r.RawBody != nil || r.Body == nil {
			return nil
		}
		obj, ok := envelope.ToObject(r.Body)
		if !ok {
			return nil
		}
		if !envelope.ShouldWrap(r.Method, r.Path, obj) {
			return nil
		}
		entity := envelope.ResolveEntity(r.Path)
		switch r.Method {
		case http.MethodPost:
			r.Body = envelope.WrapCreate(entity, obj)
		case http.MethodPut:
			r.Body = envelope.WrapUpdate(entity, r.Path, obj)
		}
		return nil
	}
}

// UnwrapEnvelope strips list/single-item response envelopes so callers only
// ever see bare payloads. A no-op for everything else, including error
// bodies.
func UnwrapEnvelope() ResponseTransform {
	return func(r *Response) error {
		r.Body = envelope.Unwrap(r.Body)
		return nil
	}
}
