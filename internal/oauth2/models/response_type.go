package models

import (
	"sort"
	"strings"

	dErrors "authgate/pkg/domain-errors"
)

// ResponseType is one requested grant shape. Requests carry a non-empty set
// of these (hybrid flows combine several).
type ResponseType string

const (
	ResponseTypeCode    ResponseType = "code"
	ResponseTypeToken   ResponseType = "token"
	ResponseTypeIDToken ResponseType = "id_token"
)

func (t ResponseType) IsValid() bool {
	switch t {
	case ResponseTypeCode, ResponseTypeToken, ResponseTypeIDToken:
		return true
	}
	return false
}

// ResponseTypeSet is the set of requested response types. The underlying map
// is never exposed; use Has and Values.
type ResponseTypeSet map[ResponseType]struct{}

// ParseResponseTypes parses the space-delimited response_type parameter.
// Duplicates collapse; an empty or unknown token is a bad request.
func ParseResponseTypes(raw string) (ResponseTypeSet, error) {
	set := make(ResponseTypeSet)
	for _, tok := range strings.Fields(raw) {
		t := ResponseType(tok)
		if !t.IsValid() {
			return nil, dErrors.New(dErrors.CodeBadRequest, "unknown response_type value: "+tok)
		}
		set[t] = struct{}{}
	}
	if len(set) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "response_type must not be empty")
	}
	return set, nil
}

// NewResponseTypeSet builds a set from explicit values, for tests and config.
func NewResponseTypeSet(types ...ResponseType) ResponseTypeSet {
	set := make(ResponseTypeSet, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return set
}

func (s ResponseTypeSet) Has(t ResponseType) bool {
	_, ok := s[t]
	return ok
}

// HasImplicit reports whether the set contains any implicit/hybrid component.
func (s ResponseTypeSet) HasImplicit() bool {
	return s.Has(ResponseTypeToken) || s.Has(ResponseTypeIDToken)
}

// String renders the set in canonical space-delimited form with sorted
// members, suitable for persistence.
func (s ResponseTypeSet) String() string {
	toks := make([]string, 0, len(s))
	for t := range s {
		toks = append(toks, string(t))
	}
	sort.Strings(toks)
	return strings.Join(toks, " ")
}
