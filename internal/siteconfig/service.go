// Package siteconfig serves per-property front end configuration documents.
// Property ids are case-insensitive and stored upper-cased.
package siteconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	dErrors "respass/pkg/domain-errors"
	"respass/pkg/platform/sentinel"
)

type Store interface {
	Get(ctx context.Context, propertyID string) ([]byte, error)
	Put(ctx context.Context, propertyID string, doc []byte) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

var errMissingProp = dErrors.New(dErrors.CodeBadRequest, `Did not receive a "prop" search param.`)

func (s *Service) Get(ctx context.Context, prop string) (json.RawMessage, error) {
	key := normalize(prop)
	if key == "" {
		return nil, errMissingProp
	}
	doc, err := s.store.Get(ctx, key)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("No data for property %q", prop))
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "site config store unavailable")
	}
	return doc, nil
}

func (s *Service) Put(ctx context.Context, prop string, doc json.RawMessage) error {
	key := normalize(prop)
	if key == "" {
		return errMissingProp
	}
	if !json.Valid(doc) {
		return dErrors.New(dErrors.CodeBadRequest, "invalid request body")
	}
	if err := s.store.Put(ctx, key, doc); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "site config store unavailable")
	}
	return nil
}

func normalize(prop string) string {
	return strings.ToUpper(strings.TrimSpace(prop))
}
