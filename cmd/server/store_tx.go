package main

import (
	"context"

	"github.com/jackc/pgx/v5"

	parcelservice "respass/internal/parcel/service"
	parcelstore "respass/internal/parcel/store"
	residentservice "respass/internal/resident/service"
	residentstore "respass/internal/resident/store"
	"respass/pkg/platform/tx"
)

type parcelPostgresTx struct {
	runner *tx.Runner
}

func newParcelPostgresTx(runner *tx.Runner) *parcelPostgresTx {
	return &parcelPostgresTx{runner: runner}
}

func (t *parcelPostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context, store parcelservice.Store) error) error {
	return t.runner.Run(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, parcelstore.NewPostgres(tx))
	})
}

type residentPostgresTx struct {
	runner *tx.Runner
}

func newResidentPostgresTx(runner *tx.Runner) *residentPostgresTx {
	return &residentPostgresTx{runner: runner}
}

func (t *residentPostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context, store residentservice.Store) error) error {
	return t.runner.Run(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, residentstore.NewPostgres(tx))
	})
}
