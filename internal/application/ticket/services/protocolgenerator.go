package services

import (
	"context"
	"time"

	"github.com/orris-inc/aticket/internal/domain/department"
	"github.com/orris-inc/aticket/internal/domain/sequence"
	"github.com/orris-inc/aticket/internal/domain/ticket"
	"github.com/orris-inc/aticket/internal/infrastructure/metrics"
	"github.com/orris-inc/aticket/internal/shared/biztime"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

// ProtocolGenerator issues DEPT-YYYY-WW-NNNN identifiers.
//
// Generate must be called with the context of the transaction that persists
// the ticket: the reservation joins it, so a failed insert hands the number
// back instead of burning it.
type ProtocolGenerator struct {
	store  sequence.Store
	clock  biztime.Clock
	logger logger.Interface
}

func NewProtocolGenerator(store sequence.Store, clock biztime.Clock, log logger.Interface) *ProtocolGenerator {
	if clock == nil {
		clock = biztime.SystemClock
	}
	return &ProtocolGenerator{store: store, clock: clock, logger: log}
}

func (g *ProtocolGenerator) Generate(ctx context.Context, dept department.Code) (string, error) {
	key, err := sequence.PartitionKeyAt(dept, g.clock())
	if err != nil {
		return "", err
	}

	start := time.Now()
	number, err := g.store.Reserve(ctx, key)
	metrics.ObserveProtocolReservation(time.Since(start))
	if err != nil {
		return "", err
	}

	protocol := ticket.FormatProtocol(key, number)
	g.logger.Debugw("protocol reserved", "partition", key.String(), "protocol", protocol)
	return protocol, nil
}
