package http

import (
	ticketHandlers "github.com/orris-inc/aticket/internal/interfaces/http/handlers/ticket"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	ticketHandler *ticketHandlers.TicketHandler
}

func newHandlers(service ticketHandlers.Service, log logger.Interface) *allHandlers {
	return &allHandlers{
		ticketHandler: ticketHandlers.NewTicketHandler(service, log.Named("http")),
	}
}
