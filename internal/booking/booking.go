package booking

import (
	"github.com/go-chi/chi/v5"

	"github.com/mateusmacedo/train-booking/internal/booking/application"
	"github.com/mateusmacedo/train-booking/internal/booking/domain"
	"github.com/mateusmacedo/train-booking/internal/booking/infrastructure"
	trainDomain "github.com/mateusmacedo/train-booking/internal/train/domain"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
	pkgDomain "github.com/mateusmacedo/train-booking/pkg/domain"
	pkgInfra "github.com/mateusmacedo/train-booking/pkg/infrastructure"
)

type BookingSlice struct {
	httpHandler *infrastructure.BookingHTTPHandler
}

// NewBookingSlice wires the booking handlers onto in-process buses and registers
// the event logger on eventBus, which may forward to a broker.
func NewBookingSlice(
	repository domain.BookingRepository,
	trains trainDomain.TrainRepository,
	eventBus application.BookingEventBus,
	idGenerator pkgDomain.IDGenerator[string],
	logger pkgApp.AppLogger,
) *BookingSlice {
	buses := infrastructure.BookingBuses{
		Create: pkgInfra.NewSimpleCommandBus[pkgDomain.Command[application.CreateBookingData], application.CreateBookingData](logger),
		Update: pkgInfra.NewSimpleCommandBus[pkgDomain.Command[application.UpdateBookingData], application.UpdateBookingData](logger),
		Delete: pkgInfra.NewSimpleCommandBus[pkgDomain.Command[application.DeleteBookingData], application.DeleteBookingData](logger),
		Find:   pkgInfra.NewSimpleQueryBus[pkgDomain.Query[application.FindBookingData], application.FindBookingData, domain.Booking](logger),
		List:   pkgInfra.NewSimpleQueryBus[pkgDomain.Query[application.ListBookingsData], application.ListBookingsData, []domain.Booking](logger),
	}

	buses.Create.RegisterHandler(application.CreateBookingCommandName, application.NewCreateBookingHandler(repository, trains, eventBus, logger))
	buses.Update.RegisterHandler(application.UpdateBookingCommandName, application.NewUpdateBookingHandler(repository, trains, eventBus, logger))
	buses.Delete.RegisterHandler(application.DeleteBookingCommandName, application.NewDeleteBookingHandler(repository, trains, eventBus, logger))
	buses.Find.RegisterHandler(application.FindBookingQueryName, application.NewFindBookingHandler(repository, logger))
	buses.List.RegisterHandler(application.ListBookingsQueryName, application.NewListBookingsHandler(repository, logger))

	eventLogger := application.NewBookingEventLogger(logger)
	for _, name := range []string{
		application.BookingCreatedEventName,
		application.BookingUpdatedEventName,
		application.BookingCancelledEventName,
	} {
		eventBus.RegisterHandler(name, eventLogger)
	}

	return &BookingSlice{httpHandler: infrastructure.NewBookingHTTPHandler(buses, idGenerator)}
}

func (s *BookingSlice) RegisterRoutes(router chi.Router) {
	s.httpHandler.RegisterRoutes(router)
}
