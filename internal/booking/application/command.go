package application

import (
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
	"github.com/mateusmacedo/train-booking/pkg/domain"
)

const (
	CreateBookingCommandName = "CreateBooking"
	UpdateBookingCommandName = "UpdateBooking"
	DeleteBookingCommandName = "DeleteBooking"
)

// CreateBookingData is the booking request. ID is assigned by the caller.
type CreateBookingData struct {
	ID          string `json:"-"`
	User        string `json:"user"`
	Train       string `json:"train"`
	SeatsBooked *int   `json:"seatsBooked"`
	BookingDate string `json:"bookingDate"`
}

// UpdateBookingData changes seat count and/or date. Nil fields are kept.
type UpdateBookingData struct {
	ID          string  `json:"-"`
	SeatsBooked *int    `json:"seatsBooked"`
	BookingDate *string `json:"bookingDate"`
}

type DeleteBookingData struct {
	ID string
}

type createBookingCommand struct {
	data CreateBookingData
}

func (c createBookingCommand) CommandName() string {
	return CreateBookingCommandName
}

func (c createBookingCommand) Payload() CreateBookingData {
	return c.data
}

func NewCreateBookingCommand(data CreateBookingData) domain.Command[CreateBookingData] {
	return createBookingCommand{data: data}
}

type updateBookingCommand struct {
	data UpdateBookingData
}

func (c updateBookingCommand) CommandName() string {
	return UpdateBookingCommandName
}

func (c updateBookingCommand) Payload() UpdateBookingData {
	return c.data
}

func NewUpdateBookingCommand(data UpdateBookingData) domain.Command[UpdateBookingData] {
	return updateBookingCommand{data: data}
}

type deleteBookingCommand struct {
	data DeleteBookingData
}

func (c deleteBookingCommand) CommandName() string {
	return DeleteBookingCommandName
}

func (c deleteBookingCommand) Payload() DeleteBookingData {
	return c.data
}

func NewDeleteBookingCommand(data DeleteBookingData) domain.Command[DeleteBookingData] {
	return deleteBookingCommand{data: data}
}

type (
	CreateBookingBus = pkgApp.CommandBus[domain.Command[CreateBookingData], CreateBookingData]
	UpdateBookingBus = pkgApp.CommandBus[domain.Command[UpdateBookingData], UpdateBookingData]
	DeleteBookingBus = pkgApp.CommandBus[domain.Command[DeleteBookingData], DeleteBookingData]
)
