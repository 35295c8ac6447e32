package application

import (
	bookingDomain "github.com/mateusmacedo/train-booking/internal/booking/domain"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
	"github.com/mateusmacedo/train-booking/pkg/domain"
)

const (
	FindBookingQueryName  = "FindBooking"
	ListBookingsQueryName = "ListBookings"
)

type FindBookingData struct {
	ID string
}

type ListBookingsData struct {
	UserID  string
	TrainID string
}

type findBookingQuery struct {
	data FindBookingData
}

func (q findBookingQuery) QueryName() string {
	return FindBookingQueryName
}

func (q findBookingQuery) Payload() FindBookingData {
	return q.data
}

func NewFindBookingQuery(data FindBookingData) domain.Query[FindBookingData] {
	return findBookingQuery{data: data}
}

type listBookingsQuery struct {
	data ListBookingsData
}

func (q listBookingsQuery) QueryName() string {
	return ListBookingsQueryName
}

func (q listBookingsQuery) Payload() ListBookingsData {
	return q.data
}

func NewListBookingsQuery(data ListBookingsData) domain.Query[ListBookingsData] {
	return listBookingsQuery{data: data}
}

type (
	FindBookingBus  = pkgApp.QueryBus[domain.Query[FindBookingData], FindBookingData, bookingDomain.Booking]
	ListBookingsBus = pkgApp.QueryBus[domain.Query[ListBookingsData], ListBookingsData, []bookingDomain.Booking]
)
