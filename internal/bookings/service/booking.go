package service

import (
	"context"
	"errors"
	bookingserrors "househunt/internal/bookings/errors"
	"househunt/internal/bookings/repository"
	"househunt/internal/bookings/validator"
	houseserrors "househunt/internal/houses/errors"
	"househunt/pkg/config"
	apperrors "househunt/pkg/errors"
	httputil "househunt/pkg/http"
	"househunt/pkg/model"
	"househunt/pkg/sanitizer"
	"househunt/pkg/validation"
	"time"
)

// ListingFlagStore flips a listing's isBooking flag. MarkBooked must be a
// compare-and-set that fails with houses ErrAlreadyBooked when the flag is
// already true.
type ListingFlagStore interface {
	MarkBooked(ctx context.Context, houseID string) (*model.House, error)
	MarkAvailable(ctx context.Context, houseID string) error
}

type EventPublisher interface {
	PublishBooking(ctx context.Context, event model.BookingEvent) error
}

type BookingService interface {
	Create(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error)
	Cancel(ctx context.Context, id string) (*httputil.DeleteResult, error)
	GetByOwner(ctx context.Context, ownerEmail string) ([]*model.Booking, error)
	GetByRenter(ctx context.Context, renterEmail string) ([]*model.Booking, error)
	CountByRenter(ctx context.Context, renterEmail string) (int64, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	listings  ListingFlagStore
	validator *validator.BookingValidator
	events    EventPublisher
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	listings ListingFlagStore,
	validator *validator.BookingValidator,
	events EventPublisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		listings:  listings,
		validator: validator,
		events:    events,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Create books a listing. The listing flag is claimed first with a
// compare-and-set, so of two concurrent requests for the same listing only
// one reaches the insert. If the insert fails the flag is released again.
func (s *bookingService) Create(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error) {
	s.sanitize(req)

	if err := s.validator.ValidateCreate(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed",
			"house_id", req.BookedHouseID,
			"renter_email", req.RenterEmail,
			"error", err,
		)
		return nil, validation.ToAppError(err)
	}

	house, err := s.listings.MarkBooked(ctx, req.BookedHouseID)
	if err != nil {
		switch {
		case errors.Is(err, houseserrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("House", req.BookedHouseID)
		case errors.Is(err, houseserrors.ErrAlreadyBooked):
			s.cfg.Log.Info("Rejected booking of booked house",
				"house_id", req.BookedHouseID,
				"renter_email", req.RenterEmail,
			)
			return nil, apperrors.Conflict("House is already booked")
		case errors.Is(err, houseserrors.ErrInvalidID):
			return nil, apperrors.InvalidInput("Invalid house ID format")
		default:
			s.cfg.Log.Error("Failed to mark house booked",
				"house_id", req.BookedHouseID,
				"error", err,
			)
			return nil, apperrors.Internal("Failed to create booking", err)
		}
	}

	booking := &model.Booking{
		BookedHouseID: req.BookedHouseID,
		OwnerEmail:    sanitizer.NormalizeEmail(house.OwnerEmail),
		RenterEmail:   req.RenterEmail,
		RenterName:    req.RenterName,
		RenterPhone:   req.RenterPhone,
		HouseName:     house.Name,
		HouseAddress:  house.Address,
		HouseCity:     house.City,
		HousePicture:  house.Picture,
		RentPerMonth:  house.RentPerMonth,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to insert booking, releasing house",
			"house_id", req.BookedHouseID,
			"renter_email", req.RenterEmail,
			"error", err,
		)
		s.release(ctx, req.BookedHouseID)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"house_id", booking.BookedHouseID,
		"owner_email", booking.OwnerEmail,
		"renter_email", booking.RenterEmail,
	)
	s.publish(ctx, model.BookingCreatedEvent, booking)
	return booking, nil
}

// release undoes a MarkBooked after a failed insert. It runs detached from the
// request context, which may already be cancelled.
func (s *bookingService) release(ctx context.Context, houseID string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.WriteTimeout)
	defer cancel()

	if err := s.listings.MarkAvailable(ctx, houseID); err != nil {
		s.cfg.Log.Error("Failed to release house after booking failure",
			"house_id", houseID,
			"error", err,
		)
	}
}

// Cancel deletes a booking and frees its listing. Cancelling an unknown id is
// a successful no-op reporting zero deletions.
func (s *bookingService) Cancel(ctx context.Context, id string) (*httputil.DeleteResult, error) {
	booking, err := s.repo.FindByID(ctx, id)
	switch {
	case err == nil:
		if err := s.listings.MarkAvailable(ctx, booking.BookedHouseID); err != nil && !errors.Is(err, houseserrors.ErrNotFound) {
			s.cfg.Log.Error("Failed to mark house available",
				"booking_id", id,
				"house_id", booking.BookedHouseID,
				"error", err,
			)
			return nil, apperrors.Internal("Failed to cancel booking", err)
		}
	case errors.Is(err, bookingserrors.ErrNotFound):
		// still attempt the delete; it reports zero
	default:
		return nil, s.mapRepoError(err, "cancel", id)
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, "cancel", id)
	}

	if booking != nil && deleted > 0 {
		s.cfg.Log.Info("Booking cancelled successfully",
			"id", id,
			"house_id", booking.BookedHouseID,
		)
		s.publish(ctx, model.BookingCancelledEvent, booking)
	}

	return &httputil.DeleteResult{Acknowledged: true, DeletedCount: deleted}, nil
}

func (s *bookingService) GetByOwner(ctx context.Context, ownerEmail string) ([]*model.Booking, error) {
	ownerEmail = sanitizer.NormalizeEmail(ownerEmail)
	if ownerEmail == "" {
		return nil, apperrors.InvalidInput("Owner email cannot be empty")
	}

	bookings, err := s.repo.FindByOwner(ctx, ownerEmail)
	if err != nil {
		s.cfg.Log.Error("Failed to get bookings by owner", "owner_email", ownerEmail, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) GetByRenter(ctx context.Context, renterEmail string) ([]*model.Booking, error) {
	renterEmail = sanitizer.NormalizeEmail(renterEmail)
	if renterEmail == "" {
		return nil, apperrors.InvalidInput("Renter email cannot be empty")
	}

	bookings, err := s.repo.FindByRenter(ctx, renterEmail)
	if err != nil {
		s.cfg.Log.Error("Failed to get bookings by renter", "renter_email", renterEmail, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) CountByRenter(ctx context.Context, renterEmail string) (int64, error) {
	renterEmail = sanitizer.NormalizeEmail(renterEmail)
	if renterEmail == "" {
		return 0, apperrors.InvalidInput("Renter email cannot be empty")
	}

	count, err := s.repo.CountByRenter(ctx, renterEmail)
	if err != nil {
		s.cfg.Log.Error("Failed to count bookings by renter", "renter_email", renterEmail, "error", err)
		return 0, apperrors.Internal("Failed to count bookings", err)
	}
	return count, nil
}

// publish never fails the request; the booking state is already committed.
func (s *bookingService) publish(ctx context.Context, eventType string, booking *model.Booking) {
	event := model.BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID,
		BookedHouseID: booking.BookedHouseID,
		OwnerEmail:    booking.OwnerEmail,
		RenterEmail:   booking.RenterEmail,
		OccurredAt:    s.now().UTC(),
	}
	if err := s.events.PublishBooking(ctx, event); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event",
			"type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
	}
}

func (s *bookingService) mapRepoError(err error, op, id string) error {
	switch {
	case errors.Is(err, bookingserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID format")
	default:
		s.cfg.Log.Error("Booking storage operation failed",
			"operation", op,
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to "+op+" booking", err)
	}
}

func (s *bookingService) sanitize(req *model.CreateBookingRequest) {
	req.BookedHouseID = sanitizer.TrimAndNormalize(req.BookedHouseID)
	req.RenterEmail = sanitizer.NormalizeEmail(req.RenterEmail)
	req.RenterName = sanitizer.NormalizeName(req.RenterName)
	req.RenterPhone = sanitizer.NormalizePhone(req.RenterPhone, s.cfg.PhoneRegions...)
}
