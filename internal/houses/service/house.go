package service

import (
	"context"
	"errors"
	houseserrors "househunt/internal/houses/errors"
	"househunt/internal/houses/query"
	"househunt/internal/houses/repository"
	"househunt/internal/houses/validator"
	"househunt/pkg/config"
	apperrors "househunt/pkg/errors"
	httputil "househunt/pkg/http"
	"househunt/pkg/model"
	"househunt/pkg/sanitizer"
	"househunt/pkg/validation"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

type HouseService interface {
	Create(ctx context.Context, req *model.CreateHouseRequest) (*model.House, error)
	GetAll(ctx context.Context) ([]*model.House, error)
	Search(ctx context.Context, params query.Params) ([]*model.House, int64, error)
	GetByOwner(ctx context.Context, ownerEmail string) ([]*model.House, error)
	GetByID(ctx context.Context, id string) (*model.House, error)
	Update(ctx context.Context, id string, update *model.HouseUpdate) (*httputil.UpdateResult, error)
	Delete(ctx context.Context, id string, requesterEmail string) (*httputil.DeleteResult, error)
}

type houseService struct {
	repo      repository.HouseRepository
	validator *validator.HouseValidator
	cfg       *config.Config
}

func NewHouseService(
	repo repository.HouseRepository,
	validator *validator.HouseValidator,
	cfg *config.Config,
) HouseService {
	return &houseService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *houseService) Create(ctx context.Context, req *model.CreateHouseRequest) (*model.House, error) {
	s.sanitize(req)

	if err := s.validator.ValidateCreate(req); err != nil {
		s.cfg.Log.Warn("House validation failed",
			"name", req.Name,
			"owner_email", req.OwnerEmail,
			"error", err,
		)
		return nil, validation.ToAppError(err)
	}

	house := &model.House{
		OwnerEmail:   req.OwnerEmail,
		OwnerName:    req.OwnerName,
		Name:         req.Name,
		Address:      req.Address,
		City:         req.City,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		RoomSize:     req.RoomSize,
		RentPerMonth: req.RentPerMonth,
		Date:         req.Date,
		Picture:      req.Picture,
		PhoneNumber:  req.PhoneNumber,
		Description:  req.Description,
		IsBooking:    false,
	}

	if err := s.repo.Create(ctx, house); err != nil {
		s.cfg.Log.Error("Failed to create house",
			"name", house.Name,
			"owner_email", house.OwnerEmail,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to create house", err)
	}

	s.cfg.Log.Info("House created successfully",
		"id", house.ID,
		"owner_email", house.OwnerEmail,
		"city", house.City,
	)
	return house, nil
}

func (s *houseService) GetAll(ctx context.Context) ([]*model.House, error) {
	houses, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to get all houses", "error", err)
		return nil, apperrors.Internal("Failed to retrieve houses", err)
	}
	return houses, nil
}

// Search returns one page of the filtered listings together with the size of
// the whole filtered set. Count and page are fetched concurrently.
func (s *houseService) Search(ctx context.Context, params query.Params) ([]*model.House, int64, error) {
	filter := params.Filter()

	var count int64
	var houses []*model.House
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(ctx, filter)
		if err != nil {
			s.cfg.Log.Error("Failed to count houses", "error", err)
			errCount = apperrors.Internal("Failed to count houses", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		houses, err = s.repo.Search(ctx, filter, params.Skip, params.Limit)
		if err != nil {
			s.cfg.Log.Error("Failed to search houses",
				"limit", params.Limit,
				"skip", params.Skip,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve houses", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return houses, count, nil
}

func (s *houseService) GetByOwner(ctx context.Context, ownerEmail string) ([]*model.House, error) {
	ownerEmail = sanitizer.NormalizeEmail(ownerEmail)
	if ownerEmail == "" {
		return nil, apperrors.InvalidInput("Owner email cannot be empty")
	}

	houses, err := s.repo.FindByOwner(ctx, ownerEmail)
	if err != nil {
		s.cfg.Log.Error("Failed to get houses by owner", "owner_email", ownerEmail, "error", err)
		return nil, apperrors.Internal("Failed to retrieve houses", err)
	}
	return houses, nil
}

func (s *houseService) GetByID(ctx context.Context, id string) (*model.House, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("House ID cannot be empty")
	}

	house, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, "get", id)
	}
	return house, nil
}

func (s *houseService) Update(ctx context.Context, id string, update *model.HouseUpdate) (*httputil.UpdateResult, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("House ID cannot be empty")
	}

	s.sanitizeUpdate(update)
	if err := s.validator.ValidateUpdate(update); err != nil {
		s.cfg.Log.Warn("House update validation failed", "id", id, "error", err)
		return nil, validation.ToAppError(err)
	}

	result, err := s.repo.Update(ctx, id, updateFields(update))
	if err != nil {
		return nil, s.mapRepoError(err, "update", id)
	}

	s.cfg.Log.Info("House updated successfully",
		"id", id,
		"matched", result.MatchedCount,
		"modified", result.ModifiedCount,
	)
	return &httputil.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
	}, nil
}

// Delete removes a listing on behalf of its owner. Bookings referencing the
// listing are left in place.
func (s *houseService) Delete(ctx context.Context, id string, requesterEmail string) (*httputil.DeleteResult, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("House ID cannot be empty")
	}

	house, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, "delete", id)
	}

	if sanitizer.NormalizeEmail(house.OwnerEmail) != sanitizer.NormalizeEmail(requesterEmail) {
		s.cfg.Log.Warn("Rejected house delete by non-owner",
			"id", id,
			"owner_email", house.OwnerEmail,
			"requester", requesterEmail,
		)
		return nil, apperrors.Forbidden("Only the listing owner can delete it")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, "delete", id)
	}

	s.cfg.Log.Info("House deleted successfully", "id", id, "deleted", deleted)
	return &httputil.DeleteResult{Acknowledged: true, DeletedCount: deleted}, nil
}

func (s *houseService) mapRepoError(err error, op, id string) error {
	switch {
	case errors.Is(err, houseserrors.ErrNotFound):
		return apperrors.NotFoundWithID("House", id)
	case errors.Is(err, houseserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid house ID format")
	default:
		s.cfg.Log.Error("House storage operation failed",
			"operation", op,
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to "+op+" house", err)
	}
}

func (s *houseService) sanitize(req *model.CreateHouseRequest) {
	req.OwnerEmail = sanitizer.NormalizeEmail(req.OwnerEmail)
	req.OwnerName = sanitizer.NormalizeName(req.OwnerName)
	req.Name = sanitizer.NormalizeName(req.Name)
	req.Address = sanitizer.TrimAndNormalize(req.Address)
	req.City = sanitizer.NormalizeCity(req.City)
	req.Date = sanitizer.TrimAndNormalize(req.Date)
	req.Picture = sanitizer.NormalizePictureURL(req.Picture)
	req.PhoneNumber = sanitizer.NormalizePhone(req.PhoneNumber, s.cfg.PhoneRegions...)
	req.Description = sanitizer.TrimAndNormalize(req.Description)
}

func (s *houseService) sanitizeUpdate(u *model.HouseUpdate) {
	apply := func(p *string, fn sanitizer.Strategy) {
		if p != nil {
			*p = fn(*p)
		}
	}
	apply(u.OwnerName, sanitizer.NormalizeName)
	apply(u.Name, sanitizer.NormalizeName)
	apply(u.Address, sanitizer.TrimAndNormalize)
	apply(u.City, sanitizer.NormalizeCity)
	apply(u.Date, sanitizer.TrimAndNormalize)
	apply(u.Picture, sanitizer.NormalizePictureURL)
	apply(u.PhoneNumber, sanitizer.PhoneNormalizer(s.cfg.PhoneRegions))
	apply(u.Description, sanitizer.TrimAndNormalize)
}

// updateFields maps the supplied fields to their stored names. isBooking and
// ownerEmail are never part of the result.
func updateFields(u *model.HouseUpdate) bson.M {
	fields := bson.M{}
	setString := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}
	setString("ownerName", u.OwnerName)
	setString("name", u.Name)
	setString("address", u.Address)
	setString("city", u.City)
	setString("date", u.Date)
	setString("picture", u.Picture)
	setString("phoneNumber", u.PhoneNumber)
	setString("description", u.Description)
	if u.Bedrooms != nil {
		fields["bedrooms"] = *u.Bedrooms
	}
	if u.Bathrooms != nil {
		fields["bathrooms"] = *u.Bathrooms
	}
	if u.RoomSize != nil {
		fields["room_size"] = *u.RoomSize
	}
	if u.RentPerMonth != nil {
		fields["rent_per_month"] = *u.RentPerMonth
	}
	return fields
}
