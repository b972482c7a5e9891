package service

import (
	"context"
	"log/slog"

	"github.com/homeboard/homeboard-backend/internal/domain"
	"github.com/homeboard/homeboard-backend/internal/policy"
	"github.com/homeboard/homeboard-backend/internal/reconcile"
	"github.com/homeboard/homeboard-backend/internal/repository"
)

// VehicleService implements the vehicle workflows. Vehicles carry the only
// two-level child hierarchy (servicings, then acts), reconciled recursively.
type VehicleService interface {
	Upsert(ctx context.Context, user *domain.User, req VehicleRequest) (*VehicleResponse, bool, error)
	Edit(ctx context.Context, user *domain.User, id uint, req VehicleRequest) (*VehicleResponse, error)
	GetByID(ctx context.Context, user *domain.User, id uint) (*VehicleResponse, error)
	List(ctx context.Context, user *domain.User) ([]VehicleResponse, error)
	Delete(ctx context.Context, user *domain.User, id uint) error
	MultiDelete(ctx context.Context, user *domain.User, items []MultiDeleteItem) error
}

type vehicleService struct {
	vehicles repository.VehicleRepository
	groups   repository.GroupRepository
}

func NewVehicleService(vehicles repository.VehicleRepository, groups repository.GroupRepository) VehicleService {
	return &vehicleService{vehicles: vehicles, groups: groups}
}

// matchAct reconciles one requested act against a servicing's current acts.
func matchAct(servicing *domain.Servicing) reconcile.MatchFunc[ActRequest, domain.Act] {
	return func(req ActRequest) (*domain.Act, error) {
		if req.ID != 0 {
			for i := range servicing.Acts {
				if servicing.Acts[i].ID != req.ID {
					continue
				}
				act := servicing.Acts[i]
				if req.Description != "" {
					act.Description = req.Description
				}
				if req.Comment != "" {
					act.Comment = req.Comment
				}
				return &act, nil
			}
			slog.Warn("dropping act with unknown id", "servicing_id", servicing.ID, "act_id", req.ID)
			return nil, nil
		}
		if req.Description == "" {
			return nil, nil
		}
		act := domain.Act{Description: req.Description, Comment: req.Comment}
		if err := checkEntity(&act); err != nil {
			return nil, err
		}
		return &act, nil
	}
}

// matchServicing reconciles one requested servicing and, when the request
// includes an acts key, recurses into the act list of the matched servicing.
func matchServicing(vehicle *domain.Vehicle) reconcile.MatchFunc[ServicingRequest, domain.Servicing] {
	return func(req ServicingRequest) (*domain.Servicing, error) {
		var servicing *domain.Servicing
		if req.ID != 0 {
			for i := range vehicle.Servicings {
				if vehicle.Servicings[i].ID == req.ID {
					found := vehicle.Servicings[i]
					servicing = &found
					break
				}
			}
			if servicing == nil {
				slog.Warn("dropping servicing with unknown id", "vehicle_id", vehicle.ID, "servicing_id", req.ID)
				return nil, nil
			}
			if req.Kilometer != 0 {
				servicing.Kilometer = req.Kilometer
			}
		} else {
			if req.Kilometer == 0 {
				return nil, nil
			}
			servicing = &domain.Servicing{Kilometer: req.Kilometer}
		}
		if req.Date != nil {
			servicing.Date = *req.Date
		}
		if req.Acts != nil {
			acts, err := reconcile.Merge(*req.Acts, matchAct(servicing))
			if err != nil {
				return nil, err
			}
			servicing.Acts = acts
		}
		if err := checkEntity(servicing); err != nil {
			return nil, err
		}
		return servicing, nil
	}
}

func (s *vehicleService) apply(ctx context.Context, user *domain.User, vehicle *domain.Vehicle, req VehicleRequest, replaceEmpty bool) error {
	if req.Brand != "" {
		vehicle.Brand = req.Brand
	}
	if req.Model != "" {
		vehicle.Model = req.Model
	}
	if req.Identification != "" {
		vehicle.Identification = req.Identification
	}
	if req.Group.Present {
		group, err := resolveGroupRef(ctx, s.groups, req.Group, user.ID)
		if err != nil {
			return err
		}
		attachGroup(group, &vehicle.GroupID, &vehicle.Group)
	}
	if req.Servicings != nil && (replaceEmpty || len(*req.Servicings) > 0) {
		servicings, err := reconcile.Merge(*req.Servicings, matchServicing(vehicle))
		if err != nil {
			return err
		}
		vehicle.Servicings = servicings
	}
	return checkEntity(vehicle)
}

func (s *vehicleService) Upsert(ctx context.Context, user *domain.User, req VehicleRequest) (*VehicleResponse, bool, error) {
	vehicle := &domain.Vehicle{OwnerID: user.ID, Owner: user}
	created := true

	if req.ID != 0 {
		found, err := s.vehicles.FindVisibleByID(ctx, req.ID, user.ID)
		if err != nil {
			return nil, false, notFound(err, "vehicle", req.ID)
		}
		if !policy.CanAccess(user, found) {
			return nil, false, domain.ErrForbidden
		}
		vehicle = found
		created = false
	}

	if err := s.apply(ctx, user, vehicle, req, false); err != nil {
		return nil, false, err
	}
	if err := s.vehicles.Save(ctx, vehicle); err != nil {
		return nil, false, mapStoreError(err)
	}
	return toVehicleResponse(vehicle), created, nil
}

func (s *vehicleService) Edit(ctx context.Context, user *domain.User, id uint, req VehicleRequest) (*VehicleResponse, error) {
	vehicle, err := s.vehicles.FindVisibleByID(ctx, id, user.ID)
	if err != nil {
		return nil, notFound(err, "vehicle", id)
	}
	if !policy.CanAccess(user, vehicle) {
		return nil, domain.ErrForbidden
	}
	if err := s.apply(ctx, user, vehicle, req, true); err != nil {
		return nil, err
	}
	if err := s.vehicles.Save(ctx, vehicle); err != nil {
		return nil, mapStoreError(err)
	}
	return toVehicleResponse(vehicle), nil
}

func (s *vehicleService) GetByID(ctx context.Context, user *domain.User, id uint) (*VehicleResponse, error) {
	vehicle, err := s.vehicles.FindVisibleByID(ctx, id, user.ID)
	if err != nil {
		return nil, notFound(err, "vehicle", id)
	}
	if !policy.CanAccess(user, vehicle) {
		return nil, domain.ErrForbidden
	}
	return toVehicleResponse(vehicle), nil
}

func (s *vehicleService) List(ctx context.Context, user *domain.User) ([]VehicleResponse, error) {
	vehicles, err := s.vehicles.FindAllVisible(ctx, user.ID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	out := make([]VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		out = append(out, *toVehicleResponse(&vehicles[i]))
	}
	return out, nil
}

func (s *vehicleService) Delete(ctx context.Context, user *domain.User, id uint) error {
	vehicle, err := s.vehicles.FindVisibleByID(ctx, id, user.ID)
	if err != nil {
		return notFound(err, "vehicle", id)
	}
	if !policy.CanDelete(user, vehicle) {
		return domain.ErrForbidden
	}
	return mapStoreError(s.vehicles.SoftDelete(ctx, vehicle.ID))
}

func (s *vehicleService) MultiDelete(ctx context.Context, user *domain.User, items []MultiDeleteItem) error {
	ids := deleteIDs(items)
	if len(ids) == 0 {
		return nil
	}
	return mapStoreError(s.vehicles.SoftDeleteVisible(ctx, ids, user.ID))
}
