package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/homeboard/homeboard-backend/internal/domain"
)

// VehicleRepository defines the data operations for vehicles and their
// cascade-owned servicing/act children.
type VehicleRepository interface {
	FindVisibleByID(ctx context.Context, id, userID uint) (*domain.Vehicle, error)
	FindAllVisible(ctx context.Context, userID uint) ([]domain.Vehicle, error)
	Save(ctx context.Context, vehicle *domain.Vehicle) error
	SoftDelete(ctx context.Context, id uint) error
	SoftDeleteVisible(ctx context.Context, ids []uint, userID uint) error
}

type gormVehicleRepository struct {
	db *gorm.DB
}

func NewGormVehicleRepository(db *gorm.DB) VehicleRepository {
	return &gormVehicleRepository{db: db}
}

func visibleVehicles(userID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"vehicles.owner_id = ? OR vehicles.group_id IN (SELECT group_id FROM group_users WHERE user_id = ?)",
			userID, userID,
		)
	}
}

func (r *gormVehicleRepository) FindVisibleByID(ctx context.Context, id, userID uint) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	err := r.db.WithContext(ctx).
		Scopes(visibleVehicles(userID)).
		Preload("Servicings", func(db *gorm.DB) *gorm.DB { return db.Order("servicings.id ASC") }).
		Preload("Servicings.Acts", func(db *gorm.DB) *gorm.DB { return db.Order("acts.id ASC") }).
		Preload("Owner").
		Preload("Group.Users").
		First(&vehicle, id).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *gormVehicleRepository) FindAllVisible(ctx context.Context, userID uint) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	err := r.db.WithContext(ctx).
		Scopes(visibleVehicles(userID)).
		Preload("Servicings", func(db *gorm.DB) *gorm.DB { return db.Order("servicings.id ASC") }).
		Preload("Servicings.Acts", func(db *gorm.DB) *gorm.DB { return db.Order("acts.id ASC") }).
		Preload("Owner").
		Preload("Group").
		Order("vehicles.updated_at DESC").
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

// Save persists the vehicle aggregate in one transaction: vehicle fields,
// then the servicing list (full replace), then each servicing's act list
// (full replace one level deeper). Omitted children are soft-deleted.
func (r *gormVehicleRepository) Save(ctx context.Context, vehicle *domain.Vehicle) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(vehicle).Error; err != nil {
			return err
		}

		keptServicings := make([]uint, 0, len(vehicle.Servicings))
		for i := range vehicle.Servicings {
			if vehicle.Servicings[i].ID != 0 {
				keptServicings = append(keptServicings, vehicle.Servicings[i].ID)
			}
		}

		var removed []uint
		removedQuery := tx.Model(&domain.Servicing{}).Where("vehicle_id = ?", vehicle.ID)
		if len(keptServicings) > 0 {
			removedQuery = removedQuery.Where("id NOT IN ?", keptServicings)
		}
		if err := removedQuery.Pluck("id", &removed).Error; err != nil {
			return err
		}
		if len(removed) > 0 {
			if err := tx.Where("servicing_id IN ?", removed).Delete(&domain.Act{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&domain.Servicing{}, removed).Error; err != nil {
				return err
			}
		}

		for i := range vehicle.Servicings {
			servicing := &vehicle.Servicings[i]
			servicing.VehicleID = vehicle.ID
			if err := tx.Omit(clause.Associations).Save(servicing).Error; err != nil {
				return err
			}

			keptActs := make([]uint, 0, len(servicing.Acts))
			for j := range servicing.Acts {
				if servicing.Acts[j].ID != 0 {
					keptActs = append(keptActs, servicing.Acts[j].ID)
				}
			}
			actRemoval := tx.Where("servicing_id = ?", servicing.ID)
			if len(keptActs) > 0 {
				actRemoval = actRemoval.Where("id NOT IN ?", keptActs)
			}
			if err := actRemoval.Delete(&domain.Act{}).Error; err != nil {
				return err
			}

			for j := range servicing.Acts {
				servicing.Acts[j].ServicingID = servicing.ID
				if err := tx.Save(&servicing.Acts[j]).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *gormVehicleRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return softDeleteVehicles(tx, []uint{id})
	})
}

func (r *gormVehicleRepository) SoftDeleteVisible(ctx context.Context, ids []uint, userID uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var visible []uint
		err := tx.Model(&domain.Vehicle{}).
			Scopes(visibleVehicles(userID)).
			Where("vehicles.id IN ?", ids).
			Pluck("vehicles.id", &visible).Error
		if err != nil || len(visible) == 0 {
			return err
		}
		return softDeleteVehicles(tx, visible)
	})
}

// softDeleteVehicles cascades the soft delete through servicings and acts.
func softDeleteVehicles(tx *gorm.DB, ids []uint) error {
	var servicingIDs []uint
	err := tx.Model(&domain.Servicing{}).
		Where("vehicle_id IN ?", ids).
		Pluck("id", &servicingIDs).Error
	if err != nil {
		return err
	}
	if len(servicingIDs) > 0 {
		if err := tx.Where("servicing_id IN ?", servicingIDs).Delete(&domain.Act{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.Servicing{}, servicingIDs).Error; err != nil {
			return err
		}
	}
	return tx.Delete(&domain.Vehicle{}, ids).Error
}
