package repositories

import (
	"github.com/petcircle/backend/internal/models"
	"gorm.io/gorm"
)

// PetRepository defines the interface for pet data operations
type PetRepository interface {
	CreatePet(pet *models.Pet) error
	GetPetByID(id uint) (*models.Pet, error)
	GetPetsByOwnerID(ownerID uint) ([]models.Pet, error)
	UpdatePet(pet *models.Pet) error
	DeletePet(id uint) error
}

type postgresPetRepository struct {
	db *gorm.DB
}

// NewPostgresPetRepository creates a new Postgres-backed PetRepository
func NewPostgresPetRepository(db *gorm.DB) PetRepository {
	return &postgresPetRepository{db: db}
}

func (r *postgresPetRepository) CreatePet(pet *models.Pet) error {
	return r.db.Create(pet).Error
}

func (r *postgresPetRepository) GetPetByID(id uint) (*models.Pet, error) {
	var pet models.Pet
	if err := r.db.First(&pet, id).Error; err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *postgresPetRepository) GetPetsByOwnerID(ownerID uint) ([]models.Pet, error) {
	var pets []models.Pet
	if err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *postgresPetRepository) UpdatePet(pet *models.Pet) error {
	return r.db.Save(pet).Error
}

func (r *postgresPetRepository) DeletePet(id uint) error {
	return r.db.Delete(&models.Pet{}, id).Error
}
