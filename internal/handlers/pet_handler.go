package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/petcircle/backend/internal/models"
	"github.com/petcircle/backend/internal/repositories"
)

// PetHandler handles pet registration HTTP requests
type PetHandler struct {
	petRepository  repositories.PetRepository
	userRepository repositories.UserRepository
}

// NewPetHandler creates a new PetHandler
func NewPetHandler(petRepo repositories.PetRepository, userRepo repositories.UserRepository) *PetHandler {
	return &PetHandler{petRepository: petRepo, userRepository: userRepo}
}

// RegisterPetRoutes registers pet-related routes
func (h *PetHandler) RegisterPetRoutes(g *echo.Group) {
	g.POST("/pets", h.CreatePet)
	g.GET("/pets", h.GetMyPets)
	g.GET("/pets/:id", h.GetPet)
	g.DELETE("/pets/:id", h.DeletePet)
}

// CreatePet registers a pet for the authenticated user
func (h *PetHandler) CreatePet(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.CreatePetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pet := &models.Pet{
		OwnerID:   user.ID,
		Name:      req.Name,
		Species:   req.Species,
		Breed:     req.Breed,
		BirthDate: req.BirthDate,
	}
	if err := h.petRepository.CreatePet(pet); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, pet)
}

// GetMyPets lists the authenticated user's pets
func (h *PetHandler) GetMyPets(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	pets, err := h.petRepository.GetPetsByOwnerID(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"pets": pets})
}

// GetPet returns one pet by ID
func (h *PetHandler) GetPet(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid pet ID")
	}

	pet, err := h.petRepository.GetPetByID(uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Pet not found")
	}
	return c.JSON(http.StatusOK, pet)
}

// DeletePet removes one of the authenticated user's pets
func (h *PetHandler) DeletePet(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid pet ID")
	}

	pet, err := h.petRepository.GetPetByID(uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Pet not found")
	}
	if pet.OwnerID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the pet's owner")
	}

	if err := h.petRepository.DeletePet(pet.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
