package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"petadopt-backend/internal/services"
	"petadopt-backend/internal/storage"
)

// ListPetsHandler returns every listing with owner fields joined in.
func ListPetsHandler(petService *services.PetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pets, err := petService.List(c.Context())
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "error fetching pets"})
		}
		return c.JSON(pets)
	}
}

// MyPetsHandler returns the authenticated user's listings.
func MyPetsHandler(petService *services.PetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pets, err := petService.ListMine(c.Context(), UserID(c))
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "error fetching user pets"})
		}
		return c.JSON(pets)
	}
}

// GetPetHandler returns a single listing by id.
func GetPetHandler(petService *services.PetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pet, err := petService.Get(c.Context(), c.Params("id"))
		if err != nil {
			if errors.Is(err, services.ErrPetNotFound) {
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"message": "pet not found"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "error fetching pet"})
		}
		return c.JSON(pet)
	}
}

// CreatePetHandler creates a listing from a multipart form. The owner is
// forced to the token's user id, never read from the body.
func CreatePetHandler(petService *services.PetService, uploads *storage.Uploads) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := petInput(c, uploads)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "error creating pet"})
		}

		pet, err := petService.Create(c.Context(), UserID(c), in)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "error creating pet"})
		}
		return c.Status(http.StatusCreated).JSON(pet)
	}
}

// UpdatePetHandler applies a partial update to a listing the caller owns.
func UpdatePetHandler(petService *services.PetService, uploads *storage.Uploads) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := petInput(c, uploads)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "error updating pet"})
		}

		pet, err := petService.Update(c.Context(), c.Params("id"), UserID(c), in)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrPetNotFound):
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"message": "pet not found"})
			case errors.Is(err, services.ErrNotOwner):
				return c.Status(http.StatusForbidden).JSON(fiber.Map{"message": "not authorized"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "error updating pet"})
		}
		return c.JSON(pet)
	}
}

// DeletePetHandler removes a listing the caller owns.
func DeletePetHandler(petService *services.PetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := petService.Delete(c.Context(), c.Params("id"), UserID(c))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrPetNotFound):
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"message": "pet not found"})
			case errors.Is(err, services.ErrNotOwner):
				return c.Status(http.StatusForbidden).JSON(fiber.Map{"message": "not authorized"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "error deleting pet"})
		}
		return c.JSON(fiber.Map{"message": "pet deleted"})
	}
}

// petInput reads the multipart fields shared by create and update.
// Absent form fields come back as empty strings, which the service
// treats as "keep the stored value". An optional "image" file is stored
// immediately and its served path recorded.
func petInput(c *fiber.Ctx, uploads *storage.Uploads) (services.PetInput, error) {
	in := services.PetInput{
		Name:        c.FormValue("name"),
		Type:        c.FormValue("type"),
		Breed:       c.FormValue("breed"),
		Location:    c.FormValue("location"),
		Description: c.FormValue("description"),
	}

	if ageStr := c.FormValue("age"); ageStr != "" {
		if age, err := strconv.Atoi(ageStr); err == nil {
			in.Age = &age
		}
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		// No file attached; nothing else to do.
		return in, nil
	}
	path, err := uploads.Save(fileHeader)
	if err != nil {
		return in, err
	}
	in.ImagePath = path
	return in, nil
}
