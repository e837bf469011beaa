package controllers

import (
	"github.com/gofiber/fiber/v2"

	"dentledger-backend/middlewares"
	"dentledger-backend/utils"
)

type PatientInput struct {
	Name    string `json:"name" validate:"max=100"`
	Address string `json:"address" validate:"max=200"`
	Phone   string `json:"phone" validate:"max=32"`
}

func GetPatients(c *fiber.Ctx) error {
	return c.JSON(Ledger.Patients())
}

func GetPatient(c *fiber.Ctx) error {
	index, err := paramIndex(c, "id")
	if err != nil {
		return err
	}
	view, err := Ledger.PatientAt(index)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// CreatePatient adds a patient assigned to the active dentist from the
// session token.
func CreatePatient(c *fiber.Ctx) error {
	var input PatientInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	dentist, _ := c.Locals("dentist").(string)
	if dentist == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "no active dentist",
		})
	}

	if err := Ledger.AddPatient(input.Name, input.Address, input.Phone, dentist); err != nil {
		return err
	}
	middlewares.RequestLogger(c).Info().Str("patient", input.Name).Msg("patient added")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": Sink.Last()})
}

func DeletePatient(c *fiber.Ctx) error {
	index, err := paramIndex(c, "id")
	if err != nil {
		return err
	}
	if err := Ledger.RemovePatient(index); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": Sink.Last()})
}

// SavePatients flushes the whole patient roster to its data file.
func SavePatients(c *fiber.Ctx) error {
	if err := Ledger.SavePatients(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": Sink.Last(),
		})
	}
	return c.JSON(fiber.Map{"message": Sink.Last()})
}
