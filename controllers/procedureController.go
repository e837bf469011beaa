package controllers

import (
	"github.com/gofiber/fiber/v2"

	"dentledger-backend/middlewares"
	"dentledger-backend/utils"
)

// ProcedureInput carries catalog fields as entered: cost stays decimal
// text until the ledger parses and validates it.
type ProcedureInput struct {
	Name string `json:"name" validate:"max=100"`
	Cost string `json:"cost" validate:"max=32"`
}

func GetProcedures(c *fiber.Ctx) error {
	return c.JSON(Ledger.Procedures())
}

func CreateProcedure(c *fiber.Ctx) error {
	var input ProcedureInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	if err := Ledger.AddProcedure(input.Name, input.Cost); err != nil {
		return err
	}
	middlewares.RequestLogger(c).Info().Str("procedure", input.Name).Msg("catalog entry added")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": Sink.Last()})
}

func UpdateProcedure(c *fiber.Ctx) error {
	index, err := paramIndex(c, "id")
	if err != nil {
		return err
	}

	var input ProcedureInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	if err := Ledger.EditProcedure(index, input.Name, input.Cost); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": Sink.Last()})
}

func DeleteProcedure(c *fiber.Ctx) error {
	index, err := paramIndex(c, "id")
	if err != nil {
		return err
	}
	if err := Ledger.RemoveProcedure(index); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": Sink.Last()})
}
