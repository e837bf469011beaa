package controllers

import (
	"github.com/gofiber/fiber/v2"

	"dentledger-backend/middlewares"
	"dentledger-backend/utils"
)

// InvoiceInput names the catalog entry that seeds the invoice (or is
// appended to an existing one) by its index in the current catalog
// listing.
type InvoiceInput struct {
	Procedure int `json:"procedure" validate:"min=0"`
}

type PaymentInput struct {
	Amount string `json:"amount" validate:"max=32"`
}

// CreateInvoice opens a new invoice for a patient, seeded with a copy of
// the addressed catalog entry.
func CreateInvoice(c *fiber.Ctx) error {
	patient, err := paramIndex(c, "id")
	if err != nil {
		return err
	}
	var input InvoiceInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	if err := Ledger.AddInvoice(patient, input.Procedure); err != nil {
		return err
	}
	middlewares.RequestLogger(c).Info().Int("patient", patient).Msg("invoice opened")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": Sink.Last()})
}

func DeleteInvoice(c *fiber.Ctx) error {
	patient, err := paramIndex(c, "id")
	if err != nil {
		return err
	}
	invoice, err := paramIndex(c, "inv")
	if err != nil {
		return err
	}
	if err := Ledger.RemoveInvoice(patient, invoice); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": Sink.Last()})
}

func AddInvoiceProcedure(c *fiber.Ctx) error {
	patient, err := paramIndex(c, "id")
	if err != nil {
		return err
	}
	invoice, err := paramIndex(c, "inv")
	if err != nil {
		return err
	}
	var input InvoiceInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	if err := Ledger.AddInvoiceProcedure(patient, invoice, input.Procedure); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": Sink.Last()})
}

func DeleteInvoiceProcedure(c *fiber.Ctx) error {
	patient, err := paramIndex(c, "id")
	if err != nil {
		return err
	}
	invoice, err := paramIndex(c, "inv")
	if err != nil {
		return err
	}
	procedure, err := paramIndex(c, "proc")
	if err != nil {
		return err
	}
	if err := Ledger.RemoveInvoiceProcedure(patient, invoice, procedure); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": Sink.Last()})
}

// CreatePayment records a payment against an invoice, dated now.
func CreatePayment(c *fiber.Ctx) error {
	patient, err := paramIndex(c, "id")
	if err != nil {
		return err
	}
	invoice, err := paramIndex(c, "inv")
	if err != nil {
		return err
	}
	var input PaymentInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	if err := Ledger.AddPayment(patient, invoice, input.Amount); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": Sink.Last()})
}

func DeletePayment(c *fiber.Ctx) error {
	patient, err := paramIndex(c, "id")
	if err != nil {
		return err
	}
	invoice, err := paramIndex(c, "inv")
	if err != nil {
		return err
	}
	payment, err := paramIndex(c, "pay")
	if err != nil {
		return err
	}
	if err := Ledger.RemovePayment(patient, invoice, payment); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": Sink.Last()})
}
