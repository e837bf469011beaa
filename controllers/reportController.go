package controllers

import (
	"github.com/gofiber/fiber/v2"

	"dentledger-backend/middlewares"
	"dentledger-backend/report"
	"dentledger-backend/utils"
)

// ReportInput selects the report mode (0 = all patients by name,
// 1 = patients overdue six months by outstanding) and the target file.
type ReportInput struct {
	Mode     int    `json:"mode" validate:"oneof=0 1"`
	Filename string `json:"filename" validate:"max=255"`
}

func CreateReport(c *fiber.Ctx) error {
	var input ReportInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	if err := Ledger.WriteReport(report.Mode(input.Mode), input.Filename); err != nil {
		return err
	}
	middlewares.RequestLogger(c).Info().Int("mode", input.Mode).Str("file", input.Filename).Msg("report written")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": Sink.Last()})
}
