package controllers

import (
	"github.com/gofiber/fiber/v2"

	"dentledger-backend/middlewares"
	"dentledger-backend/utils"
)

type RegisterInput struct {
	Name            string `json:"name" validate:"max=100"`
	Address         string `json:"address" validate:"max=200"`
	Password        string `json:"password" validate:"max=100"`
	PasswordConfirm string `json:"password_confirm" validate:"max=100"`
}

type LoginInput struct {
	Name     string `json:"name" validate:"max=100"`
	Password string `json:"password" validate:"max=100"`
}

// Register adds a dentist to the roster. Field-level checks live in the
// ledger so the status message matches what the log sink records.
func Register(c *fiber.Ctx) error {
	var input RegisterInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	if input.Password != input.PasswordConfirm {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "passwords do not match",
		})
	}

	if err := Ledger.Register(input.Name, input.Address, input.Password); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Dentist " + input.Name + " registered successfully.",
	})
}

// Login checks credentials and issues the session token whose subject is
// the active dentist name.
func Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	dentist, err := Ledger.Login(input.Name, input.Password)
	if err != nil {
		return err
	}

	token, err := middlewares.GenerateJWT(dentist.Name)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token": token,
		"dentist": fiber.Map{
			"name":    dentist.Name,
			"address": dentist.Address,
		},
	})
}

// Logout ends the session. Tokens are stateless, so there is nothing to
// revoke server-side; the client discards the token.
func Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "success",
	})
}

// GetLog returns the most recent operation status message for display.
func GetLog(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"log": Sink.Last(),
	})
}
