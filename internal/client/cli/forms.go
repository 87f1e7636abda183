package cli

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/dmitrijs2005/sweetshop/internal/client/models"
)

// loginForm is what the sign-in view collects.
type loginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f loginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, validation.Required.Error("Email is required"), is.Email.Error("Email is invalid")),
		validation.Field(&f.Password, validation.Required.Error("Password is required"),
			validation.Length(6, 0).Error("Password must be at least 6 characters")),
	)
}

// registerForm is what the sign-up view collects.
type registerForm struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (f registerForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required.Error("Name is required"),
			validation.Length(2, 0).Error("Name must be at least 2 characters")),
		validation.Field(&f.Email, validation.Required.Error("Email is required"), is.Email.Error("Email is invalid")),
		validation.Field(&f.Password, validation.Required.Error("Password is required"),
			validation.Length(6, 0).Error("Password must be at least 6 characters")),
		validation.Field(&f.ConfirmPassword, validation.Required.Error("Please confirm your password"),
			validation.By(stringEquals(f.Password, "Passwords do not match"))),
	)
}

// sweetForm is the admin "add sweet" form.
type sweetForm struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description"`
}

func (f sweetForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required.Error("Name is required")),
		validation.Field(&f.Category, validation.Required.Error("Category is required")),
		validation.Field(&f.Price, validation.Required.Error("Price must be greater than 0"),
			validation.Min(0.0).Exclusive().Error("Price must be greater than 0")),
		validation.Field(&f.Quantity, validation.Min(0).Error("Quantity cannot be negative")),
	)
}

func (f sweetForm) input() models.SweetInput {
	return models.SweetInput{
		Name:        f.Name,
		Category:    f.Category,
		Price:       f.Price,
		Quantity:    f.Quantity,
		Description: f.Description,
	}
}

func stringEquals(want, msg string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != want {
			return errors.New(msg)
		}
		return nil
	}
}
