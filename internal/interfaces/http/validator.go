package http

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ucoffee-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Reportar campos con su nombre JSON, que es lo que ve el cliente.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// parseBody decodifica el JSON del request en out y aplica las reglas `validate`.
// Cualquier fallo es un error de validación (400).
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.Invalid("cuerpo inválido: se esperaba JSON")
	}
	if err := validate.Struct(out); err != nil {
		return validationMessage(err)
	}
	return nil
}

func validationMessage(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return domain.Invalid("entrada inválida")
	}
	fe := errs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return domain.Invalid(fmt.Sprintf("el campo '%s' es requerido", field))
	case "email":
		return domain.Invalid(fmt.Sprintf("el campo '%s' debe ser un email válido", field))
	case "min":
		return domain.Invalid(fmt.Sprintf("el campo '%s' debe tener al menos %s elemento(s)", field, fe.Param()))
	case "max":
		return domain.Invalid(fmt.Sprintf("el campo '%s' excede el máximo de %s", field, fe.Param()))
	}
	return domain.Invalid(fmt.Sprintf("el campo '%s' no es válido", field))
}
