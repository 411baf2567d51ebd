package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules adds domain validation tags shared across request DTOs.
func registerCustomRules(v *validator.Validate) {
	// notblank: non-empty after trimming whitespace. "required" alone
	// accepts strings of spaces, which is not a valid message body.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// specialism: the studio's recognized VFX disciplines.
	_ = v.RegisterValidation("specialism", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "compositing", "modeling", "rigging", "animation",
			"fx_simulation", "lighting", "texturing", "matte_painting",
			"motion_capture", "pipeline", "generalist":
			return true
		}
		return false
	})
}
