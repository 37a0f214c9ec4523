package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// formValue trims whitespace; every string field on every form goes
// through this.
func formValue(ctx *gin.Context, name string) string {
	return strings.TrimSpace(ctx.PostForm(name))
}

// formInt collapses missing or non-numeric input to 0 rather than erroring;
// a garbled sort order is not worth failing a save over.
func formInt(ctx *gin.Context, name string) int {
	n, err := strconv.Atoi(formValue(ctx, name))

	if err != nil {
		return 0
	}

	return n
}

func formInt64(ctx *gin.Context, name string) int64 {
	n, err := strconv.ParseInt(formValue(ctx, name), 10, 64)

	if err != nil {
		return 0
	}

	return n
}

func parseQueryID(ctx *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(ctx.Query(name)), 10, 64)
}

// validationErrors flattens validator output into field -> message for
// inline display next to the inputs.
func validationErrors(err error) map[string]string {
	out := make(map[string]string)

	verrs, ok := err.(validator.ValidationErrors)

	if !ok {
		out["form"] = "Invalid input."
		return out
	}

	for _, fe := range verrs {
		out[strings.ToLower(fe.Field())] = validationMessage(fe.Tag(), fe.Param())
	}

	return out
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "gt":
		return "must be greater than " + param
	default:
		if param != "" {
			return "failed " + rule + " validation (" + param + ")"
		}
		return "failed " + rule + " validation"
	}
}
