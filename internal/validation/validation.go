package validation

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/duccv/auth-service/internal/constant"
)

var validate *validator.Validate = validator.New()

// ValidateBody binds the JSON request body into B, runs struct validation and
// stores the result under constant.ValidatedBodyKey for the handler. Binding
// or validation failures abort the request with a 400.
func ValidateBody[B any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body B

		resData := constant.INVALID_REQUEST

		if err := c.ShouldBindJSON(&body); err != nil {
			resData.Error = err.Error()
			c.AbortWithStatusJSON(http.StatusBadRequest, resData)
			return
		}

		if err := validate.Struct(body); err != nil {
			resData.Error = err.Error()
			c.AbortWithStatusJSON(http.StatusBadRequest, resData)
			return
		}

		c.Set(constant.ValidatedBodyKey, body)
		c.Next()
	}
}
