package constant

import (
	"net/http"

	"github.com/duccv/auth-service/internal/model/response"
)

var BAD_REQUEST = response.ResponseData{
	Ec:  http.StatusBadRequest,
	Msg: "Bad request",
}

var INVALID_REQUEST = response.ResponseData{
	Ec:  http.StatusBadRequest,
	Msg: "Invalid request payload",
}

// INVALID_EMAIL_OR_PASSWORD rejects register input that fails validation.
var INVALID_EMAIL_OR_PASSWORD = response.ResponseData{
	Ec:  http.StatusBadRequest,
	Msg: "invalid email or password",
}

// UNAUTHORIZED is the single external outcome for every token failure kind.
var UNAUTHORIZED = response.ResponseData{
	Ec:  http.StatusUnauthorized,
	Msg: "Unauthorized",
}

// INVALID_CREDENTIALS is returned for unknown email and wrong password alike,
// so responses never reveal whether an email is registered.
var INVALID_CREDENTIALS = response.ResponseData{
	Ec:  http.StatusUnauthorized,
	Msg: "invalid email or password",
}

var EMAIL_EXISTS = response.ResponseData{
	Ec:  http.StatusConflict,
	Msg: "email already exists",
}

var NOT_FOUND = response.ResponseData{
	Ec:  http.StatusNotFound,
	Msg: "Not found",
}

var INTERNAL_SERVER_ERROR = response.ResponseData{
	Ec:  500,
	Msg: "Internal server error",
}

var FORBIDDEN = response.ResponseData{
	Ec:  403,
	Msg: "Forbidden",
}
