package middleware

import (
	"errors"
	"net/http"

	restful "github.com/emicklei/go-restful/v3"
)

var (
	ErrEmptyQuestion = errors.New("question must not be empty")
	ErrInvalidGrade  = errors.New("student_grade must be between 1 and 12")
)

type ErrorResponse struct {
	Error string `json:"error" description:"Error message"`
	Code  int    `json:"code" description:"HTTP status code"`
}

func HandleError(resp *restful.Response, err error, code int) {
	resp.WriteHeaderAndEntity(code, ErrorResponse{
		Error: err.Error(),
		Code:  code,
	})
}

// StatusFor maps validation errors to 400 and everything else to 500.
func StatusFor(err error) int {
	if errors.Is(err, ErrEmptyQuestion) || errors.Is(err, ErrInvalidGrade) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
