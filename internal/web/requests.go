package web

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/JonMunkholm/sweeper/internal/core"
	"github.com/go-playground/validator/v10"
)

// ColumnsRequest selects columns for visualization and conversion.
// An empty list clears the selection.
type ColumnsRequest struct {
	Columns []string `json:"columns" validate:"max=1000,dive,required"`
}

// ConvertRequest names the output format.
type ConvertRequest struct {
	Format string `json:"format" validate:"required,oneof=csv excel CSV Excel"`
}

// ActionResponse is the API result of a committed action.
type ActionResponse struct {
	Action      core.Action    `json:"action"`
	Points      int            `json:"points"`
	Messages    []string       `json:"messages,omitempty"`
	Insight     string         `json:"insight,omitempty"`
	Chart       *core.Chart    `json:"chart,omitempty"`
	EarnMessage string         `json:"earnMessage,omitempty"`
	XP          int            `json:"xp"`
	Progress    float64        `json:"progress"`
	File        *core.FileView `json:"file,omitempty"`
}

// CommunityResponse is the API result of joining the community.
type CommunityResponse struct {
	Message string `json:"message"`
}

// UploadResponse reports each file of an upload batch.
type UploadResponse struct {
	Files []UploadFileResult `json:"files"`
	XP    int                `json:"xp"`
}

// UploadFileResult is one file's outcome. Exactly one of Preview and Error is set.
type UploadFileResult struct {
	FileName string         `json:"fileName"`
	FileID   string         `json:"fileId,omitempty"`
	Preview  *core.Preview  `json:"preview,omitempty"`
	Error    *ErrorResponse `json:"error,omitempty"`
}

// validationError lists every field that failed validation.
type validationError struct {
	problems []string
}

func (e validationError) Error() string {
	return "invalid request: " + strings.Join(e.problems, "; ")
}

// requestValidator checks decoded request structs, reporting fields by
// their JSON names.
type requestValidator struct {
	v *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{v: v}
}

// Struct validates req and returns a validationError on failure.
func (rv *requestValidator) Struct(req any) error {
	err := rv.v.Struct(req)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	verr := validationError{}
	for _, fe := range fieldErrs {
		verr.problems = append(verr.problems, formatFieldError(fe))
	}
	return verr
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "max":
		return fmt.Sprintf("%s must have at most %s entries", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
