// Package validator validates request payloads with go-playground/validator
// and flattens the result into field/message pairs suitable for JSON error
// bodies.
//
// Field names follow the struct's json tags, so the reported path matches
// what the client sent:
//
//	type request struct {
//	    To      string `json:"to" validate:"required,email"`
//	    Subject string `json:"subject" validate:"required,max=255"`
//	}
//
//	if err := validator.ValidateStruct(&req); err != nil {
//	    if ve := validator.ExtractValidationErrors(err); ve != nil {
//	        // ve[0].Field == "to"
//	    }
//	}
package validator
