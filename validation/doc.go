// Package validation checks configuration values before they are used.
//
// It supports both struct tag validation (using the validator library) and
// programmatic checks collected under field path scopes. Both report failures as
// *errors.AppError with code INVALID_CONFIG and per-field details.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    BaseURL string `validate:"required,url"`
//	    Method  string `validate:"omitempty,httpmethod"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	s := v.Scope("get[video]")
//	s.Method("method", d.Method)
//	s.AppliesTo(kind.Queries(), "query", "get", "list")
//	err := v.Validate() // "get[video].query: only applies to get and list"
package validation
