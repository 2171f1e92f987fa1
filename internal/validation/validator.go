package validation

import (
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator with custom struct-level validation registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// register struct-level validation for the cart key requests: the code
	// fields are stored as-is in the composite cart key, so the separator
	// character is not allowed in any of them.
	v.RegisterStructValidation(validateCartKeyFields, ValidateCartRequest{}, RevalidateCartRequest{})

	return v
}

// validateCartKeyFields rejects the '#' separator inside key fields.
func validateCartKeyFields(sl validatorv10.StructLevel) {
	var customer, store, project string
	switch req := sl.Current().Interface().(type) {
	case ValidateCartRequest:
		customer, store, project = req.CustomerID, req.StoreCode, req.ProjectCode
	case RevalidateCartRequest:
		customer, store, project = req.CustomerID, req.StoreCode, req.ProjectCode
	default:
		return
	}

	if strings.Contains(customer, "#") {
		sl.ReportError(customer, "customer_id", "CustomerID", "no_key_separator", "")
	}
	if strings.Contains(store, "#") {
		sl.ReportError(store, "store_code", "StoreCode", "no_key_separator", "")
	}
	if strings.Contains(project, "#") {
		sl.ReportError(project, "project_code", "ProjectCode", "no_key_separator", "")
	}
}
