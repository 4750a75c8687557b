package plugin

// ValidationKind is the severity of a form check.
type ValidationKind string

const (
	ValidationOK      ValidationKind = "ok"
	ValidationWarning ValidationKind = "warning"
	ValidationError   ValidationKind = "error"
)

// FormValidation is the answer to a form field check.
type FormValidation struct {
	Kind    ValidationKind `json:"kind"`
	Message string         `json:"message,omitempty"`
}

func ok() FormValidation {
	return FormValidation{Kind: ValidationOK}
}

func warning(msg string) FormValidation {
	return FormValidation{Kind: ValidationWarning, Message: msg}
}

func validationError(msg string) FormValidation {
	return FormValidation{Kind: ValidationError, Message: msg}
}
