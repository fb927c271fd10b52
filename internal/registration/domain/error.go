package domain

import "errors"

var (
	ErrDuplicateEmail      = errors.New("email_already_registered")
	ErrDuplicateTaxID      = errors.New("tax_id_already_registered")
	ErrPaymentNotCompleted = errors.New("payment_not_completed")
	ErrMissingFormData     = errors.New("missing_form_data")

	ErrAuthCreationFailed         = errors.New("auth_creation_failed")
	ErrTempPasswordPersistFailed  = errors.New("temp_password_persist_failed")
	ErrOrganizationCreationFailed = errors.New("organization_creation_failed")
	ErrAdminUserCreationFailed    = errors.New("admin_user_creation_failed")
)
