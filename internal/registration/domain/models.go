// Package domain describes the registration workflow: a driving school
// fills a form, pays the subscription, then gets its account provisioned.
package domain

import "strings"

// Form is the registration form carried through checkout as session
// metadata and read back once payment settles.
type Form struct {
	Name            string
	TaxID           string
	Address         string
	City            string
	PostalCode      string
	Email           string
	Phone           string
	ResponsibleName string
}

const (
	metaName            = "name"
	metaTaxID           = "tax_id"
	metaAddress         = "address"
	metaCity            = "city"
	metaPostalCode      = "postal_code"
	metaEmail           = "email"
	metaPhone           = "phone"
	metaResponsibleName = "responsible_name"
)

// Metadata flattens the form into checkout session metadata.
func (f Form) Metadata() map[string]string {
	return map[string]string{
		metaName:            f.Name,
		metaTaxID:           f.TaxID,
		metaAddress:         f.Address,
		metaCity:            f.City,
		metaPostalCode:      f.PostalCode,
		metaEmail:           f.Email,
		metaPhone:           f.Phone,
		metaResponsibleName: f.ResponsibleName,
	}
}

// FormFromMetadata rebuilds the form from session metadata. It returns
// ErrMissingFormData when any required field is absent, which happens
// when a session was created outside the registration flow.
func FormFromMetadata(metadata map[string]string) (Form, error) {
	form := Form{
		Name:            strings.TrimSpace(metadata[metaName]),
		TaxID:           strings.TrimSpace(metadata[metaTaxID]),
		Address:         strings.TrimSpace(metadata[metaAddress]),
		City:            strings.TrimSpace(metadata[metaCity]),
		PostalCode:      strings.TrimSpace(metadata[metaPostalCode]),
		Email:           strings.TrimSpace(metadata[metaEmail]),
		Phone:           strings.TrimSpace(metadata[metaPhone]),
		ResponsibleName: strings.TrimSpace(metadata[metaResponsibleName]),
	}
	if form.Name == "" || form.TaxID == "" || form.Email == "" || form.ResponsibleName == "" {
		return Form{}, ErrMissingFormData
	}
	return form, nil
}

// SplitResponsibleName splits a full name on the first space. When only
// one word is given the family name falls back to a placeholder so the
// admin record always has one.
func SplitResponsibleName(full string) (givenName, familyName string) {
	full = strings.TrimSpace(full)
	given, family, found := strings.Cut(full, " ")
	if !found || strings.TrimSpace(family) == "" {
		return full, "Not specified"
	}
	return given, strings.TrimSpace(family)
}
