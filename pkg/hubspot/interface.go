package hubspot

import "context"

// HubSpotClient defines the interface for HubSpot API operations
type HubSpotClient interface {
	// ExchangeCode trades an OAuth authorization code for a credential
	ExchangeCode(ctx context.Context, code string) (Auth, PortalID, error)

	// Refresh trades the held refresh token for a new access token
	Refresh(ctx context.Context) (Auth, error)

	// TokenInfo describes an access token
	TokenInfo(ctx context.Context, accessToken string) (*TokenInfo, error)

	GetContact(ctx context.Context, id ContactID) (Contact, error)
	GetContactByEmail(ctx context.Context, email string) (Contact, error)
	GetContacts(ctx context.Context, count int, offset ContactID) (*ContactPage, error)
	UpdateContact(ctx context.Context, id ContactID, values []PropertyValue) error
	CreateOrUpdateContact(ctx context.Context, email string, values []PropertyValue) (ContactID, bool, error)

	GetProperties(ctx context.Context) ([]Property, error)
	CreateProperty(ctx context.Context, prop Property) (*Property, error)
	GetGroups(ctx context.Context, includeProperties bool) ([]Group, error)
	CreateGroup(ctx context.Context, group Group) (*Group, error)

	GetForms(ctx context.Context) ([]Form, error)
	SubmitForm(ctx context.Context, portalID PortalID, formGUID string, fields map[string]string, hsContext FormContext) error
}

var _ HubSpotClient = (*HubSpot)(nil)
