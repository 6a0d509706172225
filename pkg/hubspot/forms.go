package hubspot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	httpclient "github.com/natserract/hubspot/pkg/http"
	"go.uber.org/zap"
)

// Form is a lead-capture form.
type Form struct {
	GUID       string   `json:"guid"`
	Name       string   `json:"name"`
	PortalID   PortalID `json:"portalId"`
	Action     string   `json:"action"`
	Method     string   `json:"method"`
	SubmitText string   `json:"submitText"`
	Redirect   string   `json:"redirect"`
	CreatedAt  int64    `json:"createdAt"`
	UpdatedAt  int64    `json:"updatedAt"`
}

// FormContext is sent as hs_context with a submission so HubSpot can tie it
// to the visitor's tracking cookie.
type FormContext struct {
	UserToken UserToken `json:"hutk,omitempty"`
	IPAddress string    `json:"ipAddress,omitempty"`
	PageURL   string    `json:"pageUrl,omitempty"`
	PageName  string    `json:"pageName,omitempty"`
}

// GetForms retrieves the portal's forms
func (h *HubSpot) GetForms(ctx context.Context) ([]Form, error) {
	var forms []Form
	if err := h.call(ctx, http.MethodGet, nil, nil, &forms, "forms", "v2", "forms"); err != nil {
		h.logger.Error("Get forms failed", zap.Error(err))
		return nil, err
	}

	h.logger.Info("Successfully retrieved forms", zap.Int("items_count", len(forms)))
	return forms, nil
}

// SubmitForm submits field values to a form on behalf of a visitor. The
// forms endpoint is public, so no access token is sent.
func (h *HubSpot) SubmitForm(ctx context.Context, portalID PortalID, formGUID string, fields map[string]string, hsContext FormContext) error {
	endpoint, err := httpclient.BuildURL(h.config.FormsBaseURI, nil, "uploads", "form", "v2", portalID.String(), formGUID)
	if err != nil {
		return err
	}

	hsContextJSON, err := json.Marshal(hsContext)
	if err != nil {
		return fmt.Errorf("failed to marshal hs_context: %w", err)
	}

	form := url.Values{}
	for k, v := range fields {
		form.Set(k, v)
	}
	form.Set("hs_context", string(hsContextJSON))

	h.logger.Info("Submitting form",
		zap.Stringer("portal_id", portalID),
		zap.String("form_guid", formGUID),
		zap.Int("fields", len(fields)))

	if _, err := h.httpClient.PostForm(ctx, endpoint, form); err != nil {
		h.logger.Error("Submit form failed", zap.String("form_guid", formGUID), zap.Error(err))
		return fmt.Errorf("submit form failed: %w", err)
	}
	return nil
}
