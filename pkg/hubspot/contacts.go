package hubspot

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

type contactWriteRequest struct {
	Properties []PropertyValue `json:"properties"`
}

// GetContact retrieves a contact profile by vid
func (h *HubSpot) GetContact(ctx context.Context, id ContactID) (Contact, error) {
	var contact Contact
	if err := h.call(ctx, http.MethodGet, nil, nil, &contact,
		"contacts", "v1", "contact", "vid", id.String(), "profile"); err != nil {
		h.logger.Error("Get contact failed", zap.Stringer("contact_id", id), zap.Error(err))
		return nil, err
	}
	return contact, nil
}

// GetContactByEmail retrieves a contact profile by email address
func (h *HubSpot) GetContactByEmail(ctx context.Context, email string) (Contact, error) {
	var contact Contact
	if err := h.call(ctx, http.MethodGet, nil, nil, &contact,
		"contacts", "v1", "contact", "email", url.PathEscape(email), "profile"); err != nil {
		h.logger.Error("Get contact by email failed", zap.Error(err))
		return nil, err
	}
	return contact, nil
}

// GetContacts retrieves one page of all contacts. Pass the previous page's
// VidOffset to continue; zero starts from the beginning.
func (h *HubSpot) GetContacts(ctx context.Context, count int, offset ContactID) (*ContactPage, error) {
	if count <= 0 {
		count = 20
	}
	query := url.Values{}
	query.Set("count", strconv.Itoa(count))
	if offset != 0 {
		query.Set("vidOffset", offset.String())
	}

	var page ContactPage
	if err := h.call(ctx, http.MethodGet, query, nil, &page,
		"contacts", "v1", "lists", "all", "contacts", "all"); err != nil {
		h.logger.Error("Get contacts failed", zap.Int("count", count), zap.Error(err))
		return nil, err
	}

	h.logger.Info("Successfully retrieved contacts",
		zap.Int("items_count", len(page.Contacts)),
		zap.Bool("has_more", page.HasMore))
	return &page, nil
}

// UpdateContact writes property values to an existing contact
func (h *HubSpot) UpdateContact(ctx context.Context, id ContactID, values []PropertyValue) error {
	h.logger.Info("Updating contact", zap.Stringer("contact_id", id), zap.Int("properties", len(values)))
	if err := h.call(ctx, http.MethodPost, nil, contactWriteRequest{Properties: values}, nil,
		"contacts", "v1", "contact", "vid", id.String(), "profile"); err != nil {
		h.logger.Error("Update contact failed", zap.Stringer("contact_id", id), zap.Error(err))
		return err
	}
	return nil
}

// CreateOrUpdateContact creates the contact with the given email, or updates
// it if it exists. It reports the contact's vid and whether it was created.
func (h *HubSpot) CreateOrUpdateContact(ctx context.Context, email string, values []PropertyValue) (ContactID, bool, error) {
	var resp struct {
		Vid   ContactID `json:"vid"`
		IsNew bool      `json:"isNew"`
	}
	if err := h.call(ctx, http.MethodPost, nil, contactWriteRequest{Properties: values}, &resp,
		"contacts", "v1", "contact", "createOrUpdate", "email", url.PathEscape(email)); err != nil {
		h.logger.Error("Create or update contact failed", zap.Error(err))
		return 0, false, err
	}

	h.logger.Info("Successfully created or updated contact",
		zap.Stringer("contact_id", resp.Vid),
		zap.Bool("is_new", resp.IsNew))
	return resp.Vid, resp.IsNew, nil
}
