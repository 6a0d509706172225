package services

import (
	"context"
	"errors"
	"testing"

	"github.com/natserract/hubspot/pkg/hubspot"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newGroupTestFixture(t *testing.T) (*GroupService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewGroupService(mock, zaptest.NewLogger(t)), mock
}

func lifecycleStage() hubspot.Property {
	return hubspot.Property{
		Name:         "lifecyclestage",
		Label:        "Lifecycle Stage",
		Description:  "The qualification of contacts to sales readiness.",
		GroupName:    "contactinformation",
		Type:         hubspot.KnownPropertyType(hubspot.PropertyEnumeration),
		FieldType:    hubspot.KnownFieldType(hubspot.FieldRadio),
		FormField:    true,
		DisplayOrder: 3,
		Options: []hubspot.PropertyOption{
			{Label: "Subscriber", Value: "subscriber", DisplayOrder: 0},
			{Label: "Lead", Value: "lead", DisplayOrder: 1},
		},
	}
}

func contactInformation() hubspot.Group {
	return hubspot.Group{
		Name:        "contactinformation",
		DisplayName: "Contact Information",
		PortalID:    62515,
		Properties:  []hubspot.Property{lifecycleStage()},
	}
}

func expectPropertyInsert(mock pgxmock.PgxPoolIface, prop hubspot.Property) *pgxmock.ExpectedExec {
	return mock.ExpectExec("INSERT INTO properties").
		WithArgs(int64(62515), prop.Name, prop.GroupName, prop.Label, prop.Description,
			prop.Type.String(), prop.FieldType.String(), prop.FormField, prop.DisplayOrder,
			pgxmock.AnyArg())
}

func TestGroupService_SaveGroup(t *testing.T) {
	svc, mock := newGroupTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO property_groups").
		WithArgs(int64(62515), "contactinformation", "Contact Information", 0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, svc.SaveGroup(context.Background(), contactInformation()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupService_SaveGroup_Error(t *testing.T) {
	svc, mock := newGroupTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO property_groups").
		WithArgs(int64(62515), "contactinformation", "Contact Information", 0).
		WillReturnError(errors.New("connection reset"))

	err := svc.SaveGroup(context.Background(), contactInformation())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contactinformation")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupService_SaveProperties(t *testing.T) {
	svc, mock := newGroupTestFixture(t)
	defer mock.Close()

	prop := lifecycleStage()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO properties").
		WithArgs(int64(62515), "lifecyclestage", "contactinformation", "Lifecycle Stage",
			"The qualification of contacts to sales readiness.",
			"enumeration", "radio", true, 3,
			`[{"label":"Subscriber","value":"subscriber","displayOrder":0},{"label":"Lead","value":"lead","displayOrder":1}]`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	group := contactInformation()
	group.Properties = []hubspot.Property{prop}
	require.NoError(t, svc.SaveProperties(context.Background(), group))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupService_SaveProperties_UnknownTypesAndNoOptions(t *testing.T) {
	svc, mock := newGroupTestFixture(t)
	defer mock.Close()

	prop := hubspot.Property{
		Name:      "mobile",
		GroupName: "contactinformation",
		Type:      hubspot.UnknownPropertyType("phone_number"),
		FieldType: hubspot.UnknownFieldType("phonenumber"),
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO properties").
		WithArgs(int64(62515), "mobile", "contactinformation", "", "",
			"phone_number", "phonenumber", false, 0, "[]").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	group := contactInformation()
	group.Properties = []hubspot.Property{prop}
	require.NoError(t, svc.SaveProperties(context.Background(), group))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupService_SaveProperties_RollsBackOnError(t *testing.T) {
	svc, mock := newGroupTestFixture(t)
	defer mock.Close()

	first := lifecycleStage()
	second := lifecycleStage()
	second.Name = "hs_lead_status"

	mock.ExpectBegin()
	expectPropertyInsert(mock, first).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	expectPropertyInsert(mock, second).WillReturnError(errors.New("value too long"))
	mock.ExpectRollback()

	group := contactInformation()
	group.Properties = []hubspot.Property{first, second}
	err := svc.SaveProperties(context.Background(), group)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hs_lead_status")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupService_SaveProperties_EmptyGroup(t *testing.T) {
	svc, mock := newGroupTestFixture(t)
	defer mock.Close()

	group := contactInformation()
	group.Properties = []hubspot.Property{}
	require.NoError(t, svc.SaveProperties(context.Background(), group))
	assert.NoError(t, mock.ExpectationsWereMet())
}
