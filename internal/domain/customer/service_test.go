package customer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chuipos/internal/core/apperror"
)

type fakeRepo struct {
	customers []Customer
	listErr   error
	created   []CreateRequest
}

func (f *fakeRepo) ListCustomers(context.Context) ([]Customer, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]Customer(nil), f.customers...), nil
}

func (f *fakeRepo) CreateCustomer(_ context.Context, req CreateRequest) (*Customer, error) {
	f.created = append(f.created, req)
	c := Customer{ID: int64(100 + len(f.created)), Name: req.Name, PhoneNumber: req.PhoneNumber}
	f.customers = append(f.customers, c)
	return &c, nil
}

func phone(s string) *string { return &s }

func TestDirectory_DefaultResolvedByID(t *testing.T) {
	repo := &fakeRepo{customers: []Customer{
		{ID: 1, Name: "Counter Sales"},
		{ID: 2, Name: "Walk-in Customer"},
	}}
	d := NewDirectory(repo, 1)
	require.NoError(t, d.Load(context.Background()))

	def := d.Default()
	require.NotNil(t, def)
	assert.Equal(t, int64(1), def.ID)
	assert.Equal(t, "Counter Sales", def.Name)
}

func TestDirectory_DefaultSurvivesRename(t *testing.T) {
	repo := &fakeRepo{customers: []Customer{{ID: 1, Name: "Walk-in Customer"}}}
	d := NewDirectory(repo, 1)
	require.NoError(t, d.Load(context.Background()))

	repo.customers[0].Name = "Cash Customer"
	require.NoError(t, d.Load(context.Background()))

	assert.Equal(t, int64(1), d.Default().ID)
}

func TestDirectory_NoDefaultConfigured(t *testing.T) {
	d := NewDirectory(&fakeRepo{}, 0)
	require.NoError(t, d.Load(context.Background()))

	assert.Nil(t, d.Default())
}

func TestDirectory_Filter(t *testing.T) {
	repo := &fakeRepo{customers: []Customer{
		{ID: 1, Name: "Walk-in Customer"},
		{ID: 2, Name: "Jane Wanjiru", PhoneNumber: phone("0712345678")},
		{ID: 3, Name: "Otieno"},
	}}
	d := NewDirectory(repo, 1)
	require.NoError(t, d.Load(context.Background()))

	assert.Len(t, d.Filter(""), 3)
	assert.Equal(t, int64(2), d.Filter("jane")[0].ID)
	assert.Equal(t, int64(2), d.Filter("0712")[0].ID)
	assert.Empty(t, d.Filter("zzz"))
}

func TestDirectory_Create(t *testing.T) {
	repo := &fakeRepo{customers: []Customer{{ID: 1, Name: "Walk-in Customer"}}}
	d := NewDirectory(repo, 1)
	require.NoError(t, d.Load(context.Background()))

	form := Form{}.WithChanges(FormChanges{Name: phone("  Amina "), Phone: phone(" ")})
	created, err := d.Create(context.Background(), form)
	require.NoError(t, err)

	assert.Equal(t, "Amina", created.Name)
	assert.Nil(t, repo.created[0].PhoneNumber)
	_, found := d.Find(created.ID)
	assert.True(t, found)
}

func TestDirectory_CreateRejectsBlankName(t *testing.T) {
	repo := &fakeRepo{}
	d := NewDirectory(repo, 1)

	_, err := d.Create(context.Background(), Form{Phone: "0700"})

	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, repo.created)
}

func TestDirectory_LoadFailure(t *testing.T) {
	d := NewDirectory(&fakeRepo{listErr: errors.New("offline")}, 1)

	assert.Error(t, d.Load(context.Background()))
	assert.Equal(t, int64(1), d.Default().ID)
}

func TestForm_WithChangesKeepsUnsetFields(t *testing.T) {
	f := Form{Name: "Amina", Phone: "0700"}
	name := "Amina K"

	g := f.WithChanges(FormChanges{Name: &name})

	assert.Equal(t, "Amina K", g.Name)
	assert.Equal(t, "0700", g.Phone)
	assert.Equal(t, "Amina", f.Name)
}
