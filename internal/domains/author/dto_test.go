package author

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/shared/apperr"
)

func TestCreateAuthorRequestValidateAccumulates(t *testing.T) {
	// Everything wrong at once: every violation must be reported, not
	// just the first.
	req := CreateAuthorRequest{
		Email:   "not-an-email",
		Website: "example.com",
	}
	req.Normalize()

	err := req.Validate()
	require.Error(t, err)

	details := apperr.FromValidation(err).Details
	assert.Len(t, details, 6) // name, bio, birthDate, nationality, email, website
}

func TestCreateAuthorRequestValidateOK(t *testing.T) {
	req := CreateAuthorRequest{
		Name:        "  Ursula K. Le Guin  ",
		Bio:         "American author",
		BirthDate:   "1929-10-21",
		Nationality: "American",
		Email:       "  URSULA@Example.COM ",
		Website:     "https://www.ursulakleguin.com",
	}
	req.Normalize()

	require.NoError(t, req.Validate())
	assert.Equal(t, "Ursula K. Le Guin", req.Name)
	assert.Equal(t, "ursula@example.com", req.Email)
}

func TestCreateAuthorRequestRejectsFutureBirthDate(t *testing.T) {
	req := CreateAuthorRequest{
		Name:        "Time Traveler",
		Bio:         "x",
		BirthDate:   "2999-01-01",
		Nationality: "T",
	}
	req.Normalize()

	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, apperr.FromValidation(err).Details[0], "birthDate")
}

func TestToEntityDefaults(t *testing.T) {
	req := CreateAuthorRequest{
		Name:        "Test",
		Bio:         "x",
		BirthDate:   "1980-01-01",
		Nationality: "T",
		Awards:      []string{"Hugo", "Hugo", "Nebula", ""},
	}

	a := req.ToEntity()

	assert.True(t, a.IsActive)
	assert.Equal(t, []string{"Hugo", "Nebula"}, a.Awards)
}

func TestUpdateAuthorRequestSkipsAbsentFields(t *testing.T) {
	// Empty patch: nothing required, nothing validated.
	req := UpdateAuthorRequest{}
	req.Normalize()
	assert.NoError(t, req.Validate())

	// Present fields still must pass their rules.
	bad := "not-an-email"
	req = UpdateAuthorRequest{Email: &bad}
	assert.Error(t, req.Validate())

	// Present-but-blank cannot unset a required field.
	blank := "   "
	req = UpdateAuthorRequest{Name: &blank}
	req.Normalize()
	assert.Error(t, req.Validate())
}

func TestUpdateAuthorRequestApply(t *testing.T) {
	a := Author{
		Name:        "Old Name",
		Bio:         "Old bio",
		BirthDate:   "1950-01-01",
		Nationality: "Old",
		Awards:      []string{"Hugo"},
		IsActive:    true,
	}

	newName := "New Name"
	inactive := false
	req := UpdateAuthorRequest{
		Name:     &newName,
		Awards:   []string{"Hugo", "Nebula"},
		IsActive: &inactive,
	}
	req.Apply(&a)

	assert.Equal(t, "New Name", a.Name)
	assert.Equal(t, "Old bio", a.Bio)
	assert.Equal(t, "1950-01-01", a.BirthDate)
	assert.Equal(t, []string{"Hugo", "Nebula"}, a.Awards)
	assert.False(t, a.IsActive)
}

func TestAddAward(t *testing.T) {
	a := Author{}

	assert.True(t, a.AddAward("Hugo"))
	assert.False(t, a.AddAward("Hugo"))
	assert.True(t, a.AddAward("Nebula"))
	assert.Equal(t, []string{"Hugo", "Nebula"}, a.Awards)
}
