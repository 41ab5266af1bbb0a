package country

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestUpdateFieldsAndSetDocument(t *testing.T) {
	u := Update{
		Population: Some(999),
		Flag:       Some("X"),
		Capital:    Some([]string{}),
	}

	assert.Equal(t, []Field{FieldCapital, FieldFlag, FieldPopulation}, u.Fields())
	assert.False(t, u.IsEmpty())
	assert.Equal(t, bson.D{
		{Key: "capital", Value: []string{}},
		{Key: "flag", Value: "X"},
		{Key: "population", Value: 999},
	}, u.SetDocument())

	assert.True(t, Update{}.IsEmpty())
	assert.Empty(t, Update{}.SetDocument())
}

func TestUpdateApplyLeavesOtherFieldsUntouched(t *testing.T) {
	rec := Record{
		Name:       map[string]interface{}{"common": "France"},
		Flag:       "🇫🇷",
		Population: 67391582,
		Capital:    []string{"Paris"},
	}

	Update{Population: Some(999), UnMember: Some(true)}.Apply(&rec)

	assert.Equal(t, 999, rec.Population)
	assert.True(t, rec.UnMember)
	assert.Equal(t, "France", rec.CommonName())
	assert.Equal(t, "🇫🇷", rec.Flag)
	assert.Equal(t, []string{"Paris"}, rec.Capital)
}

func TestUpdateApplyEveryField(t *testing.T) {
	u := Update{
		Name:        Some(map[string]interface{}{"common": "Atlantis"}),
		Independent: Some(true),
		Status:      Some(true),
		UnMember:    Some(true),
		Currencies:  Some(map[string]Currency{"ATL": {Name: "Shell"}}),
		Capital:     Some([]string{"Poseidonis"}),
		Languages:   Some([]string{"Atlantean"}),
		LatLng:      Some([]float64{31, -24}),
		Flag:        Some("A"),
		Maps:        Some(map[string]string{"osm": "https://osm.org"}),
		Population:  Some(1),
		Timezones:   Some([]string{"UTC-02:00"}),
		Continents:  Some([]string{"Atlantic"}),
	}
	require.Len(t, u.Fields(), len(EditableFields))

	var rec Record
	u.Apply(&rec)

	assert.Equal(t, "Atlantis", rec.CommonName())
	assert.Equal(t, "ATL", rec.PrimaryCurrency())
	assert.Equal(t, []string{"Poseidonis"}, rec.Capital)
	assert.Equal(t, []string{"Atlantean"}, rec.Languages)
	assert.Equal(t, []float64{31, -24}, rec.LatLng)
	assert.Equal(t, "A", rec.Flag)
	assert.Equal(t, 1, rec.Population)
	assert.Equal(t, []string{"UTC-02:00"}, rec.Timezones)
	assert.Equal(t, []string{"Atlantic"}, rec.Continents)
	assert.True(t, rec.Independent && rec.Status && rec.UnMember)
}

func TestUpdateValidate(t *testing.T) {
	tests := []struct {
		name    string
		update  Update
		wantErr string
	}{
		{name: "empty"},
		{name: "emoji flag", update: Update{Flag: Some("🇯🇵")}},
		{name: "flag at limit", update: Update{Flag: Some(strings.Repeat("a", 10))}},
		{name: "flag too long", update: Update{Flag: Some(strings.Repeat("a", 11))}, wantErr: "flag"},
		{name: "timezone too long", update: Update{Timezones: Some([]string{"UTC", "Europe/Amsterdam+1"})}, wantErr: "timezones"},
		{name: "continent too long", update: Update{Continents: Some([]string{"The Antarctic Region"})}, wantErr: "continents"},
		{name: "population not checked", update: Update{Population: Some(-5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.update.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidArgument))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRecordValidate(t *testing.T) {
	assert.NoError(t, Record{Flag: "🇩🇪", Timezones: []string{"UTC+01:00"}, Continents: []string{"Europe"}}.Validate())
	assert.Error(t, Record{Flag: "flag of germany"}.Validate())
	assert.Error(t, Record{Continents: []string{"North and South America"}}.Validate())
}
