package country

import (
	"fmt"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"
)

// Field names an editable record field. The set is closed.
type Field string

const (
	FieldName        Field = "name"
	FieldIndependent Field = "independent"
	FieldStatus      Field = "status"
	FieldUnMember    Field = "unMember"
	FieldCurrencies  Field = "currencies"
	FieldCapital     Field = "capital"
	FieldLanguages   Field = "languages"
	FieldLatLng      Field = "latlng"
	FieldFlag        Field = "flag"
	FieldMaps        Field = "maps"
	FieldPopulation  Field = "population"
	FieldTimezones   Field = "timezones"
	FieldContinents  Field = "continents"
)

// EditableFields lists every editable field in declaration order.
var EditableFields = []Field{
	FieldName, FieldIndependent, FieldStatus, FieldUnMember, FieldCurrencies, FieldCapital,
	FieldLanguages, FieldLatLng, FieldFlag, FieldMaps, FieldPopulation, FieldTimezones,
	FieldContinents,
}

const (
	maxFlagLen  = 10
	maxEntryLen = 15
)

// Optional holds a value that may or may not have been supplied.
type Optional[T any] struct {
	Value T
	Set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Update is a partial edit of a record. Only fields marked Set are written.
type Update struct {
	Name        Optional[map[string]interface{}]
	Independent Optional[bool]
	Status      Optional[bool]
	UnMember    Optional[bool]
	Currencies  Optional[map[string]Currency]
	Capital     Optional[[]string]
	Languages   Optional[[]string]
	LatLng      Optional[[]float64]
	Flag        Optional[string]
	Maps        Optional[map[string]string]
	Population  Optional[int]
	Timezones   Optional[[]string]
	Continents  Optional[[]string]
}

// Fields returns the supplied fields in declaration order.
func (u Update) Fields() []Field {
	var out []Field
	for _, f := range EditableFields {
		if u.isSet(f) {
			out = append(out, f)
		}
	}
	return out
}

func (u Update) IsEmpty() bool {
	return len(u.Fields()) == 0
}

func (u Update) isSet(f Field) bool {
	switch f {
	case FieldName:
		return u.Name.Set
	case FieldIndependent:
		return u.Independent.Set
	case FieldStatus:
		return u.Status.Set
	case FieldUnMember:
		return u.UnMember.Set
	case FieldCurrencies:
		return u.Currencies.Set
	case FieldCapital:
		return u.Capital.Set
	case FieldLanguages:
		return u.Languages.Set
	case FieldLatLng:
		return u.LatLng.Set
	case FieldFlag:
		return u.Flag.Set
	case FieldMaps:
		return u.Maps.Set
	case FieldPopulation:
		return u.Population.Set
	case FieldTimezones:
		return u.Timezones.Set
	case FieldContinents:
		return u.Continents.Set
	}
	return false
}

// value returns the supplied value of f as it is stored.
func (u Update) value(f Field) interface{} {
	switch f {
	case FieldName:
		return u.Name.Value
	case FieldIndependent:
		return u.Independent.Value
	case FieldStatus:
		return u.Status.Value
	case FieldUnMember:
		return u.UnMember.Value
	case FieldCurrencies:
		return u.Currencies.Value
	case FieldCapital:
		return u.Capital.Value
	case FieldLanguages:
		return u.Languages.Value
	case FieldLatLng:
		return u.LatLng.Value
	case FieldFlag:
		return u.Flag.Value
	case FieldMaps:
		return u.Maps.Value
	case FieldPopulation:
		return u.Population.Value
	case FieldTimezones:
		return u.Timezones.Value
	case FieldContinents:
		return u.Continents.Value
	}
	return nil
}

// Apply writes the supplied fields onto r.
func (u Update) Apply(r *Record) {
	if u.Name.Set {
		r.Name = u.Name.Value
	}
	if u.Independent.Set {
		r.Independent = u.Independent.Value
	}
	if u.Status.Set {
		r.Status = u.Status.Value
	}
	if u.UnMember.Set {
		r.UnMember = u.UnMember.Value
	}
	if u.Currencies.Set {
		r.Currencies = u.Currencies.Value
	}
	if u.Capital.Set {
		r.Capital = u.Capital.Value
	}
	if u.Languages.Set {
		r.Languages = u.Languages.Value
	}
	if u.LatLng.Set {
		r.LatLng = u.LatLng.Value
	}
	if u.Flag.Set {
		r.Flag = u.Flag.Value
	}
	if u.Maps.Set {
		r.Maps = u.Maps.Value
	}
	if u.Population.Set {
		r.Population = u.Population.Value
	}
	if u.Timezones.Set {
		r.Timezones = u.Timezones.Value
	}
	if u.Continents.Set {
		r.Continents = u.Continents.Value
	}
}

// SetDocument builds the $set document for the supplied fields.
func (u Update) SetDocument() bson.D {
	doc := bson.D{}
	for _, f := range u.Fields() {
		doc = append(doc, bson.E{Key: string(f), Value: u.value(f)})
	}
	return doc
}

// Validate checks supplied values against the collection's field constraints.
func (u Update) Validate() error {
	if u.Flag.Set {
		if err := checkLen(FieldFlag, u.Flag.Value, maxFlagLen); err != nil {
			return err
		}
	}
	if u.Timezones.Set {
		if err := checkEntries(FieldTimezones, u.Timezones.Value); err != nil {
			return err
		}
	}
	if u.Continents.Set {
		if err := checkEntries(FieldContinents, u.Continents.Value); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a full record against the collection's field constraints.
func (r Record) Validate() error {
	if err := checkLen(FieldFlag, r.Flag, maxFlagLen); err != nil {
		return err
	}
	if err := checkEntries(FieldTimezones, r.Timezones); err != nil {
		return err
	}
	return checkEntries(FieldContinents, r.Continents)
}

func checkLen(f Field, s string, limit int) error {
	if n := utf8.RuneCountInString(s); n > limit {
		return fmt.Errorf("%w: %s is %d characters long, max %d", ErrInvalidArgument, f, n, limit)
	}
	return nil
}

func checkEntries(f Field, entries []string) error {
	for _, e := range entries {
		if err := checkLen(f, e, maxEntryLen); err != nil {
			return err
		}
	}
	return nil
}
