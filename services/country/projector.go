package country

import "sort"

// RequiredKeys are the source keys every ingested item must carry. Together
// with the store-assigned id they make up the fourteen API fields.
var RequiredKeys = []string{
	"name", "independent", "status", "unMember", "currencies", "capital", "languages",
	"latlng", "flag", "maps", "population", "timezones", "continents",
}

// MissingKeys reports which RequiredKeys are absent from a raw source item.
func MissingKeys(item map[string]interface{}) []string {
	var missing []string
	for _, k := range RequiredKeys {
		if _, ok := item[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// Project maps a stored record to the API shape. The same shape is used for
// query results and mutation output: name is the common variant and
// currencies is the lexicographically smallest currency code.
func Project(r Record) Country {
	return Country{
		ID:          r.ID.Hex(),
		Name:        r.CommonName(),
		Independent: r.Independent,
		Status:      r.Status,
		UnMember:    r.UnMember,
		Currencies:  r.PrimaryCurrency(),
		Capital:     r.Capital,
		Languages:   r.Languages,
		LatLng:      r.LatLng,
		Flag:        r.Flag,
		Maps:        r.Maps,
		Population:  r.Population,
		Timezones:   r.Timezones,
		Continents:  r.Continents,
	}
}

func ProjectAll(records []Record) []Country {
	out := make([]Country, 0, len(records))
	for _, r := range records {
		out = append(out, Project(r))
	}
	return out
}

func (r Record) CommonName() string {
	common, _ := r.Name["common"].(string)
	return common
}

// PrimaryCurrency returns the smallest currency code, or "" when there is none.
func (r Record) PrimaryCurrency() string {
	if len(r.Currencies) == 0 {
		return ""
	}
	codes := make([]string, 0, len(r.Currencies))
	for code := range r.Currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes[0]
}

// Coordinates returns the stored latitude and longitude, and false when the
// pair is absent or malformed.
func (r Record) Coordinates() (lat, lng float64, ok bool) {
	if len(r.LatLng) != 2 || !finite(r.LatLng[0]) || !finite(r.LatLng[1]) {
		return 0, 0, false
	}
	return r.LatLng[0], r.LatLng[1], true
}
