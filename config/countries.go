package config

// Country names recognized by the house country selector. Anything else
// (including an empty selection) is treated as CountryOther.
const (
	CountryUnitedStates  = "United States"
	CountryCanada        = "Canada"
	CountryMexico        = "Mexico"
	CountryUnitedKingdom = "United Kingdom"
	CountryOther         = "Other"
)

// Country represents a country configuration
type Country struct {
	Name    string `json:"name"`
	ISOCode string `json:"iso_code"`
}

// SupportedCountries is the list of countries supported by the application
var SupportedCountries = []Country{
	{Name: CountryUnitedStates, ISOCode: "us"},
	{Name: CountryCanada, ISOCode: "ca"},
	{Name: CountryMexico, ISOCode: "mx"},
	{Name: CountryUnitedKingdom, ISOCode: "gb"},
	{Name: CountryOther, ISOCode: ""},
}

// GetCountryNames returns a list of supported country names
func GetCountryNames() []string {
	names := make([]string, len(SupportedCountries))
	for i, country := range SupportedCountries {
		names[i] = country.Name
	}
	return names
}

// GetCountryByName returns a country configuration by name
func GetCountryByName(name string) *Country {
	for _, country := range SupportedCountries {
		if country.Name == name {
			return &country
		}
	}
	return nil
}

// ISOCodeForCountry returns the ISO 3166-1 alpha-2 code used to constrain
// geocoding queries, or empty when the country is unknown or "Other".
func ISOCodeForCountry(name string) string {
	if c := GetCountryByName(name); c != nil {
		return c.ISOCode
	}
	return ""
}
