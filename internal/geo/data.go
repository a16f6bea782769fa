// Package geo carries the static geographic reference data the query builder
// offers: regions, their countries, a city list per country, and the topic
// catalogue.
package geo

import "sort"

var regionCountries = map[string][]string{
	"Africa (North)":                 {"Algeria", "Egypt", "Libya", "Morocco", "Sudan", "Tunisia"},
	"Africa (Sub-Saharan)":           {"Angola", "Benin", "Botswana", "Burkina Faso", "Burundi", "Cameroon", "Cape Verde", "Central African Republic", "Chad", "Comoros", "Congo (Brazzaville)", "Congo (Kinshasa)", "Djibouti", "Equatorial Guinea", "Eritrea", "Ethiopia", "Gabon", "Gambia", "Ghana", "Guinea", "Guinea-Bissau", "Ivory Coast", "Kenya", "Lesotho", "Liberia", "Madagascar", "Malawi", "Mali", "Mauritania", "Mauritius", "Mozambique", "Namibia", "Niger", "Nigeria", "Rwanda", "Sao Tome and Principe", "Senegal", "Seychelles", "Sierra Leone", "Somalia", "South Africa", "South Sudan", "Swaziland", "Tanzania", "Togo", "Uganda", "Zambia", "Zimbabwe"},
	"Asia (East)":                    {"China", "Japan", "Mongolia", "North Korea", "South Korea", "Taiwan"},
	"Asia (Central & South)":         {"Afghanistan", "Bangladesh", "Bhutan", "India", "Iran", "Kazakhstan", "Kyrgyzstan", "Maldives", "Nepal", "Pakistan", "Sri Lanka", "Tajikistan", "Turkmenistan", "Uzbekistan"},
	"Asia (Southeast)":               {"Brunei", "Burma (Myanmar)", "Cambodia", "Indonesia", "Laos", "Malaysia", "Philippines", "Singapore", "Thailand", "Timor-Leste", "Vietnam"},
	"Europe (Western)":               {"Andorra", "Austria", "Belgium", "France", "Germany", "Ireland", "Liechtenstein", "Luxembourg", "Monaco", "Netherlands", "Portugal", "Spain", "Switzerland", "United Kingdom"},
	"Europe (Northern)":              {"Denmark", "Estonia", "Finland", "Iceland", "Latvia", "Lithuania", "Norway", "Sweden"},
	"Europe (Eastern)":               {"Belarus", "Bulgaria", "Czech Republic", "Hungary", "Moldova", "Poland", "Romania", "Russia", "Slovakia", "Ukraine"},
	"Europe (Southern)":              {"Albania", "Bosnia and Herzegovina", "Croatia", "Cyprus", "Greece", "Italy", "Kosovo", "Macedonia", "Malta", "Montenegro", "San Marino", "Serbia", "Slovenia", "Vatican City"},
	"Middle East":                    {"Bahrain", "Iraq", "Israel", "Jordan", "Kuwait", "Lebanon", "Oman", "Palestine", "Qatar", "Saudi Arabia", "Syria", "Turkey", "United Arab Emirates", "Yemen"},
	"North America (USA/Canada)":     {"Canada", "United States"},
	"North America (Mexico/Central)": {"Belize", "Costa Rica", "El Salvador", "Guatemala", "Honduras", "Mexico", "Nicaragua", "Panama"},
	"South America":                  {"Argentina", "Bolivia", "Brazil", "Chile", "Colombia", "Ecuador", "Guyana", "Paraguay", "Peru", "Suriname", "Uruguay", "Venezuela"},
	"Oceania":                        {"Australia", "Fiji", "Kiribati", "Marshall Islands", "Micronesia", "Nauru", "New Zealand", "Palau", "Papua New Guinea", "Samoa", "Solomon Islands", "Tonga", "Tuvalu", "Vanuatu"},
	"Caribbean":                      {"Antigua and Barbuda", "Bahamas", "Barbados", "Cuba", "Dominica", "Dominican Republic", "Grenada", "Haiti", "Jamaica", "Saint Kitts and Nevis", "Saint Lucia", "Saint Vincent and the Grenadines", "Trinidad and Tobago"},
}

var countryCities = map[string][]string{
	"Greece":         {"Athens", "Thessaloniki", "Patras", "Heraklion", "Larissa", "Volos", "Rhodes", "Ioannina", "Chania", "Corinth"},
	"Italy":          {"Rome", "Milan", "Naples", "Turin", "Palermo", "Genoa", "Bologna", "Florence", "Bari", "Catania", "Venice"},
	"Spain":          {"Madrid", "Barcelona", "Valencia", "Seville", "Zaragoza", "Málaga", "Murcia", "Palma", "Bilbao", "Alicante"},
	"Portugal":       {"Lisbon", "Porto", "Amadora", "Braga", "Setúbal", "Coimbra"},
	"France":         {"Paris", "Marseille", "Lyon", "Toulouse", "Nice", "Nantes", "Strasbourg", "Montpellier", "Bordeaux", "Lille"},
	"Germany":        {"Berlin", "Hamburg", "Munich", "Cologne", "Frankfurt", "Stuttgart", "Düsseldorf", "Dortmund", "Essen", "Leipzig"},
	"United Kingdom": {"London", "Birmingham", "Glasgow", "Liverpool", "Bristol", "Manchester", "Sheffield", "Leeds", "Edinburgh", "Leicester"},
	"Ireland":        {"Dublin", "Cork", "Limerick", "Galway", "Waterford"},
	"United States":  {"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose", "Austin", "Jacksonville", "San Francisco", "Indianapolis", "Columbus", "Seattle", "Denver", "Washington", "Boston"},
	"Canada":         {"Toronto", "Montreal", "Vancouver", "Calgary", "Edmonton", "Ottawa", "Winnipeg", "Quebec City", "Hamilton"},
	"Mexico":         {"Mexico City", "Tijuana", "Ecatepec", "León", "Puebla", "Ciudad Juárez", "Guadalajara", "Zapopan", "Monterrey"},
	"China":          {"Shanghai", "Beijing", "Chongqing", "Tianjin", "Guangzhou", "Shenzhen", "Chengdu", "Nanjing", "Wuhan", "Hangzhou"},
	"Japan":          {"Tokyo", "Yokohama", "Osaka", "Nagoya", "Sapporo", "Fukuoka", "Kobe", "Kyoto", "Saitama", "Hiroshima"},
	"South Korea":    {"Seoul", "Busan", "Incheon", "Daegu", "Daejeon", "Gwangju", "Suwon", "Ulsan", "Changwon"},
	"India":          {"Mumbai", "Delhi", "Bangalore", "Hyderabad", "Ahmedabad", "Chennai", "Kolkata", "Surat", "Pune", "Jaipur"},
	"Iran":           {"Tehran", "Mashhad", "Isfahan", "Karaj", "Shiraz", "Tabriz", "Qom", "Ahvaz"},
	"Egypt":          {"Cairo", "Alexandria", "Giza", "Shubra El Kheima", "Port Said", "Suez", "Luxor", "Aswan"},
	"Morocco":        {"Casablanca", "Rabat", "Fes", "Marrakesh", "Tangier", "Agadir"},
	"Brazil":         {"São Paulo", "Rio de Janeiro", "Salvador", "Brasília", "Fortaleza", "Belo Horizonte", "Manaus", "Curitiba", "Recife"},
	"Argentina":      {"Buenos Aires", "Córdoba", "Rosario", "Mendoza", "La Plata", "Tucumán", "Mar del Plata"},
}

// defaultCities keeps the query builder's dropdown non-empty for countries
// without a curated list.
var defaultCities = []string{"Capital City", "Major Port", "Historic Town", "Trade Center"}

var topics = []string{
	"General Summary",
	"Art & Culture",
	"Entertainment",
	"War & Conflict",
	"Politics & Governance",
	"Religion & Philosophy",
	"Science & Technology",
	"Daily Life",
	"Occult & Esotericism",
	"Humor & Anecdotes",
	"Conspiracy Theories",
}

// Regions returns the region names in sorted order.
func Regions() []string {
	out := make([]string, 0, len(regionCountries))
	for r := range regionCountries {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// CountriesFor returns the countries of a region, or nil for an unknown
// region.
func CountriesFor(region string) []string {
	cs, ok := regionCountries[region]
	if !ok {
		return nil
	}
	out := make([]string, len(cs))
	copy(out, cs)
	return out
}

// CitiesFor returns the curated city list for a country, falling back to the
// generic placeholders when none exists.
func CitiesFor(country string) []string {
	cs, ok := countryCities[country]
	if !ok {
		cs = defaultCities
	}
	out := make([]string, len(cs))
	copy(out, cs)
	return out
}

// Topics returns the topic catalogue.
func Topics() []string {
	out := make([]string, len(topics))
	copy(out, topics)
	return out
}

// Reference bundles everything the query builder needs in one response.
type Reference struct {
	Regions map[string][]string `json:"regions"`
	Cities  map[string][]string `json:"cities"`
	Topics  []string            `json:"topics"`
}

// ReferenceData returns a copy of the full reference dataset.
func ReferenceData() Reference {
	regions := make(map[string][]string, len(regionCountries))
	for r := range regionCountries {
		regions[r] = CountriesFor(r)
	}
	cities := make(map[string][]string, len(countryCities))
	for c := range countryCities {
		cities[c] = CitiesFor(c)
	}
	return Reference{Regions: regions, Cities: cities, Topics: Topics()}
}
