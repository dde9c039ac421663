package airport

type entry struct {
	code string
	name string
	tier Tier
}

// catalog lists every known airport. Order matters: name matching walks it front to back.
var catalog = []entry{
	{"ATL", "Atlanta Hartsfield-Jackson", TierMega},
	{"LAX", "Los Angeles International", TierMega},
	{"ORD", "Chicago O'Hare", TierMega},
	{"DFW", "Dallas/Fort Worth", TierMega},
	{"DEN", "Denver International", TierMega},
	{"JFK", "New York JFK", TierMega},

	{"CLT", "Charlotte Douglas", TierLarge},
	{"LAS", "Las Vegas Harry Reid", TierLarge},
	{"MCO", "Orlando International", TierLarge},
	{"MIA", "Miami International", TierLarge},
	{"PHX", "Phoenix Sky Harbor", TierLarge},
	{"SEA", "Seattle-Tacoma", TierLarge},
	{"IAH", "Houston George Bush", TierLarge},
	{"EWR", "Newark Liberty", TierLarge},
	{"SFO", "San Francisco International", TierLarge},
	{"BOS", "Boston Logan", TierLarge},
	{"DTW", "Detroit Metro", TierLarge},
	{"MSP", "Minneapolis-St. Paul", TierLarge},
	{"LGA", "New York LaGuardia", TierLarge},
	{"FLL", "Fort Lauderdale-Hollywood", TierLarge},
	{"BWI", "Baltimore-Washington", TierLarge},
	{"IAD", "Washington Dulles", TierLarge},
	{"SLC", "Salt Lake City", TierLarge},
	{"MDW", "Chicago Midway", TierLarge},
	{"TPA", "Tampa International", TierLarge},
	{"SAN", "San Diego International", TierLarge},
	{"HNL", "Honolulu International", TierLarge},
	{"PDX", "Portland International", TierLarge},
	{"BNA", "Nashville International", TierLarge},
	{"AUS", "Austin-Bergstrom", TierLarge},
	{"RDU", "Raleigh-Durham", TierLarge},

	{"SJC", "San Jose International", TierMedium},
	{"MCI", "Kansas City International", TierMedium},
	{"CLE", "Cleveland Hopkins", TierMedium},
	{"SMF", "Sacramento International", TierMedium},
	{"PIT", "Pittsburgh International", TierMedium},
	{"OAK", "Oakland International", TierMedium},
	{"CVG", "Cincinnati/Northern Kentucky", TierMedium},
	{"IND", "Indianapolis International", TierMedium},
	{"CMH", "Columbus John Glenn", TierMedium},
	{"HOU", "Houston Hobby", TierMedium},
	{"MKE", "Milwaukee Mitchell", TierMedium},
	{"SAT", "San Antonio International", TierMedium},
	{"DAL", "Dallas Love Field", TierMedium},
	{"JAX", "Jacksonville International", TierMedium},
	{"RSW", "Fort Myers Southwest Florida", TierMedium},
	{"ONT", "Ontario International", TierMedium},
	{"PBI", "Palm Beach International", TierMedium},
	{"MSY", "New Orleans Louis Armstrong", TierMedium},
	{"SNA", "Orange County John Wayne", TierMedium},
	{"BUR", "Burbank Hollywood", TierMedium},
	{"RNO", "Reno-Tahoe", TierMedium},
	{"OGG", "Maui Kahului", TierMedium},
	{"SDF", "Louisville International", TierMedium},
	{"CHS", "Charleston International", TierMedium},
	{"PNS", "Pensacola International", TierMedium},

	{"TUS", "Tucson International", TierGeneric},
	{"OKC", "Oklahoma City Will Rogers", TierGeneric},
	{"ABQ", "Albuquerque Sunport", TierGeneric},
	{"DSM", "Des Moines International", TierGeneric},
	{"LGB", "Long Beach Airport", TierGeneric},
	{"GEG", "Spokane International", TierGeneric},
	{"ELP", "El Paso International", TierGeneric},
	{"TUL", "Tulsa International", TierGeneric},
	{"BOI", "Boise Airport", TierGeneric},
	{"RIC", "Richmond International", TierGeneric},
	{"PSP", "Palm Springs International", TierGeneric},
	{"ORF", "Norfolk International", TierGeneric},
	{"ALB", "Albany International", TierGeneric},
	{"SAV", "Savannah/Hilton Head", TierGeneric},
	{"GSP", "Greenville-Spartanburg", TierGeneric},
	{"ROC", "Rochester Greater", TierGeneric},
	{"BUF", "Buffalo Niagara", TierGeneric},
	{"OMA", "Omaha Eppley Airfield", TierGeneric},
	{"SYR", "Syracuse Hancock", TierGeneric},
	{"BHM", "Birmingham-Shuttlesworth", TierGeneric},
	{"LIT", "Little Rock National", TierGeneric},
	{"DAY", "Dayton International", TierGeneric},
	{"ICT", "Wichita Dwight D. Eisenhower", TierGeneric},
	{"COS", "Colorado Springs", TierGeneric},
	{"PWM", "Portland International Jetport", TierGeneric},
}

type sentinel struct {
	code  string
	short string
	name  string
	label string
	tier  Tier
}

var sentinels = []sentinel{
	{code: OtherLarge, short: "OTH", name: "Other Large Airport", label: "Other (Large / International)", tier: TierLarge},
	{code: OtherRegional, short: "REG", name: "Regional Airport", label: "Other (Regional / Small)", tier: TierMedium},
}
