package affiliation

// Countries is the country gazetteer. Matching walks it in order and the
// first hit wins.
var Countries = []string{
	"Afghanistan", "Albania", "Algeria", "American Samoa", "Andorra", "Angola", "Anguilla",
	"Antarctica", "Antigua and Barbuda", "Argentina", "Armenia", "Aruba", "Australia", "Austria",
	"Azerbaijan", "Bahamas", "Bahrain", "Bangladesh", "Barbados", "Belarus", "Belgium", "Belize",
	"Benin", "Bermuda", "Bhutan", "Bolivia", "Bonaire, Sint Eustatius and Saba",
	"Bosnia and Herzegovina", "Botswana", "Bouvet Island", "Brazil", "British Indian Ocean Territory",
	"Brunei Darussalam", "Bulgaria", "Burkina Faso", "Burundi", "Cabo Verde", "Cambodia", "Cameroon",
	"Canada", "Cayman Islands", "Central African Republic", "Chad", "Chile", "China",
	"Christmas Island", "Cocos Islands", "Colombia", "Comoros", "Democratic Republic of the Congo",
	"Congo", "Cook Islands", "Costa Rica", "Croatia", "Cuba", "Curacao", "Cyprus", "Czechia",
	"Côte d'Ivoire", "Denmark", "Djibouti", "Dominica", "Dominican Republic", "Ecuador", "Egypt",
	"El Salvador", "Equatorial Guinea", "Eritrea", "Estonia", "Eswatini", "Ethiopia",
	"Falkland Islands", "Faroe Islands", "Fiji", "Finland", "France", "French Guiana",
	"French Polynesia", "French Southern Territories", "Gabon", "Gambia", "Georgia", "Germany",
	"Ghana", "Gibraltar", "Greece", "Greenland", "Grenada", "Guadeloupe", "Guam", "Guatemala",
	"Guernsey", "Guinea", "Guinea-Bissau", "Guyana", "Haiti", "Heard Island and McDonald Islands",
	"Holy See", "Honduras", "Hong Kong", "Hungary", "Iceland", "India", "Indonesia", "Iran", "Iraq",
	"Ireland", "Isle of Man", "Israel", "Italy", "Jamaica", "Japan", "Jersey", "Jordan", "Kazakhstan",
	"Kenya", "Kiribati", "North Korea", "South Korea", "Kuwait", "Kyrgyzstan",
	"Lao People's Democratic Republic", "Latvia", "Lebanon", "Lesotho", "Liberia", "Libya",
	"Liechtenstein", "Lithuania", "Luxembourg", "Macao", "Madagascar", "Malawi", "Malaysia",
	"Maldives", "Mali", "Malta", "Marshall Islands", "Martinique", "Mauritania", "Mauritius",
	"Mayotte", "Mexico", "Micronesia", "Moldova", "Monaco", "Mongolia", "Montenegro", "Montserrat",
	"Morocco", "Mozambique", "Myanmar", "Namibia", "Nauru", "Nepal", "Netherlands", "New Caledonia",
	"New Zealand", "Nicaragua", "Niger", "Nigeria", "Niue", "Norfolk Island",
	"Northern Mariana Islands", "Norway", "Oman", "Pakistan", "Palau", "Palestine", "Panama",
	"Papua New Guinea", "Paraguay", "Peru", "Philippines", "Pitcairn", "Poland", "Portugal",
	"Puerto Rico", "Qatar", "Republic of North Macedonia", "Romania", "Russian Federation", "Rwanda",
	"Réunion", "Saint Barthelemy", "Saint Helena, Ascension and Tristan da Cunha",
	"Saint Kitts and Nevis", "Saint Lucia", "Saint Martin", "Saint Pierre and Miquelon",
	"Saint Vincent and the Grenadines", "Samoa", "San Marino", "Sao Tome and Principe",
	"Saudi Arabia", "Senegal", "Serbia", "Seychelles", "Sierra Leone", "Singapore", "Sint Maarten",
	"Slovakia", "Slovenia", "Solomon Islands", "Somalia", "South Africa",
	"South Georgia and the South Sandwich Islands", "South Sudan", "Spain", "Sri Lanka", "Sudan",
	"Suriname", "Svalbard and Jan Mayen", "Sweden", "Switzerland", "Syrian Arab Republic", "Taiwan",
	"Tajikistan", "Tanzania", "Thailand", "Timor-Leste", "Togo", "Tokelau", "Tonga",
	"Trinidad and Tobago", "Tunisia", "Turkey", "Turkmenistan", "Turks and Caicos Islands", "Tuvalu",
	"Uganda", "Ukraine", "United Arab Emirates", "United Kingdom",
	"United States Minor Outlying Islands", "United States of America", "Uruguay", "Uzbekistan",
	"Vanuatu", "Venezuela", "Viet Nam", "Virgin Islands (British)", "Virgin Islands (U.S.)",
	"Wallis and Futuna", "Western Sahara", "Yemen", "Zambia", "Zimbabwe", "Aland Islands",
}

// InstitutionIndicators are lowercase substrings that mark an affiliation
// segment as naming an institution, in the order they are tried.
var InstitutionIndicators = []string{
	"chuo kikuu", "egyetemi", "eyunivesithi", "háskóli", "inivèsite", "inyuvesi", "iunivesite",
	"jaamacad", "jami'a", "kulanui", "mahadum", "oilthigh", "ollscoile", "oniversite", "prifysgol",
	"sveučilište", "unibersidad", "unibertsitatea", "univ", "universidad", "universidade",
	"universitas", "universitat", "universitate", "universitato", "universiteit", "universitet",
	"universitetas", "universiti", "università", "universität", "université", "universite",
	"universitāte", "univerza", "univerzita", "univerzitet", "univesithi", "uniwersytet",
	"vniuersitatis", "whare wananga", "yliopisto", "yunifasiti", "yunivesite", "yunivhesiti", "zanko",
	"ülikool", "üniversite", "πανεπιστήμιο", "универзитет", "университет", "універсітэт",
	"university", "academy", "institut", "supérieur", "ibmec", "uff", "gradevinski", "lab.",
	"politecnico", "research", "laborat", "college",
}

// Alias rewrites an abbreviated country spelling before matching.
type Alias struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WoSCountryAliases expands the abbreviated country names Web of Science
// uses in addresses. Applied in order, case-insensitively.
var WoSCountryAliases = []Alias{
	{" USA", " United States of America"},
	{"ENGLAND", "United Kingdom"},
	{"Antigua & Barbu", "Antigua and Barbuda"},
	{"Bosnia & Herceg", "Bosnia and Herzegovina"},
	{"Cent Afr Republ", "Central African Republic"},
	{"Dominican Rep", "Dominican Republic"},
	{"Equat Guinea", "Equatorial Guinea"},
	{"Fr Austr Lands", "French Southern Territories"},
	{"Fr Polynesia", "French Polynesia"},
	{"Malagasy Republ", "Madagascar"},
	{"Mongol Peo Rep", "Mongolia"},
	{"Neth Antilles", "Saint Martin"},
	{"North Ireland", "Ireland"},
	{"Peoples R China", "China"},
	{"Rep of Georgia", "Georgia"},
	{"Sao Tome E Prin", "Sao Tome and Principe"},
	{"St Kitts & Nevi", "Saint Kitts and Nevis"},
	{"Trinid & Tobago", "Trinidad and Tobago"},
	{"U Arab Emirates", "United Arab Emirates"},
}
