// Package teams holds the league team directory. Providers resolve tricodes
// through it so upstream files only need to carry team IDs.
package teams

// Team is one franchise entry in the directory.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var directory = map[string]Team{
	"ATL": {ID: "ATL", Name: "Atlanta Hawks"},
	"BOS": {ID: "BOS", Name: "Boston Celtics"},
	"BKN": {ID: "BKN", Name: "Brooklyn Nets"},
	"CHA": {ID: "CHA", Name: "Charlotte Hornets"},
	"CHI": {ID: "CHI", Name: "Chicago Bulls"},
	"CLE": {ID: "CLE", Name: "Cleveland Cavaliers"},
	"DAL": {ID: "DAL", Name: "Dallas Mavericks"},
	"DEN": {ID: "DEN", Name: "Denver Nuggets"},
	"DET": {ID: "DET", Name: "Detroit Pistons"},
	"GSW": {ID: "GSW", Name: "Golden State Warriors"},
	"HOU": {ID: "HOU", Name: "Houston Rockets"},
	"IND": {ID: "IND", Name: "Indiana Pacers"},
	"LAC": {ID: "LAC", Name: "Los Angeles Clippers"},
	"LAL": {ID: "LAL", Name: "Los Angeles Lakers"},
	"MEM": {ID: "MEM", Name: "Memphis Grizzlies"},
	"MIA": {ID: "MIA", Name: "Miami Heat"},
	"MIL": {ID: "MIL", Name: "Milwaukee Bucks"},
	"MIN": {ID: "MIN", Name: "Minnesota Timberwolves"},
	"NOP": {ID: "NOP", Name: "New Orleans Pelicans"},
	"NYK": {ID: "NYK", Name: "New York Knicks"},
	"OKC": {ID: "OKC", Name: "Oklahoma City Thunder"},
	"ORL": {ID: "ORL", Name: "Orlando Magic"},
	"PHI": {ID: "PHI", Name: "Philadelphia 76ers"},
	"PHX": {ID: "PHX", Name: "Phoenix Suns"},
	"POR": {ID: "POR", Name: "Portland Trail Blazers"},
	"SAC": {ID: "SAC", Name: "Sacramento Kings"},
	"SAS": {ID: "SAS", Name: "San Antonio Spurs"},
	"TOR": {ID: "TOR", Name: "Toronto Raptors"},
	"UTA": {ID: "UTA", Name: "Utah Jazz"},
	"WAS": {ID: "WAS", Name: "Washington Wizards"},
}

// Lookup resolves a tricode to its directory entry.
func Lookup(id string) (Team, bool) {
	t, ok := directory[id]
	return t, ok
}

// Name resolves a tricode to a display name, falling back to the tricode
// itself for teams the directory does not know.
func Name(id string) string {
	if t, ok := directory[id]; ok {
		return t.Name
	}
	return id
}
