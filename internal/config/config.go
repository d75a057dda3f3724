package config

import "time"

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	DataDir        string        // directory holding the season and uid files
	Seasons        []string      // season files as name=file, in display order
	UIDFile        string        // identity file inside DataDir
	LogLevel       string        // sets the log level (zap log level values)
	LogFormat      string        // text vs json
	Addr           string        // listen addr for the web server
	ReloadInterval time.Duration // how often the web server reloads the data files, 0 disables
	BaseURL        string        // where the fetch command downloads data files from
	FetchTimeout   time.Duration // timeout for a single download
)

// DefaultSeasons mirrors the files published for the national series.
var DefaultSeasons = []string{
	"2025=2025rallies.json",
	"2024=2024rallies.json",
	"nonARA=nonARArallies.json",
}

const (
	DefaultUIDFile = "uidsSmall.json"
	DefaultBaseURL = "https://sneakattackrally.com/ARACombinerThing/data"
)
