package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Input         string          `json:"input" yaml:"input" toml:"input"`
	Profile       string          `json:"profile" yaml:"profile" toml:"profile"`
	Year          int             `json:"year" yaml:"year" toml:"year" validate:"omitempty,gte=2000,lte=2100"`
	DefaultYear   int             `json:"default_year" yaml:"default_year" toml:"default_year" validate:"omitempty,gte=2000,lte=2100"`
	ReportName    string          `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType    []string        `json:"report_type" yaml:"report_type" toml:"report_type" validate:"dive,oneof=csv json pdf"`
	Dir           string          `json:"dir" yaml:"dir" toml:"dir"`
	Trend         bool            `json:"trend" yaml:"trend" toml:"trend"`
	ClientName    string          `json:"client_name" yaml:"client_name" toml:"client_name"`
	ReportDate    string          `json:"report_date" yaml:"report_date" toml:"report_date"`
	Delimiter     string          `json:"delimiter" yaml:"delimiter" toml:"delimiter" validate:"omitempty,len=1"`
	Columns       ColumnsConfig   `json:"columns" yaml:"columns" toml:"columns"`
	Listings      []ListingConfig `json:"listings" yaml:"listings" toml:"listings" validate:"dive"`
	Baseline      *BaselineConfig `json:"baseline" yaml:"baseline" toml:"baseline"`
	Quality       *QualityConfig  `json:"quality" yaml:"quality" toml:"quality"`
	Bullets       BulletsConfig   `json:"bullets" yaml:"bullets" toml:"bullets"`
	ListingWindow WindowConfig    `json:"listing_window" yaml:"listing_window" toml:"listing_window"`
	Server        ServerConfig    `json:"server" yaml:"server" toml:"server"`
}

// ColumnsConfig overrides the export column names.
type ColumnsConfig struct {
	Listing   string `json:"listing" yaml:"listing" toml:"listing"`
	Month     string `json:"month" yaml:"month" toml:"month"`
	Revenue   string `json:"revenue" yaml:"revenue" toml:"revenue"`
	Occupancy string `json:"occupancy" yaml:"occupancy" toml:"occupancy"`
	Rate      string `json:"rate" yaml:"rate" toml:"rate"`
}

// ListingConfig is one row of the reference listing table.
type ListingConfig struct {
	ID   string  `json:"id" yaml:"id" toml:"id" validate:"required"`
	Area float64 `json:"area" yaml:"area" toml:"area" validate:"gte=0"`
}

// BaselineConfig holds the fixed prior-year figures, keyed by month label.
type BaselineConfig struct {
	Year         int                     `json:"year" yaml:"year" toml:"year" validate:"gte=2000,lte=2100"`
	Revenue      map[string]int64        `json:"revenue" yaml:"revenue" toml:"revenue"`
	Occupancy    map[string]int64        `json:"occupancy" yaml:"occupancy" toml:"occupancy"`
	Rate         map[string]int64        `json:"rate" yaml:"rate" toml:"rate"`
	TotalRevenue int64                   `json:"total_revenue" yaml:"total_revenue" toml:"total_revenue"`
	Listings     []BaselineListingConfig `json:"listings" yaml:"listings" toml:"listings" validate:"dive"`
}

// BaselineListingConfig is one listing's prior-year revenue.
type BaselineListingConfig struct {
	ID      string           `json:"id" yaml:"id" toml:"id" validate:"required"`
	Area    float64          `json:"area" yaml:"area" toml:"area"`
	Revenue map[string]int64 `json:"revenue" yaml:"revenue" toml:"revenue"`
}

// QualityConfig holds the review sub-scores.
type QualityConfig struct {
	Overall       float64 `json:"overall" yaml:"overall" toml:"overall" validate:"gte=0,lte=5"`
	Cleanliness   float64 `json:"cleanliness" yaml:"cleanliness" toml:"cleanliness" validate:"gte=0,lte=5"`
	Accuracy      float64 `json:"accuracy" yaml:"accuracy" toml:"accuracy" validate:"gte=0,lte=5"`
	Location      float64 `json:"location" yaml:"location" toml:"location" validate:"gte=0,lte=5"`
	CheckIn       float64 `json:"check_in" yaml:"check_in" toml:"check_in" validate:"gte=0,lte=5"`
	Communication float64 `json:"communication" yaml:"communication" toml:"communication" validate:"gte=0,lte=5"`
	Value         float64 `json:"value" yaml:"value" toml:"value" validate:"gte=0,lte=5"`
}

// BulletsConfig holds the bullet points of each slide.
type BulletsConfig struct {
	Revenue   []string `json:"revenue" yaml:"revenue" toml:"revenue"`
	Occupancy []string `json:"occupancy" yaml:"occupancy" toml:"occupancy"`
	Rate      []string `json:"rate" yaml:"rate" toml:"rate"`
	Listings  []string `json:"listings" yaml:"listings" toml:"listings"`
	Total     []string `json:"total" yaml:"total" toml:"total"`
	Quality   []string `json:"quality" yaml:"quality" toml:"quality"`
	Actions   []string `json:"actions" yaml:"actions" toml:"actions"`
}

// WindowConfig selects the months of the listing table.
type WindowConfig struct {
	Start  string `json:"start" yaml:"start" toml:"start"`
	Months int    `json:"months" yaml:"months" toml:"months" validate:"gte=0,lte=12"`
}

// ServerConfig configures `rapport serve`.
type ServerConfig struct {
	Addr        string  `json:"addr" yaml:"addr" toml:"addr"`
	ImportRate  float64 `json:"import_rate" yaml:"import_rate" toml:"import_rate" validate:"gte=0"`
	ImportBurst int     `json:"import_burst" yaml:"import_burst" toml:"import_burst" validate:"gte=0"`

	// ImportDir and ImportS3Prefix bound the locations a JSON import may
	// name. Both empty turns location imports off.
	ImportDir      string `json:"import_dir" yaml:"import_dir" toml:"import_dir"`
	ImportS3Prefix string `json:"import_s3_prefix" yaml:"import_s3_prefix" toml:"import_s3_prefix" validate:"omitempty,startswith=s3://"`
}

// EnvConfig is read from RAPPORT_* environment variables.
type EnvConfig struct {
	Input      string `envconfig:"INPUT"`
	Profile    string `envconfig:"PROFILE"`
	Year       int    `envconfig:"YEAR"`
	Dir        string `envconfig:"DIR"`
	ClientName string `envconfig:"CLIENT_NAME"`
	ReportDate string `envconfig:"REPORT_DATE"`
	Addr       string `envconfig:"ADDR"`
	ImportDir  string `envconfig:"IMPORT_DIR"`
}
