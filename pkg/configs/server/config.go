package server

// ServerConfig is the daemon configuration file content.
type ServerConfig struct {
	// port the API server listens on.
	ServerPort string `yaml:"port"`

	// postgres connection string of the index database.
	DBURI string `yaml:"dburi"`

	// root directory of the file-system artifact area.
	StoreRoot string `yaml:"storeRoot"`

	// credit balance granted to a fresh account.
	DefaultCredit int `yaml:"defaultCredit"`
}
