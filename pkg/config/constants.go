package config

// EnvPrefix is intentionally empty; every variable carries the TIFFIN_ prefix
// in its envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv = "TIFFIN_APP_ENV"
	EnvDBDSN  = "TIFFIN_DB_DSN"
	EnvDBHost = "TIFFIN_DB_HOST"
	EnvDBUser = "TIFFIN_DB_USER"
	EnvDBName = "TIFFIN_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
