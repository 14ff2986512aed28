package config

const (
	EnvPrefix = "PROCURE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "PROCURE_DB_DSN"
	EnvDBHost = "PROCURE_DB_HOST"
	EnvDBUser = "PROCURE_DB_USER"
	EnvDBName = "PROCURE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
